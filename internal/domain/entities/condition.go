package entities

import (
	"encoding/json"
	"strconv"
)

// ConditionKind is the discriminant of an achievement's unlock rule
type ConditionKind string

const (
	ConditionOriginCount     ConditionKind = "origin_count"
	ConditionCoffeeCount     ConditionKind = "coffee_count"
	ConditionRecordCount     ConditionKind = "record_count"
	ConditionSpecificOrigin  ConditionKind = "specific_origin"
	ConditionSpecificCoffee  ConditionKind = "specific_coffee"
	ConditionSpecificVariety ConditionKind = "specific_variety"
	ConditionSpecificProcess ConditionKind = "specific_process"
	ConditionRatingCount     ConditionKind = "rating_count"
	ConditionFlavorExplorer  ConditionKind = "flavor_explorer"
	ConditionHighAltitude    ConditionKind = "high_altitude"
	ConditionOCRMaster       ConditionKind = "ocr_master"
)

// Condition is the typed form of the JSON unlock condition stored with an
// achievement, e.g. {"type":"origin_count","target":3} or
// {"type":"flavor_explorer","target":["floral","citrus"]}.
//
// Count carries numeric targets (counts and the altitude threshold),
// Values carries string targets normalized to a list. Unknown kinds are
// preserved as-is and evaluate to false rather than failing, since
// conditions are authored data.
type Condition struct {
	Kind      ConditionKind
	Count     int
	Values    []string
	MinRating int
}

// DefaultMinRating is the rating floor for rating_count conditions when
// the authored condition carries no min_rating modifier.
const DefaultMinRating = 4

type conditionJSON struct {
	Type      string          `json:"type"`
	Target    json.RawMessage `json:"target"`
	MinRating *int            `json:"min_rating,omitempty"`
}

// UnmarshalJSON decodes the stored condition document
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw conditionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Kind = ConditionKind(raw.Type)
	c.Count = 0
	c.Values = nil

	if len(raw.Target) > 0 {
		var n int
		var s string
		var list []json.RawMessage
		switch {
		case json.Unmarshal(raw.Target, &n) == nil:
			c.Count = n
		case json.Unmarshal(raw.Target, &s) == nil:
			c.Values = []string{s}
		case json.Unmarshal(raw.Target, &list) == nil:
			for _, item := range list {
				var is string
				if json.Unmarshal(item, &is) == nil {
					c.Values = append(c.Values, is)
					continue
				}
				var in int
				if json.Unmarshal(item, &in) == nil {
					c.Values = append(c.Values, strconv.Itoa(in))
				}
			}
		}
	}

	c.MinRating = DefaultMinRating
	if raw.MinRating != nil {
		c.MinRating = *raw.MinRating
	}

	return nil
}

// MarshalJSON re-encodes the condition in its stored document form
func (c Condition) MarshalJSON() ([]byte, error) {
	raw := conditionJSON{Type: string(c.Kind)}

	var target interface{}
	switch {
	case len(c.Values) == 1:
		target = c.Values[0]
	case len(c.Values) > 1:
		target = c.Values
	default:
		target = c.Count
	}
	encoded, err := json.Marshal(target)
	if err != nil {
		return nil, err
	}
	raw.Target = encoded

	if c.Kind == ConditionRatingCount && c.MinRating != DefaultMinRating {
		raw.MinRating = &c.MinRating
	}

	return json.Marshal(raw)
}
