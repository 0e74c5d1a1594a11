package entities

import (
	"fmt"
	"time"
)

// Process is the post-harvest processing method of a coffee bean
type Process string

const (
	ProcessWashed    Process = "washed"
	ProcessNatural   Process = "natural"
	ProcessHoney     Process = "honey"
	ProcessWetHulled Process = "wet_hulled"
	ProcessAnaerobic Process = "anaerobic"
	ProcessCarbonic  Process = "carbonic"
	ProcessLactic    Process = "lactic"
	ProcessMonsoon   Process = "monsoon"
	ProcessOther     Process = "other"
)

var processLabels = map[Process]string{
	ProcessWashed:    "Washed",
	ProcessNatural:   "Natural",
	ProcessHoney:     "Honey",
	ProcessWetHulled: "Wet Hulled",
	ProcessAnaerobic: "Anaerobic",
	ProcessCarbonic:  "Carbonic Maceration",
	ProcessLactic:    "Lactic Fermentation",
	ProcessMonsoon:   "Monsoon",
	ProcessOther:     "Other",
}

// Label returns the human-readable display label for the process
func (p Process) Label() string {
	if label, ok := processLabels[p]; ok {
		return label
	}
	return string(p)
}

// CoffeeBean represents a coffee product in the catalog
type CoffeeBean struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	OriginID    string    `json:"origin_id" db:"origin_id"`
	OriginName  string    `json:"origin_name" db:"-"`
	Region      string    `json:"region" db:"region"`
	Variety     string    `json:"variety" db:"variety"`
	Process     Process   `json:"process" db:"process"`
	AltitudeMin *int      `json:"altitude_min,omitempty" db:"altitude_min"`
	AltitudeMax *int      `json:"altitude_max,omitempty" db:"altitude_max"`
	FlavorNotes []string  `json:"flavor_notes" db:"-"`
	Description string    `json:"description,omitempty" db:"description"`
	GrindSize   string    `json:"grind_size,omitempty" db:"grind_size"`
	Ratio       string    `json:"ratio,omitempty" db:"ratio"`
	Temperature string    `json:"temperature,omitempty" db:"temperature"`
	BrewTime    string    `json:"brew_time,omitempty" db:"brew_time"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// AltitudeDisplay formats the altitude range for display
func (c *CoffeeBean) AltitudeDisplay() string {
	switch {
	case c.AltitudeMin != nil && c.AltitudeMax != nil:
		return fmt.Sprintf("%d-%dm", *c.AltitudeMin, *c.AltitudeMax)
	case c.AltitudeMin != nil:
		return fmt.Sprintf("%dm+", *c.AltitudeMin)
	case c.AltitudeMax != nil:
		return fmt.Sprintf("%dm", *c.AltitudeMax)
	}
	return ""
}
