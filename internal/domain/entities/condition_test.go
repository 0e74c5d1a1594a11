package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition_UnmarshalIntTarget(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"origin_count","target":3}`), &c))

	assert.Equal(t, ConditionOriginCount, c.Kind)
	assert.Equal(t, 3, c.Count)
	assert.Empty(t, c.Values)
	assert.Equal(t, DefaultMinRating, c.MinRating)
}

func TestCondition_UnmarshalStringTarget(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"specific_origin","target":"Ethiopia"}`), &c))

	assert.Equal(t, ConditionSpecificOrigin, c.Kind)
	assert.Equal(t, []string{"Ethiopia"}, c.Values)
}

func TestCondition_UnmarshalListTarget(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"flavor_explorer","target":["floral","citrus",7]}`), &c))

	assert.Equal(t, ConditionFlavorExplorer, c.Kind)
	assert.Equal(t, []string{"floral", "citrus", "7"}, c.Values)
}

func TestCondition_UnmarshalMinRating(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"rating_count","target":10,"min_rating":5}`), &c))

	assert.Equal(t, ConditionRatingCount, c.Kind)
	assert.Equal(t, 10, c.Count)
	assert.Equal(t, 5, c.MinRating)
}

func TestCondition_UnmarshalUnknownKindPreserved(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"moon_phase","target":2}`), &c))

	assert.Equal(t, ConditionKind("moon_phase"), c.Kind)
	assert.Equal(t, 2, c.Count)
}

func TestCondition_MarshalRoundTrip(t *testing.T) {
	cases := []Condition{
		{Kind: ConditionOriginCount, Count: 5, MinRating: DefaultMinRating},
		{Kind: ConditionSpecificOrigin, Values: []string{"Kenya"}, MinRating: DefaultMinRating},
		{Kind: ConditionFlavorExplorer, Values: []string{"floral", "berry"}, MinRating: DefaultMinRating},
		{Kind: ConditionRatingCount, Count: 10, MinRating: 5},
	}

	for _, original := range cases {
		encoded, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Condition
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, original, decoded)
	}
}
