package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

func TestMatch_EmptyKeywords(t *testing.T) {
	matcher := NewCatalogMatcherService()
	catalog := []*entities.CoffeeBean{testCoffee("Yirgacheffe", "Ethiopia")}

	assert.Empty(t, matcher.Match(nil, catalog))
	assert.Empty(t, matcher.Match([]string{}, catalog))
}

func TestMatch_NameMatchOutweighsFlavor(t *testing.T) {
	matcher := NewCatalogMatcherService()
	byName := testCoffee("Floral Blend", "Brazil")
	byFlavor := testCoffee("Santos", "Brazil", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral"}
	})
	catalog := []*entities.CoffeeBean{byFlavor, byName}

	results := matcher.Match([]string{"floral"}, catalog)
	require.Len(t, results, 2)
	assert.Equal(t, byName.ID, results[0].Coffee.ID)
	assert.Equal(t, 10, results[0].Score)
	assert.Equal(t, byFlavor.ID, results[1].Coffee.ID)
	assert.Equal(t, 4, results[1].Score)
}

func TestMatch_SingleKeywordNameHitIsFullConfidence(t *testing.T) {
	matcher := NewCatalogMatcherService()
	catalog := []*entities.CoffeeBean{testCoffee("Yirgacheffe G1", "Ethiopia")}

	results := matcher.Match([]string{"yirgacheffe"}, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].Score)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.Equal(t, []string{"yirgacheffe"}, results[0].MatchedKeywords)
}

func TestMatch_FirstMatchingFieldWins(t *testing.T) {
	matcher := NewCatalogMatcherService()
	// "geisha" appears in both name and variety; only name's weight counts
	coffee := testCoffee("Geisha Village", "Panama", func(c *entities.CoffeeBean) {
		c.Variety = "Geisha"
	})

	results := matcher.Match([]string{"geisha"}, []*entities.CoffeeBean{coffee})
	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].Score)
}

func TestMatch_ScoreAndConfidenceAcrossFields(t *testing.T) {
	matcher := NewCatalogMatcherService()
	coffee := testCoffee("Kochere Lot 12", "Ethiopia", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"floral", "lemon"}
	})

	// origin (8) + flavor (4) + unmatched keyword
	results := matcher.Match([]string{"ethiopia", "floral", "coffee"}, []*entities.CoffeeBean{coffee})
	require.Len(t, results, 1)
	assert.Equal(t, 12, results[0].Score)
	assert.InDelta(t, 0.4, results[0].Confidence, 1e-9)
	assert.Equal(t, []string{"ethiopia", "floral"}, results[0].MatchedKeywords)
}

func TestMatch_ConfidenceCappedAtOne(t *testing.T) {
	matcher := NewCatalogMatcherService()
	coffee := testCoffee("Kenya Washed", "Kenya")

	// name (10) + origin via name containment... both keywords hit name first
	results := matcher.Match([]string{"kenya"}, []*entities.CoffeeBean{coffee})
	require.Len(t, results, 1)
	assert.LessOrEqual(t, results[0].Confidence, 1.0)
}

func TestMatch_SkipsZeroScoreAndInactive(t *testing.T) {
	matcher := NewCatalogMatcherService()
	inactive := testCoffee("Yirgacheffe", "Ethiopia", func(c *entities.CoffeeBean) {
		c.IsActive = false
	})
	unrelated := testCoffee("Santos", "Brazil")
	catalog := []*entities.CoffeeBean{inactive, unrelated}

	results := matcher.Match([]string{"yirgacheffe"}, catalog)
	assert.Empty(t, results)
}

func TestMatch_TiesKeepCatalogOrder(t *testing.T) {
	matcher := NewCatalogMatcherService()
	first := testCoffee("Gedeb Washed", "Ethiopia")
	second := testCoffee("Guji Washed", "Ethiopia")

	results := matcher.Match([]string{"ethiopia"}, []*entities.CoffeeBean{first, second})
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, first.ID, results[0].Coffee.ID)
	assert.Equal(t, second.ID, results[1].Coffee.ID)
}

func TestMatch_CapsAtFiveResults(t *testing.T) {
	matcher := NewCatalogMatcherService()
	var catalog []*entities.CoffeeBean
	for i := 0; i < 8; i++ {
		catalog = append(catalog, testCoffee(fmt.Sprintf("Kenya Lot %d", i), "Kenya"))
	}

	results := matcher.Match([]string{"kenya"}, catalog)
	assert.Len(t, results, 5)
}

func TestMatch_ProcessMatchesDisplayLabel(t *testing.T) {
	matcher := NewCatalogMatcherService()
	coffee := testCoffee("El Paraiso", "Colombia", func(c *entities.CoffeeBean) {
		c.Process = entities.ProcessCarbonic
	})

	// stored value is "carbonic" but the label is "Carbonic Maceration"
	results := matcher.Match([]string{"maceration"}, []*entities.CoffeeBean{coffee})
	require.Len(t, results, 1)
	assert.Equal(t, 5, results[0].Score)
}

func TestMatch_RepeatedKeywordScoresTwiceButListsOnce(t *testing.T) {
	matcher := NewCatalogMatcherService()
	coffee := testCoffee("Santos", "Brazil", func(c *entities.CoffeeBean) {
		c.FlavorNotes = []string{"chocolate"}
	})

	results := matcher.Match([]string{"chocolate", "chocolate"}, []*entities.CoffeeBean{coffee})
	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Score)
	assert.Equal(t, []string{"chocolate"}, results[0].MatchedKeywords)
}
