package services

import (
	"math"
	"sort"
	"strings"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

const (
	// maxMatches caps the ranked result list
	maxMatches = 5

	// maxFieldWeight is the highest field weight, used to normalize
	// scores into a confidence
	maxFieldWeight = 10
)

// fieldMatcher pairs a field extractor with its weight. Walked in
// order per keyword, first hit wins, so a keyword contributes at most
// once per entry via its highest-priority field.
type fieldMatcher struct {
	field  string
	weight int
	values func(*entities.CoffeeBean) []string
}

var fieldMatchers = []fieldMatcher{
	{"name", 10, func(c *entities.CoffeeBean) []string { return []string{c.Name} }},
	{"origin", 8, func(c *entities.CoffeeBean) []string { return []string{c.OriginName} }},
	{"region", 7, func(c *entities.CoffeeBean) []string { return []string{c.Region} }},
	{"variety", 6, func(c *entities.CoffeeBean) []string { return []string{c.Variety} }},
	{"process", 5, func(c *entities.CoffeeBean) []string { return []string{c.Process.Label()} }},
	{"flavor", 4, func(c *entities.CoffeeBean) []string { return c.FlavorNotes }},
}

// CatalogMatcherService scores keywords against the coffee catalog
type CatalogMatcherService struct {
	limit int
}

// NewCatalogMatcherService creates a new catalog matcher
func NewCatalogMatcherService() *CatalogMatcherService {
	return &CatalogMatcherService{limit: maxMatches}
}

// Match scores every active catalog entry against the keywords and
// returns the top candidates ranked by score. The sort is stable, so
// entries with equal scores keep catalog iteration order.
//
// Confidence is min(score / (len(keywords) * 10), 1.0) — a heuristic
// normalization against the best possible score for the keyword count,
// not a probability.
func (s *CatalogMatcherService) Match(keywords []string, catalog []*entities.CoffeeBean) []entities.MatchCandidate {
	if len(keywords) == 0 {
		return nil
	}

	var results []entities.MatchCandidate
	for _, coffee := range catalog {
		if !coffee.IsActive {
			continue
		}

		score := 0
		var matched []string
		seen := make(map[string]struct{})

		for _, keyword := range keywords {
			kw := strings.ToLower(keyword)
			for _, fm := range fieldMatchers {
				if !containsKeyword(fm.values(coffee), kw) {
					continue
				}
				score += fm.weight
				if _, dup := seen[keyword]; !dup {
					seen[keyword] = struct{}{}
					matched = append(matched, keyword)
				}
				break
			}
		}

		if score == 0 {
			continue
		}

		confidence := math.Min(float64(score)/float64(len(keywords)*maxFieldWeight), 1.0)
		results = append(results, entities.MatchCandidate{
			Coffee:          coffee,
			Score:           score,
			Confidence:      confidence,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > s.limit {
		results = results[:s.limit]
	}

	return results
}

func containsKeyword(values []string, keyword string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), keyword) {
			return true
		}
	}
	return false
}
