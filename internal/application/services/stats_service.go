package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

const (
	// likedRatingFloor marks a record as evidence of flavor preference
	likedRatingFloor = 4

	topFlavorLimit = 5

	defaultRecommendationLimit = 5
)

// StatsService aggregates a user's activity into stats, recommendations
// and yearly summaries
type StatsService struct {
	recordRepo repositories.RecordRepository
	coffeeRepo repositories.CoffeeRepository
	unlockRepo repositories.UserAchievementRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	recordRepo repositories.RecordRepository,
	coffeeRepo repositories.CoffeeRepository,
	unlockRepo repositories.UserAchievementRepository,
) *StatsService {
	return &StatsService{
		recordRepo: recordRepo,
		coffeeRepo: coffeeRepo,
		unlockRepo: unlockRepo,
	}
}

// UserStats summarizes the user's full activity. A user with no records
// gets a zero-valued summary, not an error.
func (s *StatsService) UserStats(ctx context.Context, userID string) (*entities.UserStats, error) {
	records, err := s.recordRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockCount, err := s.unlockRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.UserStats{
		TotalRecords:         len(records),
		UniqueCoffees:        countDistinct(records, coffeeKey),
		UniqueOrigins:        countDistinct(records, originKey),
		UniqueVarieties:      countDistinct(records, varietyKey),
		AchievementsUnlocked: unlockCount,
		FavoriteOrigin:       favoriteOrigin(records),
		TopFlavors:           topFlavors(records, topFlavorLimit),
		ProcessBreakdown:     processBreakdown(records),
	}, nil
}

// Recommendations suggests active catalog entries the user has not
// recorded yet. With enough highly rated records the candidates are
// filtered to the user's top flavors; otherwise the pick is random.
func (s *StatsService) Recommendations(ctx context.Context, userID string, limit int) ([]*entities.CoffeeBean, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	records, err := s.recordRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recorded := make(map[string]struct{}, len(records))
	var likedFlavors []string
	for _, r := range records {
		recorded[r.CoffeeBeanID] = struct{}{}
		if r.Rating != nil && *r.Rating >= likedRatingFloor && r.CoffeeBean != nil {
			likedFlavors = append(likedFlavors, r.CoffeeBean.FlavorNotes...)
		}
	}

	catalog, err := s.coffeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*entities.CoffeeBean, 0, len(catalog))
	for _, coffee := range catalog {
		if _, ok := recorded[coffee.ID]; !ok {
			candidates = append(candidates, coffee)
		}
	}

	if len(likedFlavors) == 0 {
		rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		return truncateCoffees(candidates, limit), nil
	}

	topLiked := topCounts(likedFlavors, 3)
	liked := make(map[string]struct{}, len(topLiked))
	for _, fc := range topLiked {
		liked[fc.Flavor] = struct{}{}
	}

	matched := make([]*entities.CoffeeBean, 0, len(candidates))
	for _, coffee := range candidates {
		for _, note := range coffee.FlavorNotes {
			if _, ok := liked[note]; ok {
				matched = append(matched, coffee)
				break
			}
		}
	}

	return truncateCoffees(matched, limit), nil
}

// YearlySummary aggregates one calendar year of activity. A year with
// no records is reported as not found so callers can distinguish "no
// data" from an empty-but-real year.
func (s *StatsService) YearlySummary(ctx context.Context, userID string, year int) (*entities.YearlySummary, error) {
	records, err := s.recordRepo.ListByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no records for year %d", year))
	}

	unlockCount, err := s.unlockRepo.CountByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	recommended, err := s.Recommendations(ctx, userID, 3)
	if err != nil {
		return nil, err
	}

	return &entities.YearlySummary{
		Year:                 year,
		TotalRecords:         len(records),
		UniqueCoffees:        countDistinct(records, coffeeKey),
		UniqueOrigins:        countDistinct(records, originKey),
		AchievementsUnlocked: unlockCount,
		FavoriteOrigin:       favoriteOrigin(records),
		FlavorPreferences:    topFlavors(records, topFlavorLimit),
		RecommendedCoffees:   recommended,
	}, nil
}

func coffeeKey(r *entities.UserRecord) string { return r.CoffeeBeanID }

func originKey(r *entities.UserRecord) string {
	if r.CoffeeBean == nil {
		return ""
	}
	return r.CoffeeBean.OriginID
}

func varietyKey(r *entities.UserRecord) string {
	if r.CoffeeBean == nil {
		return ""
	}
	return r.CoffeeBean.Variety
}

// favoriteOrigin is the most recorded origin name. Ties resolve to the
// origin encountered first in record order.
func favoriteOrigin(records []*entities.UserRecord) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.CoffeeBean == nil || r.CoffeeBean.OriginName == "" {
			continue
		}
		name := r.CoffeeBean.OriginName
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	favorite := ""
	best := 0
	for _, name := range order {
		if counts[name] > best {
			favorite = name
			best = counts[name]
		}
	}
	return favorite
}

// topFlavors counts the flavor notes of coffees the user rated highly
func topFlavors(records []*entities.UserRecord, limit int) []entities.FlavorCount {
	var flavors []string
	for _, r := range records {
		if r.Rating == nil || *r.Rating < likedRatingFloor || r.CoffeeBean == nil {
			continue
		}
		flavors = append(flavors, r.CoffeeBean.FlavorNotes...)
	}
	return topCounts(flavors, limit)
}

// topCounts tallies values and returns the most frequent, ties keeping
// first-encountered order
func topCounts(values []string, limit int) []entities.FlavorCount {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	result := make([]entities.FlavorCount, 0, len(order))
	for _, v := range order {
		result = append(result, entities.FlavorCount{Flavor: v, Count: counts[v]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func processBreakdown(records []*entities.UserRecord) []entities.ProcessCount {
	counts := make(map[entities.Process]int)
	var order []entities.Process
	for _, r := range records {
		if r.CoffeeBean == nil || r.CoffeeBean.Process == "" {
			continue
		}
		p := r.CoffeeBean.Process
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	result := make([]entities.ProcessCount, 0, len(order))
	for _, p := range order {
		result = append(result, entities.ProcessCount{Process: p, Count: counts[p]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func truncateCoffees(coffees []*entities.CoffeeBean, limit int) []*entities.CoffeeBean {
	if len(coffees) > limit {
		return coffees[:limit]
	}
	return coffees
}
