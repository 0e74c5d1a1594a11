package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
)

// AchievementService evaluates unlock conditions over a user's activity
type AchievementService struct {
	achievementRepo repositories.AchievementRepository
	unlockRepo      repositories.UserAchievementRepository
	recordRepo      repositories.RecordRepository
	metrics         *observability.Metrics
}

// NewAchievementService creates a new achievement service. metrics may
// be nil in tests.
func NewAchievementService(
	achievementRepo repositories.AchievementRepository,
	unlockRepo repositories.UserAchievementRepository,
	recordRepo repositories.RecordRepository,
	metrics *observability.Metrics,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		unlockRepo:      unlockRepo,
		recordRepo:      recordRepo,
		metrics:         metrics,
	}
}

// CheckAchievements evaluates every active, not-yet-unlocked achievement
// against the user's full activity and persists the ones whose
// conditions now hold. It returns only the newly unlocked achievements;
// a second call with unchanged activity returns an empty slice.
//
// A persistence failure for one unlock is logged and skipped so the
// rest of the batch still lands; a missed unlock is recovered on the
// next check.
func (s *AchievementService) CheckAchievements(ctx context.Context, userID string) ([]*entities.Achievement, error) {
	logger := observability.LoggerFromContext(ctx)

	unlockedIDs, err := s.unlockRepo.ListAchievementIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]struct{}, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = struct{}{}
	}

	candidates, err := s.achievementRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	newlyUnlocked := []*entities.Achievement{}
	for _, achievement := range candidates {
		if _, ok := unlocked[achievement.ID]; ok {
			continue
		}
		if !evalCondition(achievement.Condition, records, logger) {
			continue
		}

		inserted, err := s.unlockRepo.Insert(ctx, &entities.UserAchievement{
			ID:            uuid.New().String(),
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now().UTC(),
		})
		if err != nil {
			logger.Error().Err(err).
				Str("user_id", userID).
				Str("achievement_id", achievement.ID).
				Msg("failed to persist achievement unlock")
			continue
		}
		if !inserted {
			// a concurrent check won the race
			continue
		}

		if s.metrics != nil {
			s.metrics.AchievementUnlocks.Add(ctx, 1)
		}
		newlyUnlocked = append(newlyUnlocked, achievement)
	}

	return newlyUnlocked, nil
}

// evalCondition decides whether one condition holds over the activity
// snapshot. Records whose catalog entry failed to join are skipped for
// kinds that inspect the coffee. Unknown kinds evaluate to false:
// conditions are authored data, and a typo must not unlock anything or
// abort the batch.
func evalCondition(c entities.Condition, records []*entities.UserRecord, logger *zerolog.Logger) bool {
	switch c.Kind {
	case entities.ConditionOriginCount:
		return countDistinct(records, func(r *entities.UserRecord) string {
			if r.CoffeeBean == nil {
				return ""
			}
			return r.CoffeeBean.OriginID
		}) >= c.Count

	case entities.ConditionCoffeeCount:
		return countDistinct(records, func(r *entities.UserRecord) string {
			return r.CoffeeBeanID
		}) >= c.Count

	case entities.ConditionRecordCount:
		return len(records) >= c.Count

	case entities.ConditionSpecificOrigin:
		return anyRecord(records, func(r *entities.UserRecord) bool {
			return r.CoffeeBean != nil && containsString(c.Values, r.CoffeeBean.OriginName)
		})

	case entities.ConditionSpecificCoffee:
		return anyRecord(records, func(r *entities.UserRecord) bool {
			return containsString(c.Values, r.CoffeeBeanID)
		})

	case entities.ConditionSpecificVariety:
		return anyRecord(records, func(r *entities.UserRecord) bool {
			if r.CoffeeBean == nil {
				return false
			}
			variety := strings.ToLower(r.CoffeeBean.Variety)
			for _, v := range c.Values {
				if v != "" && strings.Contains(variety, strings.ToLower(v)) {
					return true
				}
			}
			return false
		})

	case entities.ConditionSpecificProcess:
		return anyRecord(records, func(r *entities.UserRecord) bool {
			return r.CoffeeBean != nil && containsString(c.Values, string(r.CoffeeBean.Process))
		})

	case entities.ConditionRatingCount:
		count := 0
		for _, r := range records {
			if r.Rating != nil && *r.Rating >= c.MinRating {
				count++
			}
		}
		return count >= c.Count

	case entities.ConditionFlavorExplorer:
		// every listed flavor must appear in at least one recorded
		// coffee; a condition with no flavors never unlocks
		if len(c.Values) == 0 {
			return false
		}
		for _, flavor := range c.Values {
			if !anyRecord(records, func(r *entities.UserRecord) bool {
				return r.CoffeeBean != nil && containsString(r.CoffeeBean.FlavorNotes, flavor)
			}) {
				return false
			}
		}
		return true

	case entities.ConditionHighAltitude:
		return anyRecord(records, func(r *entities.UserRecord) bool {
			return r.CoffeeBean != nil &&
				r.CoffeeBean.AltitudeMin != nil &&
				*r.CoffeeBean.AltitudeMin >= c.Count
		})

	case entities.ConditionOCRMaster:
		count := 0
		for _, r := range records {
			if r.RecognizedByOCR {
				count++
			}
		}
		return count >= c.Count

	default:
		logger.Warn().Str("condition_kind", string(c.Kind)).Msg("unknown achievement condition kind")
		return false
	}
}

func countDistinct(records []*entities.UserRecord, key func(*entities.UserRecord) string) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if k := key(r); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

func anyRecord(records []*entities.UserRecord, pred func(*entities.UserRecord) bool) bool {
	for _, r := range records {
		if pred(r) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
