package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// RecordService manages the user activity log. Creating a record also
// triggers an achievement check so unlocks land with the record that
// earned them.
type RecordService struct {
	recordRepo   repositories.RecordRepository
	coffeeRepo   repositories.CoffeeRepository
	achievements *AchievementService
}

// NewRecordService creates a new record service
func NewRecordService(
	recordRepo repositories.RecordRepository,
	coffeeRepo repositories.CoffeeRepository,
	achievements *AchievementService,
) *RecordService {
	return &RecordService{
		recordRepo:   recordRepo,
		coffeeRepo:   coffeeRepo,
		achievements: achievements,
	}
}

// Create validates and stores a record, then evaluates achievements.
// An achievement check failure does not fail the record creation; the
// next check recovers any missed unlocks.
func (s *RecordService) Create(ctx context.Context, record *entities.UserRecord) ([]*entities.Achievement, error) {
	if record.UserID == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	if record.Rating != nil && (*record.Rating < 1 || *record.Rating > 5) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	for _, score := range []*int{
		record.Acidity, record.Sweetness, record.Bitterness,
		record.Body, record.Aftertaste, record.Balance,
	} {
		if score != nil && (*score < 1 || *score > 10) {
			return nil, apperrors.NewValidationError("taste scores must be between 1 and 10")
		}
	}

	coffee, err := s.coffeeRepo.GetByID(ctx, record.CoffeeBeanID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("coffee does not exist")
		}
		return nil, err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CheckinType == "" {
		record.CheckinType = entities.CheckinTaste
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	record.CoffeeBean = coffee

	newlyUnlocked, err := s.achievements.CheckAchievements(ctx, record.UserID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("user_id", record.UserID).
			Msg("achievement check failed after record creation")
		return []*entities.Achievement{}, nil
	}
	return newlyUnlocked, nil
}

// GetByID returns one record
func (s *RecordService) GetByID(ctx context.Context, id string) (*entities.UserRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

// ListByUser returns a user's records, newest first
func (s *RecordService) ListByUser(ctx context.Context, userID string) ([]*entities.UserRecord, error) {
	return s.recordRepo.ListByUser(ctx, userID)
}
