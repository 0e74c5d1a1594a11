package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// AchievementRepository manages the achievement catalog (reference data)
type AchievementRepository interface {
	Create(ctx context.Context, achievement *entities.Achievement) error
	GetByID(ctx context.Context, id string) (*entities.Achievement, error)
	ListActive(ctx context.Context) ([]*entities.Achievement, error)
}

// UserAchievementRepository manages unlock records
type UserAchievementRepository interface {
	// Insert creates the unlock record. It reports false with a nil
	// error when the (user, achievement) pair already exists, so a
	// concurrent duplicate attempt is not an error.
	Insert(ctx context.Context, ua *entities.UserAchievement) (bool, error)

	ListAchievementIDs(ctx context.Context, userID string) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.UserAchievement, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByUserAndYear(ctx context.Context, userID string, year int) (int, error)
}
