package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// RecordRepository is the activity store boundary. List methods populate
// each record's CoffeeBean (with origin name) so callers can evaluate
// conditions and aggregate stats from a single snapshot.
type RecordRepository interface {
	Create(ctx context.Context, record *entities.UserRecord) error
	GetByID(ctx context.Context, id string) (*entities.UserRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.UserRecord, error)
	ListByUserAndYear(ctx context.Context, userID string, year int) ([]*entities.UserRecord, error)
}
