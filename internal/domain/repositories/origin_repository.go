package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// OriginRepository manages coffee origin reference data
type OriginRepository interface {
	Create(ctx context.Context, origin *entities.Origin) error
	GetByID(ctx context.Context, id string) (*entities.Origin, error)
	GetByName(ctx context.Context, name string) (*entities.Origin, error)
	List(ctx context.Context) ([]*entities.Origin, error)
}
