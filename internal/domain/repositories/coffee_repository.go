package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// CoffeeFilter narrows catalog listings. Search, Variety use
// case-insensitive containment; OriginID and Process are exact.
type CoffeeFilter struct {
	Search   string
	OriginID string
	Variety  string
	Process  entities.Process
	Limit    int
	Offset   int
}

// CoffeeRepository is the catalog store boundary
type CoffeeRepository interface {
	Create(ctx context.Context, coffee *entities.CoffeeBean) error
	Update(ctx context.Context, coffee *entities.CoffeeBean) error
	GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entities.CoffeeBean, error)

	// ListActive returns the full active catalog in stable iteration
	// order (created_at, id). The matcher scores against this set.
	ListActive(ctx context.Context) ([]*entities.CoffeeBean, error)

	List(ctx context.Context, filter CoffeeFilter) ([]*entities.CoffeeBean, error)
}

// CoffeeSearchRepository is the secondary free-text index over the catalog
type CoffeeSearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, coffee *entities.CoffeeBean) error
	Delete(ctx context.Context, id string) error

	// Search returns matching coffee ids ranked by the index
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
