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

// CoffeeService manages the coffee catalog. Postgres is the source of
// truth; the search index is maintained best-effort on writes and can
// be rebuilt by the indexer.
type CoffeeService struct {
	coffeeRepo repositories.CoffeeRepository
	originRepo repositories.OriginRepository
	searchRepo repositories.CoffeeSearchRepository
}

// NewCoffeeService creates a new coffee service. searchRepo may be nil
// when no search index is configured.
func NewCoffeeService(
	coffeeRepo repositories.CoffeeRepository,
	originRepo repositories.OriginRepository,
	searchRepo repositories.CoffeeSearchRepository,
) *CoffeeService {
	return &CoffeeService{
		coffeeRepo: coffeeRepo,
		originRepo: originRepo,
		searchRepo: searchRepo,
	}
}

// Create validates and stores a new catalog entry
func (s *CoffeeService) Create(ctx context.Context, coffee *entities.CoffeeBean) (*entities.CoffeeBean, error) {
	if coffee.Name == "" {
		return nil, apperrors.NewValidationError("coffee name is required")
	}

	origin, err := s.originRepo.GetByID(ctx, coffee.OriginID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("origin does not exist")
		}
		return nil, err
	}

	if coffee.ID == "" {
		coffee.ID = uuid.New().String()
	}
	if coffee.Process == "" {
		coffee.Process = entities.ProcessOther
	}
	now := time.Now().UTC()
	coffee.CreatedAt = now
	coffee.UpdatedAt = now
	coffee.IsActive = true
	coffee.OriginName = origin.Name

	if err := s.coffeeRepo.Create(ctx, coffee); err != nil {
		return nil, err
	}

	s.index(ctx, coffee)
	return coffee, nil
}

// Update stores catalog changes and refreshes the search index
func (s *CoffeeService) Update(ctx context.Context, coffee *entities.CoffeeBean) error {
	coffee.UpdatedAt = time.Now().UTC()
	if err := s.coffeeRepo.Update(ctx, coffee); err != nil {
		return err
	}

	if !coffee.IsActive && s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, coffee.ID); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("coffee_id", coffee.ID).
				Msg("failed to remove coffee from search index")
		}
		return nil
	}

	s.index(ctx, coffee)
	return nil
}

// GetByID returns one catalog entry
func (s *CoffeeService) GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error) {
	return s.coffeeRepo.GetByID(ctx, id)
}

// List returns catalog entries matching the filter
func (s *CoffeeService) List(ctx context.Context, filter repositories.CoffeeFilter) ([]*entities.CoffeeBean, error) {
	return s.coffeeRepo.List(ctx, filter)
}

// Search queries the free-text index and hydrates the hits from the
// catalog store, preserving index rank order
func (s *CoffeeService) Search(ctx context.Context, query string, limit int) ([]*entities.CoffeeBean, error) {
	if s.searchRepo == nil {
		return s.coffeeRepo.List(ctx, repositories.CoffeeFilter{Search: query, Limit: limit})
	}

	ids, err := s.searchRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entities.CoffeeBean{}, nil
	}

	coffees, err := s.coffeeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.CoffeeBean, len(coffees))
	for _, coffee := range coffees {
		byID[coffee.ID] = coffee
	}

	ranked := make([]*entities.CoffeeBean, 0, len(ids))
	for _, id := range ids {
		if coffee, ok := byID[id]; ok {
			ranked = append(ranked, coffee)
		}
	}
	return ranked, nil
}

// ListOrigins returns the origin reference data
func (s *CoffeeService) ListOrigins(ctx context.Context) ([]*entities.Origin, error) {
	return s.originRepo.List(ctx)
}

func (s *CoffeeService) index(ctx context.Context, coffee *entities.CoffeeBean) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, coffee); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("coffee_id", coffee.ID).
			Msg("failed to index coffee")
	}
}
