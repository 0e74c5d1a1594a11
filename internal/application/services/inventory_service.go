package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// InventoryService manages a user's bags of beans
type InventoryService struct {
	inventoryRepo repositories.InventoryRepository
	coffeeRepo    repositories.CoffeeRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repositories.InventoryRepository,
	coffeeRepo repositories.CoffeeRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		coffeeRepo:    coffeeRepo,
	}
}

// Add registers a new bag
func (s *InventoryService) Add(ctx context.Context, item *entities.InventoryItem) (*entities.InventoryItem, error) {
	if item.UserID == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	if item.PurchaseWeight <= 0 {
		return nil, apperrors.NewValidationError("purchase_weight must be positive")
	}

	coffee, err := s.coffeeRepo.GetByID(ctx, item.CoffeeBeanID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("coffee does not exist")
		}
		return nil, err
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = entities.InventoryUnopened
	}
	if item.RemainingWeight == 0 {
		item.RemainingWeight = item.PurchaseWeight
	}
	if item.PurchaseDate.IsZero() {
		item.PurchaseDate = time.Now().UTC()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.CoffeeBean = coffee
	return item, nil
}

// Consume deducts used grams from a bag, opening it on first use and
// marking it finished when it runs out
func (s *InventoryService) Consume(ctx context.Context, id string, grams float64) (*entities.InventoryItem, error) {
	if grams <= 0 {
		return nil, apperrors.NewValidationError("grams must be positive")
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status == entities.InventoryFinished || item.Status == entities.InventoryDiscarded {
		return nil, apperrors.NewConflictError("bag is no longer in use")
	}

	item.RemainingWeight -= grams
	if item.RemainingWeight <= 0 {
		item.RemainingWeight = 0
		item.Status = entities.InventoryFinished
	} else if item.Status == entities.InventoryUnopened {
		item.Status = entities.InventoryOpened
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateStatus sets a bag's lifecycle status directly
func (s *InventoryService) UpdateStatus(ctx context.Context, id string, status entities.InventoryStatus) (*entities.InventoryItem, error) {
	switch status {
	case entities.InventoryUnopened, entities.InventoryOpened,
		entities.InventoryFinished, entities.InventoryDiscarded:
	default:
		return nil, apperrors.NewValidationError("invalid inventory status")
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListByUser returns a user's bags
func (s *InventoryService) ListByUser(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	return s.inventoryRepo.ListByUser(ctx, userID)
}
