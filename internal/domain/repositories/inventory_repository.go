package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// InventoryRepository manages a user's coffee bean inventory
type InventoryRepository interface {
	Create(ctx context.Context, item *entities.InventoryItem) error
	Update(ctx context.Context, item *entities.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entities.InventoryItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.InventoryItem, error)
}
