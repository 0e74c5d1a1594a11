package repositories

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// OCRCacheRepository is the recognition cache boundary, keyed by image
// fingerprint. Upsert must converge to a single row per fingerprint no
// matter how many writers race.
type OCRCacheRepository interface {
	GetByHash(ctx context.Context, imageHash string) (*entities.OCRCacheEntry, error)
	Upsert(ctx context.Context, entry *entities.OCRCacheEntry) error
}
