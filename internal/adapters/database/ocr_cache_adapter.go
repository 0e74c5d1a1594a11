package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// OCRCacheAdapter implements OCRCacheRepository on the ocr_cache table.
// image_hash carries a unique constraint; Upsert converges concurrent
// writers for the same fingerprint onto one row (last write wins).
type OCRCacheAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOCRCacheAdapter creates a new OCR cache adapter
func NewOCRCacheAdapter(client *postgres.Client) repositories.OCRCacheRepository {
	return &OCRCacheAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByHash retrieves a cache entry by image fingerprint
func (a *OCRCacheAdapter) GetByHash(ctx context.Context, imageHash string) (*entities.OCRCacheEntry, error) {
	query, args, err := a.db.Select(
		"id", "image_hash", "recognized_text", "matched_coffee_id",
		"confidence", "created_at", "updated_at",
	).From("ocr_cache").
		Where(goqu.Ex{"image_hash": imageHash}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entry := &entities.OCRCacheEntry{}
	var matchedCoffee sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.ImageHash,
		&entry.RecognizedText,
		&matchedCoffee,
		&entry.Confidence,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no cache entry for fingerprint %s", imageHash))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get cache entry", err)
	}

	if matchedCoffee.Valid {
		entry.MatchedCoffee = &matchedCoffee.String
	}

	return entry, nil
}

// Upsert inserts or refreshes the entry for the fingerprint
func (a *OCRCacheAdapter) Upsert(ctx context.Context, entry *entities.OCRCacheEntry) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	matched := sql.NullString{}
	if entry.MatchedCoffee != nil {
		matched = sql.NullString{String: *entry.MatchedCoffee, Valid: true}
	}

	record := goqu.Record{
		"id":                entry.ID,
		"image_hash":        entry.ImageHash,
		"recognized_text":   entry.RecognizedText,
		"matched_coffee_id": matched,
		"confidence":        entry.Confidence,
		"created_at":        entry.CreatedAt,
		"updated_at":        entry.UpdatedAt,
	}

	query, args, err := a.db.Insert("ocr_cache").
		Rows(record).
		OnConflict(goqu.DoUpdate("image_hash", goqu.Record{
			"recognized_text":   entry.RecognizedText,
			"matched_coffee_id": matched,
			"confidence":        entry.Confidence,
			"updated_at":        entry.UpdatedAt,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert cache entry", err)
	}

	return nil
}
