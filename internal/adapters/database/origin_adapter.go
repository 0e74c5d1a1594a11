package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// OriginAdapter implements OriginRepository
type OriginAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOriginAdapter creates a new origin adapter
func NewOriginAdapter(client *postgres.Client) repositories.OriginRepository {
	return &OriginAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var originColumns = []interface{}{
	"id", "name", "code", "latitude", "longitude",
	"description", "flavor_profile", "is_active", "created_at",
}

// Create creates a new origin
func (a *OriginAdapter) Create(ctx context.Context, origin *entities.Origin) error {
	record := goqu.Record{
		"id":             origin.ID,
		"name":           origin.Name,
		"code":           origin.Code,
		"latitude":       origin.Latitude,
		"longitude":      origin.Longitude,
		"description":    origin.Description,
		"flavor_profile": sql.NullString{String: origin.FlavorProfile, Valid: origin.FlavorProfile != ""},
		"is_active":      origin.IsActive,
		"created_at":     origin.CreatedAt,
	}

	query, args, err := a.db.Insert("origins").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create origin", err)
	}

	return nil
}

// GetByID retrieves an origin by ID
func (a *OriginAdapter) GetByID(ctx context.Context, id string) (*entities.Origin, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves an origin by its unique name
func (a *OriginAdapter) GetByName(ctx context.Context, name string) (*entities.Origin, error) {
	return a.getByField(ctx, "name", name)
}

// List returns all origins ordered by name
func (a *OriginAdapter) List(ctx context.Context) ([]*entities.Origin, error) {
	query, args, err := a.db.Select(originColumns...).
		From("origins").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query origins", err)
	}
	defer rows.Close()

	var origins []*entities.Origin
	for rows.Next() {
		origin, err := scanOrigin(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan origin", err)
		}
		origins = append(origins, origin)
	}

	return origins, nil
}

func (a *OriginAdapter) getByField(ctx context.Context, field, value string) (*entities.Origin, error) {
	query, args, err := a.db.Select(originColumns...).
		From("origins").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	origin, err := scanOrigin(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("origin with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get origin", err)
	}

	return origin, nil
}

func scanOrigin(row rowScanner) (*entities.Origin, error) {
	origin := &entities.Origin{}
	var flavorProfile sql.NullString

	err := row.Scan(
		&origin.ID,
		&origin.Name,
		&origin.Code,
		&origin.Latitude,
		&origin.Longitude,
		&origin.Description,
		&flavorProfile,
		&origin.IsActive,
		&origin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	origin.FlavorProfile = flavorProfile.String
	return origin, nil
}
