package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// CoffeeAdapter implements CoffeeRepository
type CoffeeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCoffeeAdapter creates a new coffee adapter
func NewCoffeeAdapter(client *postgres.Client) repositories.CoffeeRepository {
	return &CoffeeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var coffeeColumns = []interface{}{
	goqu.I("cb.id"), goqu.I("cb.name"), goqu.I("cb.origin_id"), goqu.I("o.name").As("origin_name"),
	goqu.I("cb.region"), goqu.I("cb.variety"), goqu.I("cb.process"),
	goqu.I("cb.altitude_min"), goqu.I("cb.altitude_max"), goqu.I("cb.flavor_notes"),
	goqu.I("cb.description"), goqu.I("cb.grind_size"), goqu.I("cb.ratio"),
	goqu.I("cb.temperature"), goqu.I("cb.brew_time"),
	goqu.I("cb.is_active"), goqu.I("cb.created_at"), goqu.I("cb.updated_at"),
}

func (a *CoffeeAdapter) baseSelect() *goqu.SelectDataset {
	return a.db.Select(coffeeColumns...).
		From(goqu.T("coffee_beans").As("cb")).
		Join(goqu.T("origins").As("o"), goqu.On(goqu.I("cb.origin_id").Eq(goqu.I("o.id"))))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoffee(row rowScanner) (*entities.CoffeeBean, error) {
	coffee := &entities.CoffeeBean{}
	var altitudeMin, altitudeMax sql.NullInt64
	var description, grindSize, ratio, temperature, brewTime sql.NullString

	err := row.Scan(
		&coffee.ID,
		&coffee.Name,
		&coffee.OriginID,
		&coffee.OriginName,
		&coffee.Region,
		&coffee.Variety,
		&coffee.Process,
		&altitudeMin,
		&altitudeMax,
		pq.Array(&coffee.FlavorNotes),
		&description,
		&grindSize,
		&ratio,
		&temperature,
		&brewTime,
		&coffee.IsActive,
		&coffee.CreatedAt,
		&coffee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if altitudeMin.Valid {
		v := int(altitudeMin.Int64)
		coffee.AltitudeMin = &v
	}
	if altitudeMax.Valid {
		v := int(altitudeMax.Int64)
		coffee.AltitudeMax = &v
	}
	coffee.Description = description.String
	coffee.GrindSize = grindSize.String
	coffee.Ratio = ratio.String
	coffee.Temperature = temperature.String
	coffee.BrewTime = brewTime.String

	return coffee, nil
}

// Create creates a new coffee bean
func (a *CoffeeAdapter) Create(ctx context.Context, coffee *entities.CoffeeBean) error {
	record := goqu.Record{
		"id":           coffee.ID,
		"name":         coffee.Name,
		"origin_id":    coffee.OriginID,
		"region":       coffee.Region,
		"variety":      coffee.Variety,
		"process":      coffee.Process,
		"altitude_min": nullableInt(coffee.AltitudeMin),
		"altitude_max": nullableInt(coffee.AltitudeMax),
		"flavor_notes": pq.Array(coffee.FlavorNotes),
		"description":  sql.NullString{String: coffee.Description, Valid: coffee.Description != ""},
		"grind_size":   sql.NullString{String: coffee.GrindSize, Valid: coffee.GrindSize != ""},
		"ratio":        sql.NullString{String: coffee.Ratio, Valid: coffee.Ratio != ""},
		"temperature":  sql.NullString{String: coffee.Temperature, Valid: coffee.Temperature != ""},
		"brew_time":    sql.NullString{String: coffee.BrewTime, Valid: coffee.BrewTime != ""},
		"is_active":    coffee.IsActive,
		"created_at":   coffee.CreatedAt,
		"updated_at":   coffee.UpdatedAt,
	}

	query, args, err := a.db.Insert("coffee_beans").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create coffee bean", err)
	}

	return nil
}

// Update updates a coffee bean
func (a *CoffeeAdapter) Update(ctx context.Context, coffee *entities.CoffeeBean) error {
	coffee.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"name":         coffee.Name,
		"origin_id":    coffee.OriginID,
		"region":       coffee.Region,
		"variety":      coffee.Variety,
		"process":      coffee.Process,
		"altitude_min": nullableInt(coffee.AltitudeMin),
		"altitude_max": nullableInt(coffee.AltitudeMax),
		"flavor_notes": pq.Array(coffee.FlavorNotes),
		"description":  sql.NullString{String: coffee.Description, Valid: coffee.Description != ""},
		"is_active":    coffee.IsActive,
		"updated_at":   coffee.UpdatedAt,
	}

	query, args, err := a.db.Update("coffee_beans").
		Set(record).
		Where(goqu.Ex{"id": coffee.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update coffee bean", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("coffee bean with id %s not found", coffee.ID))
	}

	return nil
}

// GetByID retrieves a coffee bean by ID
func (a *CoffeeAdapter) GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"cb.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	coffee, err := scanCoffee(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("coffee bean with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get coffee bean", err)
	}

	return coffee, nil
}

// GetByIDs retrieves multiple coffee beans by their IDs
func (a *CoffeeAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.CoffeeBean, error) {
	if len(ids) == 0 {
		return []*entities.CoffeeBean{}, nil
	}

	query, args, err := a.baseSelect().
		Where(goqu.Ex{"cb.id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCoffees(ctx, query, args)
}

// ListActive returns every active coffee bean in stable catalog order
func (a *CoffeeAdapter) ListActive(ctx context.Context) ([]*entities.CoffeeBean, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"cb.is_active": true}).
		Order(goqu.I("cb.created_at").Asc(), goqu.I("cb.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCoffees(ctx, query, args)
}

// List returns active coffee beans matching the filter
func (a *CoffeeAdapter) List(ctx context.Context, filter repositories.CoffeeFilter) ([]*entities.CoffeeBean, error) {
	ds := a.baseSelect().Where(goqu.Ex{"cb.is_active": true})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("cb.name").ILike(pattern),
			goqu.I("o.name").ILike(pattern),
			goqu.I("cb.region").ILike(pattern),
			goqu.I("cb.variety").ILike(pattern),
		))
	}
	if filter.OriginID != "" {
		ds = ds.Where(goqu.Ex{"cb.origin_id": filter.OriginID})
	}
	if filter.Process != "" {
		ds = ds.Where(goqu.Ex{"cb.process": filter.Process})
	}
	if filter.Variety != "" {
		ds = ds.Where(goqu.I("cb.variety").ILike("%" + filter.Variety + "%"))
	}

	ds = ds.Order(goqu.I("cb.created_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCoffees(ctx, query, args)
}

func (a *CoffeeAdapter) queryCoffees(ctx context.Context, query string, args []interface{}) ([]*entities.CoffeeBean, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query coffee beans", err)
	}
	defer rows.Close()

	var coffees []*entities.CoffeeBean
	for rows.Next() {
		coffee, err := scanCoffee(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan coffee bean", err)
		}
		coffees = append(coffees, coffee)
	}

	return coffees, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
