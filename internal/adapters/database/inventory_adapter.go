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

// InventoryAdapter implements InventoryRepository
type InventoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInventoryAdapter creates a new inventory adapter
func NewInventoryAdapter(client *postgres.Client) repositories.InventoryRepository {
	return &InventoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var inventoryColumns = []interface{}{
	goqu.I("i.id"), goqu.I("i.user_id"), goqu.I("i.coffee_bean_id"),
	goqu.I("i.purchase_date"), goqu.I("i.purchase_price"),
	goqu.I("i.purchase_weight"), goqu.I("i.remaining_weight"),
	goqu.I("i.roast_date"), goqu.I("i.status"), goqu.I("i.notes"),
	goqu.I("i.created_at"), goqu.I("i.updated_at"),
}

// Create creates a new inventory item
func (a *InventoryAdapter) Create(ctx context.Context, item *entities.InventoryItem) error {
	record := goqu.Record{
		"id":               item.ID,
		"user_id":          item.UserID,
		"coffee_bean_id":   item.CoffeeBeanID,
		"purchase_date":    item.PurchaseDate,
		"purchase_price":   nullableFloatPtr(item.PurchasePrice),
		"purchase_weight":  item.PurchaseWeight,
		"remaining_weight": item.RemainingWeight,
		"roast_date":       nullableTimePtr(item.RoastDate),
		"status":           item.Status,
		"notes":            sql.NullString{String: item.Notes, Valid: item.Notes != ""},
		"created_at":       item.CreatedAt,
		"updated_at":       item.UpdatedAt,
	}

	query, args, err := a.db.Insert("user_inventory").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create inventory item", err)
	}

	return nil
}

// Update updates an inventory item
func (a *InventoryAdapter) Update(ctx context.Context, item *entities.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"remaining_weight": item.RemainingWeight,
		"status":           item.Status,
		"notes":            sql.NullString{String: item.Notes, Valid: item.Notes != ""},
		"updated_at":       item.UpdatedAt,
	}

	query, args, err := a.db.Update("user_inventory").
		Set(record).
		Where(goqu.Ex{"id": item.ID, "user_id": item.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update inventory item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("inventory item with id %s not found", item.ID))
	}

	return nil
}

// GetByID retrieves an inventory item with its coffee bean
func (a *InventoryAdapter) GetByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"i.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	item, err := scanInventoryItem(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("inventory item with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get inventory item", err)
	}

	return item, nil
}

// ListByUser returns the user's inventory, newest purchases first
func (a *InventoryAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"i.user_id": userID}).
		Order(goqu.I("i.purchase_date").Desc(), goqu.I("i.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query inventory", err)
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan inventory item", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (a *InventoryAdapter) baseSelect() *goqu.SelectDataset {
	columns := append([]interface{}{}, inventoryColumns...)
	columns = append(columns, coffeeColumns...)
	return a.db.Select(columns...).
		From(goqu.T("user_inventory").As("i")).
		Join(goqu.T("coffee_beans").As("cb"), goqu.On(goqu.I("i.coffee_bean_id").Eq(goqu.I("cb.id")))).
		Join(goqu.T("origins").As("o"), goqu.On(goqu.I("cb.origin_id").Eq(goqu.I("o.id"))))
}

func scanInventoryItem(row rowScanner) (*entities.InventoryItem, error) {
	item := &entities.InventoryItem{}
	coffee := &entities.CoffeeBean{}

	var purchasePrice sql.NullFloat64
	var roastDate sql.NullTime
	var notes sql.NullString

	var altitudeMin, altitudeMax sql.NullInt64
	var description, grindSize, ratio, temperature, brewTime sql.NullString

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.CoffeeBeanID,
		&item.PurchaseDate,
		&purchasePrice,
		&item.PurchaseWeight,
		&item.RemainingWeight,
		&roastDate,
		&item.Status,
		&notes,
		&item.CreatedAt,
		&item.UpdatedAt,

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

	item.PurchasePrice = floatPtrFromNull(purchasePrice)
	if roastDate.Valid {
		t := roastDate.Time
		item.RoastDate = &t
	}
	item.Notes = notes.String

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

	item.CoffeeBean = coffee
	return item, nil
}

func nullableTimePtr(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
