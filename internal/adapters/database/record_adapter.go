package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// RecordAdapter implements RecordRepository
type RecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecordAdapter creates a new record adapter
func NewRecordAdapter(client *postgres.Client) repositories.RecordRepository {
	return &RecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var recordColumns = []interface{}{
	goqu.I("r.id"), goqu.I("r.user_id"), goqu.I("r.coffee_bean_id"),
	goqu.I("r.rating"), goqu.I("r.notes"),
	goqu.I("r.brewing_method"), goqu.I("r.grind_setting"),
	goqu.I("r.coffee_weight"), goqu.I("r.water_weight"), goqu.I("r.ratio"),
	goqu.I("r.water_temperature"), goqu.I("r.bloom_time"), goqu.I("r.total_time"),
	goqu.I("r.acidity"), goqu.I("r.sweetness"), goqu.I("r.bitterness"),
	goqu.I("r.body"), goqu.I("r.aftertaste"), goqu.I("r.balance"),
	goqu.I("r.flavor_tags"), goqu.I("r.checkin_type"),
	goqu.I("r.recognized_by_ocr"), goqu.I("r.ocr_confidence"),
	goqu.I("r.created_at"), goqu.I("r.updated_at"),
}

func (a *RecordAdapter) baseSelect() *goqu.SelectDataset {
	columns := append([]interface{}{}, recordColumns...)
	columns = append(columns, coffeeColumns...)
	return a.db.Select(columns...).
		From(goqu.T("user_records").As("r")).
		Join(goqu.T("coffee_beans").As("cb"), goqu.On(goqu.I("r.coffee_bean_id").Eq(goqu.I("cb.id")))).
		Join(goqu.T("origins").As("o"), goqu.On(goqu.I("cb.origin_id").Eq(goqu.I("o.id"))))
}

// Create creates a new user record
func (a *RecordAdapter) Create(ctx context.Context, record *entities.UserRecord) error {
	row := goqu.Record{
		"id":                record.ID,
		"user_id":           record.UserID,
		"coffee_bean_id":    record.CoffeeBeanID,
		"rating":            nullableIntPtr(record.Rating),
		"notes":             sql.NullString{String: record.Notes, Valid: record.Notes != ""},
		"brewing_method":    sql.NullString{String: record.BrewingMethod, Valid: record.BrewingMethod != ""},
		"grind_setting":     sql.NullString{String: record.GrindSetting, Valid: record.GrindSetting != ""},
		"coffee_weight":     nullableFloatPtr(record.CoffeeWeight),
		"water_weight":      nullableFloatPtr(record.WaterWeight),
		"ratio":             sql.NullString{String: record.Ratio, Valid: record.Ratio != ""},
		"water_temperature": nullableIntPtr(record.WaterTemperature),
		"bloom_time":        nullableIntPtr(record.BloomTime),
		"total_time":        nullableIntPtr(record.TotalTime),
		"acidity":           nullableIntPtr(record.Acidity),
		"sweetness":         nullableIntPtr(record.Sweetness),
		"bitterness":        nullableIntPtr(record.Bitterness),
		"body":              nullableIntPtr(record.Body),
		"aftertaste":        nullableIntPtr(record.Aftertaste),
		"balance":           nullableIntPtr(record.Balance),
		"flavor_tags":       pq.Array(record.FlavorTags),
		"checkin_type":      record.CheckinType,
		"recognized_by_ocr": record.RecognizedByOCR,
		"ocr_confidence":    nullableFloatPtr(record.OCRConfidence),
		"created_at":        record.CreatedAt,
		"updated_at":        record.UpdatedAt,
	}

	query, args, err := a.db.Insert("user_records").Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create user record", err)
	}

	return nil
}

// GetByID retrieves a record with its coffee bean
func (a *RecordAdapter) GetByID(ctx context.Context, id string) (*entities.UserRecord, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"r.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record, err := scanRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("record with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get record", err)
	}

	return record, nil
}

// ListByUser returns all records for a user, newest first, with the
// coffee bean and origin joined in
func (a *RecordAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.UserRecord, error) {
	query, args, err := a.baseSelect().
		Where(goqu.Ex{"r.user_id": userID}).
		Order(goqu.I("r.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRecords(ctx, query, args)
}

// ListByUserAndYear returns a user's records created in the given year
func (a *RecordAdapter) ListByUserAndYear(ctx context.Context, userID string, year int) ([]*entities.UserRecord, error) {
	query, args, err := a.baseSelect().
		Where(
			goqu.Ex{"r.user_id": userID},
			goqu.L("EXTRACT(YEAR FROM r.created_at) = ?", year),
		).
		Order(goqu.I("r.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRecords(ctx, query, args)
}

func (a *RecordAdapter) queryRecords(ctx context.Context, query string, args []interface{}) ([]*entities.UserRecord, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query records", err)
	}
	defer rows.Close()

	var records []*entities.UserRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan record", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func scanRecord(row rowScanner) (*entities.UserRecord, error) {
	record := &entities.UserRecord{}
	coffee := &entities.CoffeeBean{}

	var rating, waterTemp, bloomTime, totalTime sql.NullInt64
	var acidity, sweetness, bitterness, body, aftertaste, balance sql.NullInt64
	var coffeeWeight, waterWeight, ocrConfidence sql.NullFloat64
	var notes, brewingMethod, grindSetting, ratio sql.NullString

	var altitudeMin, altitudeMax sql.NullInt64
	var description, cbGrindSize, cbRatio, temperature, brewTime sql.NullString

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.CoffeeBeanID,
		&rating,
		&notes,
		&brewingMethod,
		&grindSetting,
		&coffeeWeight,
		&waterWeight,
		&ratio,
		&waterTemp,
		&bloomTime,
		&totalTime,
		&acidity,
		&sweetness,
		&bitterness,
		&body,
		&aftertaste,
		&balance,
		pq.Array(&record.FlavorTags),
		&record.CheckinType,
		&record.RecognizedByOCR,
		&ocrConfidence,
		&record.CreatedAt,
		&record.UpdatedAt,

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
		&cbGrindSize,
		&cbRatio,
		&temperature,
		&brewTime,
		&coffee.IsActive,
		&coffee.CreatedAt,
		&coffee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Rating = intPtrFromNull(rating)
	record.Notes = notes.String
	record.BrewingMethod = brewingMethod.String
	record.GrindSetting = grindSetting.String
	record.CoffeeWeight = floatPtrFromNull(coffeeWeight)
	record.WaterWeight = floatPtrFromNull(waterWeight)
	record.Ratio = ratio.String
	record.WaterTemperature = intPtrFromNull(waterTemp)
	record.BloomTime = intPtrFromNull(bloomTime)
	record.TotalTime = intPtrFromNull(totalTime)
	record.Acidity = intPtrFromNull(acidity)
	record.Sweetness = intPtrFromNull(sweetness)
	record.Bitterness = intPtrFromNull(bitterness)
	record.Body = intPtrFromNull(body)
	record.Aftertaste = intPtrFromNull(aftertaste)
	record.Balance = intPtrFromNull(balance)
	record.OCRConfidence = floatPtrFromNull(ocrConfidence)

	if altitudeMin.Valid {
		v := int(altitudeMin.Int64)
		coffee.AltitudeMin = &v
	}
	if altitudeMax.Valid {
		v := int(altitudeMax.Int64)
		coffee.AltitudeMax = &v
	}
	coffee.Description = description.String
	coffee.GrindSize = cbGrindSize.String
	coffee.Ratio = cbRatio.String
	coffee.Temperature = temperature.String
	coffee.BrewTime = brewTime.String

	record.CoffeeBean = coffee
	return record, nil
}

func nullableIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func intPtrFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func floatPtrFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
