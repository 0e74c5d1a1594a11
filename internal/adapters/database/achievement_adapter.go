package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// AchievementAdapter implements AchievementRepository
type AchievementAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAchievementAdapter creates a new achievement adapter
func NewAchievementAdapter(client *postgres.Client) repositories.AchievementRepository {
	return &AchievementAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var achievementColumns = []interface{}{
	"id", "name", "description", "icon", "category", "rarity",
	"condition", "is_active", "created_at",
}

// Create creates a new achievement
func (a *AchievementAdapter) Create(ctx context.Context, achievement *entities.Achievement) error {
	condition, err := json.Marshal(achievement.Condition)
	if err != nil {
		return apperrors.NewInternalError("failed to encode achievement condition", err)
	}

	record := goqu.Record{
		"id":          achievement.ID,
		"name":        achievement.Name,
		"description": achievement.Description,
		"icon":        achievement.Icon,
		"category":    achievement.Category,
		"rarity":      achievement.Rarity,
		"condition":   condition,
		"is_active":   achievement.IsActive,
		"created_at":  achievement.CreatedAt,
	}

	query, args, err := a.db.Insert("achievements").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create achievement", err)
	}

	return nil
}

// GetByID retrieves an achievement by ID
func (a *AchievementAdapter) GetByID(ctx context.Context, id string) (*entities.Achievement, error) {
	query, args, err := a.db.Select(achievementColumns...).
		From("achievements").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	achievement, err := scanAchievement(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("achievement with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get achievement", err)
	}

	return achievement, nil
}

// ListActive returns all active achievements
func (a *AchievementAdapter) ListActive(ctx context.Context) ([]*entities.Achievement, error) {
	query, args, err := a.db.Select(achievementColumns...).
		From("achievements").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("category").Asc(), goqu.I("rarity").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query achievements", err)
	}
	defer rows.Close()

	var achievements []*entities.Achievement
	for rows.Next() {
		achievement, err := scanAchievement(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan achievement", err)
		}
		achievements = append(achievements, achievement)
	}

	return achievements, nil
}

func scanAchievement(row rowScanner) (*entities.Achievement, error) {
	achievement := &entities.Achievement{}
	var condition []byte

	err := row.Scan(
		&achievement.ID,
		&achievement.Name,
		&achievement.Description,
		&achievement.Icon,
		&achievement.Category,
		&achievement.Rarity,
		&condition,
		&achievement.IsActive,
		&achievement.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(condition) > 0 {
		if err := json.Unmarshal(condition, &achievement.Condition); err != nil {
			return nil, fmt.Errorf("malformed condition for achievement %s: %w", achievement.ID, err)
		}
	}

	return achievement, nil
}

// UserAchievementAdapter implements UserAchievementRepository
type UserAchievementAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAchievementAdapter creates a new user achievement adapter
func NewUserAchievementAdapter(client *postgres.Client) repositories.UserAchievementRepository {
	return &UserAchievementAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert creates an unlock record. The unique constraint on
// (user_id, achievement_id) makes the unlock exactly-once: a losing
// concurrent writer gets false, nil instead of an error.
func (a *UserAchievementAdapter) Insert(ctx context.Context, ua *entities.UserAchievement) (bool, error) {
	record := goqu.Record{
		"id":             ua.ID,
		"user_id":        ua.UserID,
		"achievement_id": ua.AchievementID,
		"unlocked_at":    ua.UnlockedAt,
	}

	query, args, err := a.db.Insert("user_achievements").
		Rows(record).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build insert query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to insert user achievement", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// ListAchievementIDs returns the ids of achievements the user has unlocked
func (a *UserAchievementAdapter) ListAchievementIDs(ctx context.Context, userID string) ([]string, error) {
	query, args, err := a.db.Select("achievement_id").
		From("user_achievements").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query user achievements", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan achievement id", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ListByUser returns the user's unlock records, newest first
func (a *UserAchievementAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.UserAchievement, error) {
	query, args, err := a.db.Select("id", "user_id", "achievement_id", "unlocked_at").
		From("user_achievements").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("unlocked_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query user achievements", err)
	}
	defer rows.Close()

	var unlocks []*entities.UserAchievement
	for rows.Next() {
		ua := &entities.UserAchievement{}
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan user achievement", err)
		}
		unlocks = append(unlocks, ua)
	}

	return unlocks, nil
}

// CountByUser counts the user's unlocked achievements
func (a *UserAchievementAdapter) CountByUser(ctx context.Context, userID string) (int, error) {
	return a.count(ctx, goqu.Ex{"user_id": userID})
}

// CountByUserAndYear counts achievements unlocked in the given year
func (a *UserAchievementAdapter) CountByUserAndYear(ctx context.Context, userID string, year int) (int, error) {
	return a.count(ctx,
		goqu.Ex{"user_id": userID},
		goqu.L("EXTRACT(YEAR FROM unlocked_at) = ?", year),
	)
}

func (a *UserAchievementAdapter) count(ctx context.Context, conditions ...goqu.Expression) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("user_achievements").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count user achievements", err)
	}

	return count, nil
}
