package entities

import "time"

// Rarity is the display tier of an achievement
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AchievementCategory groups achievements for display
type AchievementCategory string

const (
	CategoryOrigin  AchievementCategory = "origin"
	CategoryVariety AchievementCategory = "variety"
	CategoryProcess AchievementCategory = "process"
	CategoryCount   AchievementCategory = "count"
	CategorySpecial AchievementCategory = "special"
)

// Achievement is an externally authored unlockable with a declarative
// unlock condition. The evaluator never mutates it.
type Achievement struct {
	ID          string              `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Description string              `json:"description" db:"description"`
	Icon        string              `json:"icon" db:"icon"`
	Category    AchievementCategory `json:"category" db:"category"`
	Rarity      Rarity              `json:"rarity" db:"rarity"`
	Condition   Condition           `json:"condition" db:"-"`
	IsActive    bool                `json:"is_active" db:"is_active"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

// UserAchievement records one unlock. Unique per (user, achievement):
// once a row exists the achievement is terminal for that user.
type UserAchievement struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}
