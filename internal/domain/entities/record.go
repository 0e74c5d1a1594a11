package entities

import "time"

// CheckinType distinguishes what kind of activity a user record captures
type CheckinType string

const (
	CheckinBrew     CheckinType = "brew"
	CheckinTaste    CheckinType = "taste"
	CheckinPurchase CheckinType = "purchase"
	CheckinWishlist CheckinType = "wishlist"
)

// UserRecord is one tasting/brewing entry in a user's activity log.
// CoffeeBean is populated by the repository join so consumers see the
// full activity snapshot without extra lookups.
type UserRecord struct {
	ID           string      `json:"id" db:"id"`
	UserID       string      `json:"user_id" db:"user_id"`
	CoffeeBeanID string      `json:"coffee_bean_id" db:"coffee_bean_id"`
	CoffeeBean   *CoffeeBean `json:"coffee_bean,omitempty" db:"-"`

	Rating *int   `json:"rating,omitempty" db:"rating"`
	Notes  string `json:"notes,omitempty" db:"notes"`

	BrewingMethod    string   `json:"brewing_method,omitempty" db:"brewing_method"`
	GrindSetting     string   `json:"grind_setting,omitempty" db:"grind_setting"`
	CoffeeWeight     *float64 `json:"coffee_weight,omitempty" db:"coffee_weight"`
	WaterWeight      *float64 `json:"water_weight,omitempty" db:"water_weight"`
	Ratio            string   `json:"ratio,omitempty" db:"ratio"`
	WaterTemperature *int     `json:"water_temperature,omitempty" db:"water_temperature"`
	BloomTime        *int     `json:"bloom_time,omitempty" db:"bloom_time"`
	TotalTime        *int     `json:"total_time,omitempty" db:"total_time"`

	// Taste scores, 1-10
	Acidity    *int `json:"acidity,omitempty" db:"acidity"`
	Sweetness  *int `json:"sweetness,omitempty" db:"sweetness"`
	Bitterness *int `json:"bitterness,omitempty" db:"bitterness"`
	Body       *int `json:"body,omitempty" db:"body"`
	Aftertaste *int `json:"aftertaste,omitempty" db:"aftertaste"`
	Balance    *int `json:"balance,omitempty" db:"balance"`

	FlavorTags  []string    `json:"flavor_tags,omitempty" db:"-"`
	CheckinType CheckinType `json:"checkin_type" db:"checkin_type"`

	RecognizedByOCR bool     `json:"recognized_by_ocr" db:"recognized_by_ocr"`
	OCRConfidence   *float64 `json:"ocr_confidence,omitempty" db:"ocr_confidence"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
