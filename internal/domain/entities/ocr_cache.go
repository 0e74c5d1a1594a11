package entities

import "time"

// OCRCacheEntry maps an image fingerprint to the best match computed the
// first time that image was recognized. One entry per distinct image;
// it deliberately stores only the single best match, not the full
// ranked list.
type OCRCacheEntry struct {
	ID             string    `json:"id" db:"id"`
	ImageHash      string    `json:"image_hash" db:"image_hash"`
	RecognizedText string    `json:"recognized_text" db:"recognized_text"`
	MatchedCoffee  *string   `json:"matched_coffee_id,omitempty" db:"matched_coffee_id"`
	Confidence     float64   `json:"confidence" db:"confidence"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
