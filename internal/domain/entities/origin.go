package entities

import "time"

// Origin represents a coffee producing country or region
type Origin struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Code          string    `json:"code" db:"code"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	Description   string    `json:"description" db:"description"`
	FlavorProfile string    `json:"flavor_profile,omitempty" db:"flavor_profile"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
