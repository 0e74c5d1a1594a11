package entities

import "time"

// User represents an account in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Nickname  string    `json:"nickname,omitempty" db:"nickname"`
	Email     string    `json:"email" db:"email"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
