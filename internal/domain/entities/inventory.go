package entities

import "time"

// InventoryStatus tracks the lifecycle of a bag of beans
type InventoryStatus string

const (
	InventoryUnopened  InventoryStatus = "unopened"
	InventoryOpened    InventoryStatus = "opened"
	InventoryFinished  InventoryStatus = "finished"
	InventoryDiscarded InventoryStatus = "discarded"
)

// InventoryItem is one bag of coffee a user owns
type InventoryItem struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	CoffeeBeanID    string          `json:"coffee_bean_id" db:"coffee_bean_id"`
	CoffeeBean      *CoffeeBean     `json:"coffee_bean,omitempty" db:"-"`
	PurchaseDate    time.Time       `json:"purchase_date" db:"purchase_date"`
	PurchasePrice   *float64        `json:"purchase_price,omitempty" db:"purchase_price"`
	PurchaseWeight  float64         `json:"purchase_weight" db:"purchase_weight"`
	RemainingWeight float64         `json:"remaining_weight" db:"remaining_weight"`
	RoastDate       *time.Time      `json:"roast_date,omitempty" db:"roast_date"`
	Status          InventoryStatus `json:"status" db:"status"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
