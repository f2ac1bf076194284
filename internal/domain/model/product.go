package model

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	ImageURL    *string   `json:"imageUrl"` // nil when the seller gave none
	CreatedAt   time.Time `json:"createdAt"`
}
