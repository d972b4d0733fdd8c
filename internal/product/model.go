package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Category    *string         `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
}

// UpdateInput fields left nil keep their stored value.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
}

type changes struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
}
