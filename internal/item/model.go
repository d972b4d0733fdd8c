package item

import (
	"time"

	"thrift-store-be/internal/upload"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	CreatedBy   int64           `json:"created_by"`
	CreatorName string          `json:"creator_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateInput carries raw client values; Price is parsed by the service.
type CreateInput struct {
	Title       string
	Description *string
	Price       string
	Image       *string
	ImageFile   *upload.File
}

// UpdateInput fields left nil keep their stored value.
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *string
	Image       *string
	ImageFile   *upload.File
}

type ListOptions struct {
	Search   string
	SellerID *int64
	Limit    int
	Page     int
}

type listFilter struct {
	Search   string
	SellerID *int64
	Limit    int
	Offset   int
}

type changes struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
}
