package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one cart row joined with the listed item.
type Entry struct {
	ID          int64           `json:"id"`
	ItemID      int64           `json:"item_id"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
	SellerID    int64           `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
}

func (e Entry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type Cart struct {
	Items     []Entry         `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func newCart(entries []Entry) *Cart {
	c := &Cart{Items: entries, Subtotal: decimal.Zero}
	for _, e := range entries {
		c.ItemCount += e.Quantity
		c.Subtotal = c.Subtotal.Add(e.LineTotal())
	}
	c.Subtotal = c.Subtotal.Round(2)
	return c
}

type AddInput struct {
	ItemID   int64 `json:"item_id"`
	Quantity *int  `json:"quantity"`
}

type UpdateInput struct {
	Quantity *int `json:"quantity"`
}
