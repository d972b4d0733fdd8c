package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions lists the legal next states; delivered and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := transitions[st]
	return st, ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	_, known := transitions[s]
	return known && len(transitions[s]) == 0
}

const DefaultPaymentMethod = "Credit Card"

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ItemCount       *int            `json:"item_count,omitempty"`
	BuyerName       string          `json:"buyer_name,omitempty"`
	BuyerEmail      string          `json:"buyer_email,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ItemID      int64           `json:"item_id"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	SellerName  string          `json:"seller_name"`
}

type CheckoutInput struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type StatusInput struct {
	Status string `json:"status"`
}

// cartLine is a cart row read inside the checkout transaction.
type cartLine struct {
	ItemID   int64
	Quantity int
	Price    decimal.Decimal
}

func total(lines []cartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.Round(2)
}
