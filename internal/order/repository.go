package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (int64, error)
	GetSummary(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	GetDetail(ctx context.Context, orderID int64) (*Order, error)
	ListItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]Order, error)
	GetStatus(ctx context.Context, orderID int64) (Status, bool, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to Status) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateFromCart turns the user's cart into an order in one transaction:
// lock cart rows, insert the order and its lines at the prices read under
// the lock, then empty the cart. Any failure rolls everything back.
func (r *repository) CreateFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback()

	lines, err := lockCartLines(ctx, tx, userID)
	if err != nil {
		log.Error("failed to read cart", zap.Error(err))
		return 0, err
	}
	if len(lines) == 0 {
		return 0, ErrCartEmpty
	}

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, shipping_address, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, total(lines), shippingAddress, paymentMethod, StatusPending,
	).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	for _, l := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4)`,
			orderID, l.ItemID, l.Quantity, l.Price,
		)
		if err != nil {
			log.Error("failed to insert order item", zap.Int64("item_id", l.ItemID), zap.Error(err))
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout", zap.Error(err))
		return 0, err
	}

	log.Info("order created", zap.Int64("order_id", orderID), zap.Int("lines", len(lines)))
	return orderID, nil
}

func lockCartLines(ctx context.Context, tx *sql.Tx, userID int64) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.item_id, c.quantity, i.price
		FROM cart c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.id
		FOR UPDATE OF c`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.ItemID, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

const summaryQuery = `
	SELECT o.id, o.user_id, o.total_amount, o.shipping_address, o.payment_method,
	       o.status, o.created_at, o.updated_at, COUNT(oi.id) AS item_count
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id`

func scanSummary(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var count int
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
		&o.Status, &o.CreatedAt, &o.UpdatedAt, &count,
	)
	if err != nil {
		return nil, err
	}
	o.ItemCount = &count
	return &o, nil
}

func (r *repository) GetSummary(ctx context.Context, orderID int64) (*Order, error) {
	o, err := scanSummary(r.db.QueryRowContext(ctx,
		summaryQuery+` WHERE o.id = $1 GROUP BY o.id`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		summaryQuery+` WHERE o.user_id = $1 GROUP BY o.id ORDER BY o.created_at DESC, o.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

const buyerColumns = `o.id, o.user_id, o.total_amount, o.shipping_address, o.payment_method,
	o.status, o.created_at, o.updated_at, u.name, u.email`

func scanWithBuyer(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
		&o.Status, &o.CreatedAt, &o.UpdatedAt, &o.BuyerName, &o.BuyerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetDetail(ctx context.Context, orderID int64) (*Order, error) {
	o, err := scanWithBuyer(r.db.QueryRowContext(ctx, `
		SELECT `+buyerColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price_at_time,
		       i.title, i.description, i.image, u.name
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		JOIN users u ON u.id = i.created_by
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ItemID, &it.Quantity, &it.PriceAtTime,
			&it.Title, &it.Description, &it.Image, &it.SellerName,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) ListBySeller(ctx context.Context, sellerID int64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+buyerColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE EXISTS (
			SELECT 1 FROM order_items oi
			JOIN items i ON i.id = oi.item_id
			WHERE oi.order_id = o.id AND i.created_by = $1
		)
		ORDER BY o.created_at DESC, o.id DESC`, sellerID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list seller orders",
			zap.String("layer", "repository"),
			zap.String("method", "ListBySeller"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanWithBuyer(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *repository) GetStatus(ctx context.Context, orderID int64) (Status, bool, error) {
	var st Status
	err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return st, true, nil
}

// UpdateStatus moves the order only if it is still in from, so a concurrent
// transition is never overwritten.
func (r *repository) UpdateStatus(ctx context.Context, orderID int64, from, to Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		orderID, from, to,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
