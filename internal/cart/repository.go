package cart

import (
	"context"
	"database/sql"
	"errors"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ItemSeller(ctx context.Context, itemID int64) (sellerID int64, found bool, err error)
	Upsert(ctx context.Context, userID, itemID int64, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (bool, error)
	Remove(ctx context.Context, userID, itemID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context, userID int64) ([]Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ItemSeller(ctx context.Context, itemID int64) (int64, bool, error) {
	var sellerID int64
	err := r.db.QueryRowContext(ctx, `SELECT created_by FROM items WHERE id = $1`, itemID).Scan(&sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return sellerID, true, nil
}

// Upsert adds quantity to the (user, item) row, creating it if needed. The
// unique constraint makes concurrent adds merge instead of duplicating.
func (r *repository) Upsert(ctx context.Context, userID, itemID int64, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity`,
		userID, itemID, quantity,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to upsert cart row",
			zap.String("layer", "repository"),
			zap.String("method", "Upsert"),
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
	}
	return err
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (bool, error) {
	return affected(r.db.ExecContext(ctx,
		`UPDATE cart SET quantity = $1 WHERE user_id = $2 AND item_id = $3`,
		quantity, userID, itemID,
	))
}

func (r *repository) Remove(ctx context.Context, userID, itemID int64) (bool, error) {
	return affected(r.db.ExecContext(ctx,
		`DELETE FROM cart WHERE user_id = $1 AND item_id = $2`, userID, itemID,
	))
}

func (r *repository) Clear(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) List(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.item_id, c.quantity, c.created_at,
		       i.title, i.description, i.price, i.image, i.created_by, u.name
		FROM cart c
		JOIN items i ON i.id = c.item_id
		JOIN users u ON u.id = i.created_by
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC, c.id DESC`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list cart",
			zap.String("layer", "repository"),
			zap.String("method", "List"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.ItemID, &e.Quantity, &e.CreatedAt,
			&e.Title, &e.Description, &e.Price, &e.Image, &e.SellerID, &e.SellerName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
