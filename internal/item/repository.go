package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, f listFilter) ([]Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, it Item) (*Item, error)
	Update(ctx context.Context, id int64, c changes) (*Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `i.id, i.title, i.description, i.price, i.image, i.created_by, u.name, i.created_at, i.updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Title, &it.Description, &it.Price, &it.Image,
		&it.CreatedBy, &it.CreatorName, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) List(ctx context.Context, f listFilter) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(i.title ILIKE $%d OR i.description ILIKE $%d)", len(args), len(args)))
	}
	if f.SellerID != nil {
		args = append(args, *f.SellerID)
		where = append(where, fmt.Sprintf("i.created_by = $%d", len(args)))
	}

	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.created_by`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY i.created_at DESC, i.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item", zap.Error(err))
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN users u ON u.id = i.created_by WHERE i.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return it, err
}

func (r *repository) Create(ctx context.Context, it Item) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	created, err := scanItem(r.db.QueryRowContext(ctx, `
		WITH i AS (
			INSERT INTO items (title, description, price, image, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT `+itemColumns+` FROM i JOIN users u ON u.id = i.created_by`,
		it.Title, it.Description, it.Price, it.Image, it.CreatedBy,
	))
	if err != nil {
		log.Error("failed to insert item", zap.Int64("created_by", it.CreatedBy), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// Update applies the non-nil fields of c; created_by is never touched.
func (r *repository) Update(ctx context.Context, id int64, c changes) (*Item, error) {
	updated, err := scanItem(r.db.QueryRowContext(ctx, `
		WITH i AS (
			UPDATE items SET
				title       = COALESCE($2, title),
				description = COALESCE($3, description),
				price       = COALESCE($4, price),
				image       = COALESCE($5, image),
				updated_at  = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+itemColumns+` FROM i JOIN users u ON u.id = i.created_by`,
		id, c.Title, c.Description, c.Price, c.Image,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update item",
			zap.String("layer", "repository"),
			zap.String("method", "Update"),
			zap.Int64("item_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
