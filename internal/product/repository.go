package product

import (
	"context"
	"database/sql"
	"errors"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int64, c changes) (*Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, image_url, category, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query products",
			zap.String("layer", "repository"),
			zap.String("method", "GetAll"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	created, err := scanProduct(r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, description, price, image_url, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category,
	))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product",
			zap.String("layer", "repository"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, c changes) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4, price),
			image_url   = COALESCE($5, image_url),
			category    = COALESCE($6, category),
			updated_at  = NOW()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, c.Name, c.Description, c.Price, c.ImageURL, c.Category,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
