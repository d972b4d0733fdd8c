package item

import (
	"context"
	"strings"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/logger"
	"thrift-store-be/internal/upload"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 100
	maxPage      = 10000
)

// ImageStore persists uploaded images and returns their public path.
type ImageStore interface {
	Save(ctx context.Context, kind upload.Kind, f upload.File) (string, error)
	Remove(publicPath string) error
}

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Item, error)
	ListMine(ctx context.Context, caller auth.Identity) ([]Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, caller auth.Identity, in CreateInput) (*Item, error)
	Update(ctx context.Context, caller auth.Identity, id int64, in UpdateInput) (*Item, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) error
}

type service struct {
	repo   Repository
	images ImageStore
}

func NewService(repo Repository, images ImageStore) Service {
	return &service{repo: repo, images: images}
}

// maxPrice is the exclusive bound of a NUMERIC(10,2) column.
var maxPrice = decimal.New(1, 8)

// parsePrice accepts non-negative amounts below maxPrice with at most two
// significant decimal places. Exponents are bounded before any arithmetic so
// inputs like "1e900000000" never get expanded.
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxPriceLen {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	p, err := decimal.NewFromString(raw)
	if err != nil || p.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if exp := p.Exponent(); exp > 8 || exp < -maxPriceLen {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if p.Cmp(maxPrice) >= 0 || !p.Round(2).Equal(p) {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return p.Round(2), nil
}

const maxPriceLen = 32

func normalize(opts ListOptions) listFilter {
	if opts.Page <= 0 {
		opts.Page = 1
	} else if opts.Page > maxPage {
		opts.Page = maxPage
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	} else if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	return listFilter{
		Search:   strings.TrimSpace(opts.Search),
		SellerID: opts.SellerID,
		Limit:    opts.Limit,
		Offset:   (opts.Page - 1) * opts.Limit,
	}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Item, error) {
	f := normalize(opts)
	logger.FromCtx(ctx).Debug("list items requested",
		zap.String("layer", "service"),
		zap.String("method", "List"),
		zap.String("search", f.Search),
		zap.Int("limit", f.Limit),
		zap.Int("offset", f.Offset),
	)
	return s.repo.List(ctx, f)
}

func (s *service) ListMine(ctx context.Context, caller auth.Identity) ([]Item, error) {
	return s.repo.List(ctx, listFilter{SellerID: &caller.ID, Limit: maxLimit})
}

func (s *service) Get(ctx context.Context, id int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

func (s *service) storeImage(ctx context.Context, f *upload.File, fallback *string) (*string, bool, error) {
	if f == nil {
		return fallback, false, nil
	}
	public, err := s.images.Save(ctx, upload.KindItems, *f)
	if err != nil {
		return nil, false, err
	}
	return &public, true, nil
}

func (s *service) discard(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.images.Remove(*path); err != nil {
		logger.FromCtx(ctx).Warn("failed to remove image", zap.String("path", *path), zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Price) == "" {
		return nil, ErrTitlePriceMissing
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	image, stored, err := s.storeImage(ctx, in.ImageFile, in.Image)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Item{
		Title:       title,
		Description: in.Description,
		Price:       price,
		Image:       image,
		CreatedBy:   caller.ID,
	})
	if err != nil {
		if stored {
			s.discard(ctx, image)
		}
		return nil, err
	}

	log.Info("item created", zap.Int64("item_id", created.ID), zap.String("price", created.Price.StringFixed(2)))
	return created, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, in UpdateInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("item_id", id),
	)

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != caller.ID {
		log.Warn("update rejected: not owner", zap.Int64("owner_id", existing.CreatedBy))
		return nil, ErrUpdateForbidden
	}

	var c changes
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, ErrEmptyTitle
		}
		c.Title = &t
	}
	if in.Price != nil {
		p, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		c.Price = &p
	}
	c.Description = in.Description

	image, stored, err := s.storeImage(ctx, in.ImageFile, in.Image)
	if err != nil {
		return nil, err
	}
	c.Image = image

	updated, err := s.repo.Update(ctx, id, c)
	if err != nil || updated == nil {
		if stored {
			s.discard(ctx, image)
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrItemNotFound
	}

	if image != nil && existing.Image != nil && *existing.Image != *image {
		s.discard(ctx, existing.Image)
	}

	log.Info("item updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("item_id", id),
	)

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != caller.ID && !caller.Can(auth.PermDeleteAnyItem) {
		log.Warn("delete rejected: not owner", zap.Int64("owner_id", existing.CreatedBy))
		return ErrDeleteForbidden
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrItemNotFound
	}

	s.discard(ctx, existing.Image)
	log.Info("item deleted", zap.Bool("by_admin", existing.CreatedBy != caller.ID))
	return nil
}
