package product

import (
	"context"
	"strings"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/logger"
	"thrift-store-be/internal/upload"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ImageSaver interface {
	Save(ctx context.Context, kind upload.Kind, f upload.File) (string, error)
}

type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, caller auth.Identity, in CreateInput) (*Product, error)
	Update(ctx context.Context, caller auth.Identity, id int64, in UpdateInput) (*Product, error)
	Delete(ctx context.Context, caller auth.Identity, id int64) error
	UploadImage(ctx context.Context, f upload.File) (string, error)
}

type service struct {
	repo   Repository
	images ImageSaver
}

func NewService(repo Repository, images ImageSaver) Service {
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

func requireCatalog(caller auth.Identity) error {
	if !caller.Can(auth.PermManageCatalog) {
		return ErrAdminRequired
	}
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*Product, error) {
	if err := requireCatalog(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Price) == "" {
		return nil, ErrNamePriceMissing
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, Product{
		Name:        name,
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("layer", "service"),
		zap.Int64("product_id", p.ID),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, caller auth.Identity, id int64, in UpdateInput) (*Product, error) {
	if err := requireCatalog(caller); err != nil {
		return nil, err
	}

	c := changes{Description: in.Description, ImageURL: in.ImageURL, Category: in.Category}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, ErrEmptyName
		}
		c.Name = &n
	}
	if in.Price != nil {
		p, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		c.Price = &p
	}

	p, err := s.repo.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id int64) error {
	if err := requireCatalog(caller); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}

	logger.FromCtx(ctx).Info("product deleted",
		zap.String("layer", "service"),
		zap.Int64("product_id", id),
	)
	return nil
}

func (s *service) UploadImage(ctx context.Context, f upload.File) (string, error) {
	return s.images.Save(ctx, upload.KindProducts, f)
}
