package cart

import (
	"context"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, userID int64, in AddInput) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, in UpdateInput) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
	Get(ctx context.Context, userID int64) (*Cart, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID int64, in AddInput) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
	)

	if in.ItemID <= 0 {
		return ErrItemIDRequired
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	sellerID, found, err := s.repo.ItemSeller(ctx, in.ItemID)
	if err != nil {
		return err
	}
	if !found {
		return ErrItemNotFound
	}
	if sellerID == userID {
		log.Warn("self purchase rejected", zap.Int64("item_id", in.ItemID))
		return ErrOwnItem
	}

	if err := s.repo.Upsert(ctx, userID, in.ItemID, quantity); err != nil {
		return err
	}

	log.Info("item added to cart", zap.Int64("item_id", in.ItemID), zap.Int("quantity", quantity))
	return nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID int64, in UpdateInput) error {
	if in.Quantity == nil || *in.Quantity < 1 || *in.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	ok, err := s.repo.UpdateQuantity(ctx, userID, itemID, *in.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, itemID int64) error {
	ok, err := s.repo.Remove(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	n, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return err
	}
	logger.FromCtx(ctx).Debug("cart cleared", zap.Int64("rows", n))
	return nil
}

func (s *service) Get(ctx context.Context, userID int64) (*Cart, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newCart(entries), nil
}
