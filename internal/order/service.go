package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/lock"
	"thrift-store-be/internal/logger"
	"thrift-store-be/internal/metrics"

	"go.uber.org/zap"
)

const checkoutLockTTL = 30 * time.Second

type Service interface {
	Checkout(ctx context.Context, caller auth.Identity, in CheckoutInput) (*Order, error)
	List(ctx context.Context, caller auth.Identity) ([]Order, error)
	Get(ctx context.Context, caller auth.Identity, orderID int64) (*Order, error)
	ListBySeller(ctx context.Context, caller auth.Identity, sellerID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, orderID int64, in StatusInput) (*Order, error)
}

type service struct {
	repo    Repository
	locker  lock.Locker
	metrics *metrics.Orders
}

func NewService(repo Repository, locker lock.Locker, m *metrics.Orders) Service {
	if m == nil {
		m = &metrics.Orders{}
	}
	return &service{repo: repo, locker: locker, metrics: m}
}

func checkoutKey(userID int64) string {
	return fmt.Sprintf("checkout:%d", userID)
}

func (s *service) Checkout(ctx context.Context, caller auth.Identity, in CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)
	timer := metrics.StartTimer()
	s.metrics.Checkouts.Inc()

	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		return nil, ErrShippingRequired
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = DefaultPaymentMethod
	}

	release, err := s.locker.Acquire(ctx, checkoutKey(caller.ID), checkoutLockTTL)
	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		s.metrics.LockContention.Inc()
		log.Warn("concurrent checkout rejected")
		return nil, ErrCheckoutInProgress
	case err != nil:
		// the row lock inside the transaction still serializes checkouts
		log.Warn("checkout lock unavailable, continuing", zap.Error(err))
	default:
		defer release()
	}

	orderID, err := s.repo.CreateFromCart(ctx, caller.ID, address, payment)
	if err != nil {
		s.metrics.CheckoutFailures.Inc()
		return nil, err
	}
	s.metrics.OrdersCreated.Inc()

	o, err := s.repo.GetSummary(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	log.Info("checkout completed",
		zap.Int64("order_id", o.ID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, caller auth.Identity) ([]Order, error) {
	return s.repo.ListByUser(ctx, caller.ID)
}

// Get returns the order with its lines. Orders of other buyers are reported
// as missing unless the caller manages orders.
func (s *service) Get(ctx context.Context, caller auth.Identity, orderID int64) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || (o.UserID != caller.ID && !caller.Can(auth.PermManageOrders)) {
		return nil, ErrOrderNotFound
	}

	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (s *service) ListBySeller(ctx context.Context, caller auth.Identity, sellerID int64) ([]Order, error) {
	if caller.ID != sellerID && !caller.Can(auth.PermViewSellerOrders) {
		return nil, ErrNotAuthorized
	}
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *service) UpdateStatus(ctx context.Context, caller auth.Identity, orderID int64, in StatusInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
	)

	next, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		return nil, ErrInvalidStatus
	}
	if !caller.Can(auth.PermManageOrders) {
		return nil, ErrAdminRequired
	}

	current, found, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	if !current.CanTransitionTo(next) {
		log.Warn("illegal status transition", zap.String("from", string(current)), zap.String("to", string(next)))
		return nil, invalidTransition(current, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, current, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrStatusChanged
	}
	s.metrics.StatusChanges.Inc()

	log.Info("order status updated", zap.String("from", string(current)), zap.String("to", string(next)))
	return s.repo.GetSummary(ctx, orderID)
}
