package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ItemSeller(ctx context.Context, itemID int64) (int64, bool, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRepository) Upsert(ctx context.Context, userID, itemID int64, quantity int) error {
	return m.Called(ctx, userID, itemID, quantity).Error(0)
}

func (m *MockRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (bool, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, userID, itemID int64) (bool, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID int64) ([]Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func intPtr(i int) *int { return &i }

const (
	seller = int64(1)
	buyer  = int64(2)
)

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsQuantityToOne", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ItemSeller", ctx, int64(10)).Return(seller, true, nil)
		repo.On("Upsert", ctx, buyer, int64(10), 1).Return(nil)

		require.NoError(t, NewService(repo).Add(ctx, buyer, AddInput{ItemID: 10}))
		repo.AssertExpectations(t)
	})

	t.Run("PassesQuantitiesThrough", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ItemSeller", ctx, int64(10)).Return(seller, true, nil)
		repo.On("Upsert", ctx, buyer, int64(10), 2).Return(nil).Once()
		repo.On("Upsert", ctx, buyer, int64(10), 3).Return(nil).Once()

		svc := NewService(repo)
		require.NoError(t, svc.Add(ctx, buyer, AddInput{ItemID: 10, Quantity: intPtr(2)}))
		require.NoError(t, svc.Add(ctx, buyer, AddInput{ItemID: 10, Quantity: intPtr(3)}))
		repo.AssertExpectations(t)
	})

	t.Run("OwnItemRejected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ItemSeller", ctx, int64(10)).Return(seller, true, nil)

		err := NewService(repo).Add(ctx, seller, AddInput{ItemID: 10})
		assert.ErrorIs(t, err, ErrOwnItem)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ItemNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ItemSeller", ctx, int64(404)).Return(int64(0), false, nil)

		assert.ErrorIs(t, NewService(repo).Add(ctx, buyer, AddInput{ItemID: 404}), ErrItemNotFound)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		assert.ErrorIs(t, svc.Add(ctx, buyer, AddInput{}), ErrItemIDRequired)
		assert.ErrorIs(t, svc.Add(ctx, buyer, AddInput{ItemID: 1, Quantity: intPtr(0)}), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.Add(ctx, buyer, AddInput{ItemID: 1, Quantity: intPtr(MaxQuantity + 1)}), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.Add(ctx, buyer, AddInput{ItemID: 1, Quantity: intPtr(2147483647)}), ErrInvalidQuantity)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("UpdateQuantity", ctx, buyer, int64(10), 5).Return(true, nil)
		assert.NoError(t, NewService(repo).UpdateQuantity(ctx, buyer, 10, UpdateInput{Quantity: intPtr(5)}))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("UpdateQuantity", ctx, buyer, int64(10), 5).Return(false, nil)
		assert.ErrorIs(t, NewService(repo).UpdateQuantity(ctx, buyer, 10, UpdateInput{Quantity: intPtr(5)}), ErrCartItemNotFound)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		assert.ErrorIs(t, svc.UpdateQuantity(ctx, buyer, 10, UpdateInput{}), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.UpdateQuantity(ctx, buyer, 10, UpdateInput{Quantity: intPtr(0)}), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.UpdateQuantity(ctx, buyer, 10, UpdateInput{Quantity: intPtr(MaxQuantity + 1)}), ErrInvalidQuantity)
	})
}

func TestService_RemoveClear(t *testing.T) {
	ctx := context.Background()

	t.Run("RemoveNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Remove", ctx, buyer, int64(10)).Return(false, nil)
		assert.ErrorIs(t, NewService(repo).Remove(ctx, buyer, 10), ErrCartItemNotFound)
	})

	t.Run("ClearEmptyCartSucceeds", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Clear", ctx, buyer).Return(int64(0), nil)
		assert.NoError(t, NewService(repo).Clear(ctx, buyer))
	})

	t.Run("ClearDBError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Clear", ctx, buyer).Return(int64(0), errors.New("db error"))
		assert.Error(t, NewService(repo).Clear(ctx, buyer))
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("List", ctx, buyer).Return([]Entry{
		{ItemID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ItemID: 2, Quantity: 1, Price: decimal.RequireFromString("0.10")},
	}, nil)

	c, err := NewService(repo).Get(ctx, buyer)
	require.NoError(t, err)
	assert.Equal(t, 3, c.ItemCount)
	assert.Equal(t, "20.10", c.Subtotal.StringFixed(2))
}
