package handler

import (
	"context"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/cart"
	"thrift-store-be/internal/item"
	"thrift-store-be/internal/order"
	"thrift-store-be/internal/product"
	"thrift-store-be/internal/upload"
	"thrift-store-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, in user.LoginInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockItemService struct{ mock.Mock }

func (m *MockItemService) List(ctx context.Context, opts item.ListOptions) ([]item.Item, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]item.Item), args.Error(1)
}

func (m *MockItemService) ListMine(ctx context.Context, caller auth.Identity) ([]item.Item, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]item.Item), args.Error(1)
}

func (m *MockItemService) Get(ctx context.Context, id int64) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, caller auth.Identity, in item.CreateInput) (*item.Item, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, caller auth.Identity, id int64, in item.UpdateInput) (*item.Item, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, caller auth.Identity, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) GetAll(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, caller auth.Identity, in product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, caller auth.Identity, id int64, in product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, caller auth.Identity, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockProductService) UploadImage(ctx context.Context, f upload.File) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Add(ctx context.Context, userID int64, in cart.AddInput) error {
	return m.Called(ctx, userID, in).Error(0)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID, itemID int64, in cart.UpdateInput) error {
	return m.Called(ctx, userID, itemID, in).Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, userID, itemID int64) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCartService) Get(ctx context.Context, userID int64) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, caller auth.Identity, in order.CheckoutInput) (*order.Order, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, caller auth.Identity) ([]order.Order, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, caller auth.Identity, orderID int64) (*order.Order, error) {
	args := m.Called(ctx, caller, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListBySeller(ctx context.Context, caller auth.Identity, sellerID int64) ([]order.Order, error) {
	args := m.Called(ctx, caller, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, caller auth.Identity, orderID int64, in order.StatusInput) (*order.Order, error) {
	args := m.Called(ctx, caller, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
