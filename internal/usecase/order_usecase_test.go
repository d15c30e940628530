package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderUsecase_CreateOrderFromCart_Unauthorized(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CreateOrderFromCart(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}

func TestOrderUsecase_CreateOrderFromCart_NoActiveCart(t *testing.T) {
	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)

	tx.Repos = &TxReposMock{carts: cartsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CreateOrderFromCart(context.Background(), 1)
	assertErrContains(t, err, "cart is empty or does not exist")
}

func TestOrderUsecase_CreateOrderFromCart_EmptyCart(t *testing.T) {
	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	itemsRepo := new(CartItemRepoMock)

	tx.Repos = &TxReposMock{carts: cartsRepo, cartItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1, IsActive: true}, nil)
	itemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CreateOrderFromCart(context.Background(), 1)
	assertErrContains(t, err, "cart is empty or does not exist")
}

// 100円×2 + 50円×1 = 250。価格は商品マスタからスナップショットされる。
func TestOrderUsecase_CreateOrderFromCart_TotalAndSnapshot(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	cartItemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{
		carts:      cartsRepo,
		cartItems:  cartItemsRepo,
		products:   productsRepo,
		orders:     ordersRepo,
		orderItems: orderItemsRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	userID := int64(7)
	cartID := int64(12)

	cartsRepo.On("FindActiveByUserID", mock.Anything, userID).Return(model.Cart{ID: cartID, UserID: userID, IsActive: true}, nil)
	cartItemsRepo.On("ListByCartID", mock.Anything, cartID).Return([]model.CartItem{
		{ID: 1, CartID: cartID, ProductID: 100, Quantity: 2, Size: "M"},
		{ID: 2, CartID: cartID, ProductID: 101, Quantity: 1, Size: "L"},
	}, nil)

	productsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Product{
		ID: 100, Title: "Tee", Price: decimal.NewFromInt(100), InStock: true,
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{
		ID: 101, Title: "Cap", Price: decimal.NewFromInt(50), InStock: true,
	}, nil)

	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == userID &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusUnpaid &&
			o.TotalAmount.Equal(decimal.NewFromInt(250))
	})).Return(int64(30), nil)

	orderItemsRepo.On("CreateBulk", mock.Anything, int64(30), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		// 凍結価格：商品マスタの現在価格が明細に写る
		return items[0].ProductID == 100 && items[0].Price.Equal(decimal.NewFromInt(100)) && items[0].Quantity == 2 &&
			items[1].ProductID == 101 && items[1].Price.Equal(decimal.NewFromInt(50)) && items[1].Quantity == 1
	})).Return(nil)

	cartsRepo.On("Deactivate", mock.Anything, cartID).Return(nil)

	uc := usecase.NewOrderUsecase(tx)

	out, err := uc.CreateOrderFromCart(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), out.ID)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "unpaid", out.PaymentStatus)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 2, len(out.Items))

	cartsRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	orderItemsRepo.AssertExpectations(t)
}

// 明細書き込みが失敗したらカートは無効化されない（同一Txでロールバック前提）
func TestOrderUsecase_CreateOrderFromCart_BulkFails_NoDeactivate(t *testing.T) {
	tx := new(TxManagerMock)
	cartsRepo := new(CartRepoMock)
	cartItemsRepo := new(CartItemRepoMock)
	productsRepo := new(ProductRepoMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{
		carts:      cartsRepo,
		cartItems:  cartItemsRepo,
		products:   productsRepo,
		orders:     ordersRepo,
		orderItems: orderItemsRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	cartsRepo.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1, IsActive: true}, nil)
	cartItemsRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 1, CartID: 5, ProductID: 100, Quantity: 1, Size: "M"},
	}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Product{
		ID: 100, Price: decimal.NewFromInt(10), InStock: true,
	}, nil)
	ordersRepo.On("Create", mock.Anything, mock.Anything).Return(int64(9), nil)
	orderItemsRepo.On("CreateBulk", mock.Anything, int64(9), mock.Anything).Return(errors.New("db down"))

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.CreateOrderFromCart(context.Background(), 1)
	assertErrContains(t, err, "db error")

	cartsRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestOrderUsecase_GetMyOrderItems_OtherUsersOrder_NotFound(t *testing.T) {
	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(40)).Return(model.Order{ID: 40, UserID: 99}, nil)

	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.GetMyOrderItems(context.Background(), 1, 40)
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_ListMyOrders_Success(t *testing.T) {
	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	orderItemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: orderItemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders := []model.Order{
		{ID: 2, UserID: 1, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusUnpaid},
		{ID: 1, UserID: 1, Status: model.OrderStatusProcessing, PaymentStatus: model.PaymentStatusPaid},
	}
	ordersRepo.On("ListByUserID", mock.Anything, int64(1), 1, 50).Return(orders, int64(2), nil)
	orderItemsRepo.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)
	orderItemsRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx)

	outs, err := uc.ListMyOrders(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))
	assert.Equal(t, int64(2), outs[0].ID)

	ordersRepo.AssertExpectations(t)
}
