package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/mpesa"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders            repo.OrderRepository
	orderItems        repo.OrderItemRepository
	carts             repo.CartRepository
	cartItems         repo.CartItemRepository
	products          repo.ProductRepository
	checkoutSessions  repo.CheckoutSessionRepository
	mpesaTransactions repo.MpesaTransactionRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                     { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository                       { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository               { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository                 { return r.products }
func (r *TxReposMock) CheckoutSessions() repo.CheckoutSessionRepository { return r.checkoutSessions }
func (r *TxReposMock) MpesaTransactions() repo.MpesaTransactionRepository {
	return r.mpesaTransactions
}

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdatePayment(ctx context.Context, orderID int64, status model.OrderStatus, payment model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status, payment)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Create(ctx context.Context, cart model.Cart) (int64, error) {
	args := m.Called(ctx, cart)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartRepoMock) Deactivate(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartProductSize(ctx context.Context, cartID int64, productID int64, size string) (model.CartItem, bool, error) {
	args := m.Called(ctx, cartID, productID, size)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Bool(1), args.Error(2)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartItemRepoMock) Update(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) Delete(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type CheckoutSessionRepoMock struct{ mock.Mock }

func (m *CheckoutSessionRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.CheckoutSession, bool, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).(model.CheckoutSession)
	return s, args.Bool(1), args.Error(2)
}

func (m *CheckoutSessionRepoMock) Create(ctx context.Context, s model.CheckoutSession) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CheckoutSessionRepoMock) Update(ctx context.Context, s model.CheckoutSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MpesaTxRepoMock struct{ mock.Mock }

func (m *MpesaTxRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.MpesaTransaction, bool, error) {
	args := m.Called(ctx, orderID)
	t, _ := args.Get(0).(model.MpesaTransaction)
	return t, args.Bool(1), args.Error(2)
}

func (m *MpesaTxRepoMock) FindByCheckoutRequestIDForUpdate(ctx context.Context, checkoutRequestID string) (model.MpesaTransaction, error) {
	args := m.Called(ctx, checkoutRequestID)
	t, _ := args.Get(0).(model.MpesaTransaction)
	return t, args.Error(1)
}

func (m *MpesaTxRepoMock) Create(ctx context.Context, t model.MpesaTransaction) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MpesaTxRepoMock) Update(ctx context.Context, t model.MpesaTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.ShippingAddress, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.ShippingAddress)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.ShippingAddress, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.ShippingAddress)
	return list, args.Error(1)
}

func (m *AddressRepoMock) Create(ctx context.Context, a model.ShippingAddress) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AddressRepoMock) Update(ctx context.Context, a model.ShippingAddress) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AddressRepoMock) Delete(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

type PaymentMethodRepoMock struct{ mock.Mock }

func (m *PaymentMethodRepoMock) FindByID(ctx context.Context, methodID int64) (model.PaymentMethod, error) {
	args := m.Called(ctx, methodID)
	pm, _ := args.Get(0).(model.PaymentMethod)
	return pm, args.Error(1)
}

func (m *PaymentMethodRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.PaymentMethod)
	return list, args.Error(1)
}

func (m *PaymentMethodRepoMock) Create(ctx context.Context, pm model.PaymentMethod) (int64, error) {
	args := m.Called(ctx, pm)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentMethodRepoMock) Update(ctx context.Context, pm model.PaymentMethod) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *PaymentMethodRepoMock) Delete(ctx context.Context, methodID int64) error {
	args := m.Called(ctx, methodID)
	return args.Error(0)
}

func (m *PaymentMethodRepoMock) SetDefault(ctx context.Context, userID int64, methodID int64) error {
	args := m.Called(ctx, userID, methodID)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error) {
	args := m.Called(ctx, reviewID)
	r, _ := args.Get(0).(model.ProductReview)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error) {
	args := m.Called(ctx, productID)
	list, _ := args.Get(0).([]model.ProductReview)
	return list, args.Error(1)
}

func (m *ReviewRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.ProductReview, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.ProductReview)
	return list, args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, r model.ProductReview) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepoMock) Update(ctx context.Context, r model.ProductReview) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReviewRepoMock) Delete(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

// =====================
// Gateway / IDGenerator mocks
// =====================

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) STKPush(ctx context.Context, in mpesa.STKPushInput) (mpesa.STKPushResponse, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(mpesa.STKPushResponse)
	return res, args.Error(1)
}

func (m *GatewayMock) STKQuery(ctx context.Context, checkoutRequestID string) (mpesa.STKQueryResponse, error) {
	args := m.Called(ctx, checkoutRequestID)
	res, _ := args.Get(0).(mpesa.STKQueryResponse)
	return res, args.Error(1)
}

type staticIDGen struct{ id string }

func (g *staticIDGen) NewID() string { return g.id }

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
