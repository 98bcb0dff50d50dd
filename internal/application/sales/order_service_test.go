package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	variants   *MockVariantRepository
	orders     *MockOrderRepository
	customers  *MockCustomerRepository
	shipments  *MockShipmentRepository
	activities *MockActivityRepository
	incomes    *MockIncomeRepository
	users      *MockUserRepository
	notifier   *MockNotifier
	service    *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		variants:   new(MockVariantRepository),
		orders:     new(MockOrderRepository),
		customers:  new(MockCustomerRepository),
		shipments:  new(MockShipmentRepository),
		activities: new(MockActivityRepository),
		incomes:    new(MockIncomeRepository),
		users:      new(MockUserRepository),
		notifier:   new(MockNotifier),
	}
	scope := NewNoOpTransactionScope(f.variants, f.orders, f.customers, f.shipments, f.activities, f.incomes)
	f.service = NewOrderService(scope, f.orders, f.users, zap.NewNop(), WithNotifier(f.notifier))
	return f
}

func newVariant(t *testing.T, tenantID uuid.UUID, price, adj int64, stock int) *catalog.ProductVariant {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, "Camiseta", decimal.NewFromInt(price))
	require.NoError(t, err)
	v, err := p.AddVariant("M", "", decimal.NewFromInt(adj), stock)
	require.NoError(t, err)
	v.Product = p
	return v
}

func TestCreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	tenantID := uuid.New()
	v := newVariant(t, tenantID, 50000, 5000, 10)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)
	f.orders.On("Create", ctx, mock.AnythingOfType("*sales.Order")).Return(nil)
	f.variants.On("DecrementStock", ctx, v.ID, 3).Return(nil)
	f.customers.On("FindByEmail", ctx, tenantID, "ana@mail.com").Return(nil, shared.ErrNotFound)
	f.customers.On("Create", ctx, mock.MatchedBy(func(c *sales.Customer) bool {
		return c.OrdersCount == 1 && c.TotalSpent.Equal(decimal.NewFromInt(165000))
	})).Return(nil)
	f.shipments.On("Create", ctx, mock.AnythingOfType("*sales.Shipment")).Return(nil)
	f.activities.On("Create", ctx, mock.MatchedBy(func(l *sales.ActivityLog) bool {
		return l.Action == sales.ActionOrderCreated
	})).Return(nil)
	f.incomes.On("Create", ctx, mock.MatchedBy(func(i *finance.Income) bool {
		return i.Category == finance.IncomeCategorySales && i.Amount.Equal(decimal.NewFromInt(165000))
	})).Return(nil)
	owner, _ := identity.NewUser("owner@shop.co", "secret123", "Tienda Ana")
	f.users.On("FindByID", ctx, tenantID).Return(owner, nil)
	f.notifier.On("NotifyOrderCreated", ctx, mock.AnythingOfType("*sales.Order"), "Tienda Ana").Return(nil)

	resp, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
		Items:         []OrderItemInput{{ProductVariantID: v.ID, Quantity: 3}},
		CustomerEmail: "ana@mail.com",
		Source:        "web",
	})
	require.NoError(t, err)

	assert.Equal(t, tenantID, resp.TenantID)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(165000)))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].PriceAtPurchase.Equal(decimal.NewFromInt(55000)))
	assert.Equal(t, "pending", resp.Status)

	f.variants.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.shipments.AssertExpectations(t)
	f.incomes.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCreateOrder_POSSkipsShipmentAndCustomer(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	tenantID := uuid.New()
	v := newVariant(t, tenantID, 10000, 0, 2)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)
	f.orders.On("Create", ctx, mock.Anything).Return(nil)
	f.variants.On("DecrementStock", ctx, v.ID, 2).Return(nil)
	f.activities.On("Create", ctx, mock.Anything).Return(nil)
	f.incomes.On("Create", ctx, mock.Anything).Return(nil)

	resp, err := f.service.CreateOrder(ctx, uuid.Nil, nil, CreateOrderRequest{
		Items: []OrderItemInput{{ProductVariantID: v.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, sales.SourcePOS, resp.Source)
	assert.Equal(t, tenantID, resp.TenantID)

	f.shipments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.customers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyOrderCreated", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_InsufficientStockMutatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	tenantID := uuid.New()
	v := newVariant(t, tenantID, 10000, 0, 2)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)

	_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
		Items: []OrderItemInput{{ProductVariantID: v.ID, Quantity: 3}},
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Insufficient stock for")

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.variants.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_DuplicateLinesCheckCombinedQuantity(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	v := newVariant(t, uuid.New(), 10000, 0, 3)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)

	_, err := f.service.CreateOrder(ctx, uuid.Nil, nil, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductVariantID: v.ID, Quantity: 2},
			{ProductVariantID: v.ID, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.variants.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_GuardedDecrementFailure(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	v := newVariant(t, uuid.New(), 10000, 0, 5)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)
	f.orders.On("Create", ctx, mock.Anything).Return(nil)
	f.variants.On("DecrementStock", ctx, v.ID, 5).Return(shared.ErrInsufficientStock)

	_, err := f.service.CreateOrder(ctx, uuid.Nil, nil, CreateOrderRequest{
		Items: []OrderItemInput{{ProductVariantID: v.ID, Quantity: 5}},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.incomes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("no items", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{})
		assert.Error(t, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
			Items: []OrderItemInput{{ProductVariantID: uuid.New(), Quantity: 0}},
		})
		assert.Error(t, err)
	})

	t.Run("variant not found", func(t *testing.T) {
		f := newOrderFixture()
		id := uuid.New()
		f.variants.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
			Items: []OrderItemInput{{ProductVariantID: id, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("products of two stores", func(t *testing.T) {
		f := newOrderFixture()
		a := newVariant(t, uuid.New(), 1000, 0, 5)
		b := newVariant(t, uuid.New(), 1000, 0, 5)
		f.variants.On("FindByID", ctx, a.ID).Return(a, nil)
		f.variants.On("FindByID", ctx, b.ID).Return(b, nil)

		_, err := f.service.CreateOrder(ctx, uuid.Nil, nil, CreateOrderRequest{
			Items: []OrderItemInput{{ProductVariantID: a.ID, Quantity: 1}, {ProductVariantID: b.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrMixedStores)
	})

	t.Run("products of another store", func(t *testing.T) {
		f := newOrderFixture()
		v := newVariant(t, uuid.New(), 1000, 0, 5)
		f.variants.On("FindByID", ctx, v.ID).Return(v, nil)

		_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
			Items: []OrderItemInput{{ProductVariantID: v.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrMixedStores)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCreateOrder_NotifierFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	tenantID := uuid.New()
	v := newVariant(t, tenantID, 1000, 0, 5)

	f.variants.On("FindByID", ctx, v.ID).Return(v, nil)
	f.orders.On("Create", ctx, mock.Anything).Return(nil)
	f.variants.On("DecrementStock", ctx, v.ID, 1).Return(nil)
	f.customers.On("FindByEmail", ctx, tenantID, "x@y.co").Return(&sales.Customer{}, nil)
	f.customers.On("Update", ctx, mock.Anything).Return(nil)
	f.activities.On("Create", ctx, mock.Anything).Return(nil)
	f.incomes.On("Create", ctx, mock.Anything).Return(nil)
	f.users.On("FindByID", ctx, tenantID).Return(nil, shared.ErrNotFound)
	f.notifier.On("NotifyOrderCreated", ctx, mock.Anything, "Bayup").Return(errors.New("smtp down"))

	_, err := f.service.CreateOrder(ctx, tenantID, nil, CreateOrderRequest{
		Items:         []OrderItemInput{{ProductVariantID: v.ID, Quantity: 1}},
		CustomerEmail: "x@y.co",
	})
	require.NoError(t, err)
	f.customers.AssertCalled(t, "Update", ctx, mock.Anything)
}

func TestCreateStorefrontOrder_UnknownStore(t *testing.T) {
	f := newOrderFixture()
	f.users.On("FindByShopSlug", mock.Anything, "nope").Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateStorefrontOrder(context.Background(), "nope", CreateOrderRequest{
		Items: []OrderItemInput{{ProductVariantID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	order, err := sales.NewOrder(uuid.New(), sales.CustomerInfo{}, "", "", "")
	require.NoError(t, err)

	f.orders.On("FindByID", ctx, order.TenantID, order.ID).Return(order, nil)
	f.orders.On("UpdateStatus", ctx, order.ID, sales.OrderStatusShipped).Return(nil)

	resp, err := f.service.UpdateOrderStatus(ctx, order.TenantID, order.ID, UpdateOrderStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)

	_, err = f.service.UpdateOrderStatus(ctx, order.TenantID, order.ID, UpdateOrderStatusRequest{Status: "lost"})
	assert.Error(t, err)
}

func TestReceipt_NotConfigured(t *testing.T) {
	f := newOrderFixture()
	_, err := f.service.Receipt(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotConfigured)
}
