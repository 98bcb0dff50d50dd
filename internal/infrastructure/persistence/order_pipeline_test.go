package persistence

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bayup/backend/internal/application/payment"
	appsales "github.com/bayup/backend/internal/application/sales"
	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/domain/studio"
	"github.com/bayup/backend/internal/infrastructure/cache"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

type storeFixture struct {
	owner   *identity.User
	product *catalog.Product
	variant catalog.ProductVariant
}

func seedStore(t *testing.T, db *gorm.DB, email string, stock int) storeFixture {
	t.Helper()
	ctx := context.Background()

	owner, err := identity.NewUser(email, "secret123", "Tienda "+email)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(ctx, owner))

	product, err := catalog.NewProduct(owner.ID, "Camiseta", decimal.NewFromInt(45000))
	require.NoError(t, err)
	_, err = product.AddVariant("M", "CAM-M", decimal.Zero, stock)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Create(ctx, product))

	return storeFixture{owner: owner, product: product, variant: product.Variants[0]}
}

func newOrderService(db *gorm.DB) *appsales.OrderService {
	return appsales.NewOrderService(
		NewGormTransactionScope(db),
		NewGormOrderRepository(db),
		NewGormUserRepository(db),
		zap.NewNop(),
	)
}

func stockOf(t *testing.T, db *gorm.DB, variantID uuid.UUID) int {
	t.Helper()
	v, err := NewGormVariantRepository(db).FindByID(context.Background(), variantID)
	require.NoError(t, err)
	return v.Stock
}

func TestCreateOrder_DecrementsStockByQuantity(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 10)
	ctx := context.Background()

	resp, err := newOrderService(db).CreateOrder(ctx, store.owner.ID, nil, appsales.CreateOrderRequest{
		Items:         []appsales.OrderItemInput{{ProductVariantID: store.variant.ID, Quantity: 3}},
		CustomerName:  "Ana",
		CustomerEmail: "Ana@Example.com",
		Source:        sales.SourceWeb,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, stockOf(t, db, store.variant.ID))
	assert.True(t, decimal.NewFromInt(135000).Equal(resp.TotalPrice))
	require.Len(t, resp.Items, 1)
	assert.True(t, decimal.NewFromInt(45000).Equal(resp.Items[0].PriceAtPurchase))

	t.Run("books crm customer", func(t *testing.T) {
		customer, err := NewGormCustomerRepository(db).FindByEmail(ctx, store.owner.ID, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, 1, customer.OrdersCount)
		assert.True(t, decimal.NewFromInt(135000).Equal(customer.TotalSpent))
	})

	t.Run("creates shipment for web order", func(t *testing.T) {
		shipment, err := NewGormShipmentRepository(db).FindByOrder(ctx, store.owner.ID, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.ShipmentPendingPacking, shipment.Status)
	})

	t.Run("books sale income", func(t *testing.T) {
		incomes, total, err := NewGormIncomeRepository(db).FindAll(ctx, store.owner.ID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.True(t, strings.HasPrefix(incomes[0].Description, "Venta #"))
		assert.True(t, decimal.NewFromInt(135000).Equal(incomes[0].Amount))
	})

	t.Run("writes activity line", func(t *testing.T) {
		logs, err := NewGormActivityLogRepository(db).FindRecent(ctx, store.owner.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, sales.ActionOrderCreated, logs[0].Action)
	})
}

func TestCreateOrder_POSSkipsShipment(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "pos@example.com", 5)
	ctx := context.Background()

	resp, err := newOrderService(db).CreateOrder(ctx, store.owner.ID, nil, appsales.CreateOrderRequest{
		Items: []appsales.OrderItemInput{{ProductVariantID: store.variant.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = NewGormShipmentRepository(db).FindByOrder(ctx, store.owner.ID, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateOrder_OverStockLeavesStockUnchanged(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 2)
	ctx := context.Background()

	_, err := newOrderService(db).CreateOrder(ctx, store.owner.ID, nil, appsales.CreateOrderRequest{
		Items:         []appsales.OrderItemInput{{ProductVariantID: store.variant.ID, Quantity: 3}},
		CustomerEmail: "buyer@example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	assert.Equal(t, 2, stockOf(t, db, store.variant.ID))

	_, total, err := NewGormOrderRepository(db).FindAll(ctx, store.owner.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = NewGormCustomerRepository(db).FindByEmail(ctx, store.owner.ID, "buyer@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateOrder_SumsQuantitiesPerVariant(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 5)
	ctx := context.Background()

	// each line fits on its own, together they exceed the stock
	_, err := newOrderService(db).CreateOrder(ctx, store.owner.ID, nil, appsales.CreateOrderRequest{
		Items: []appsales.OrderItemInput{
			{ProductVariantID: store.variant.ID, Quantity: 3},
			{ProductVariantID: store.variant.ID, Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 5, stockOf(t, db, store.variant.ID))
}

func TestCreateOrder_RejectsOtherStoreProducts(t *testing.T) {
	db := newSQLiteDB(t)
	storeA := seedStore(t, db, "a@example.com", 5)
	storeB := seedStore(t, db, "b@example.com", 5)

	_, err := newOrderService(db).CreateOrder(context.Background(), storeA.owner.ID, nil, appsales.CreateOrderRequest{
		Items: []appsales.OrderItemInput{{ProductVariantID: storeB.variant.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, appsales.ErrMixedStores)
	assert.Equal(t, 5, stockOf(t, db, storeB.variant.ID))
}

func TestListOrders_NeverShowsOtherTenants(t *testing.T) {
	db := newSQLiteDB(t)
	storeA := seedStore(t, db, "a@example.com", 10)
	storeB := seedStore(t, db, "b@example.com", 10)
	svc := newOrderService(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.CreateOrder(ctx, storeA.owner.ID, nil, appsales.CreateOrderRequest{
			Items: []appsales.OrderItemInput{{ProductVariantID: storeA.variant.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateOrder(ctx, storeB.owner.ID, nil, appsales.CreateOrderRequest{
		Items: []appsales.OrderItemInput{{ProductVariantID: storeB.variant.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	page, err := svc.ListOrders(ctx, storeA.owner.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, o := range page.Items {
		assert.Equal(t, storeA.owner.ID, o.TenantID)
	}

	page, err = svc.ListOrders(ctx, storeB.owner.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestDecrementStock_Guarded(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 4)
	repo := NewGormVariantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.DecrementStock(ctx, store.variant.ID, 4))
	assert.Equal(t, 0, stockOf(t, db, store.variant.ID))

	err := repo.DecrementStock(ctx, store.variant.ID, 1)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 0, stockOf(t, db, store.variant.ID))
}

func TestDecrementStock_ConcurrentOrdersNeverOversell(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 5)
	svc := newOrderService(db)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), store.owner.ID, nil, appsales.CreateOrderRequest{
				Items: []appsales.OrderItemInput{{ProductVariantID: store.variant.ID, Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, stockOf(t, db, store.variant.ID))
}

func TestPaymentWebhook_CompletesOrderIdempotently(t *testing.T) {
	db := newSQLiteDB(t)
	store := seedStore(t, db, "owner@example.com", 5)
	ctx := context.Background()

	order, err := newOrderService(db).CreateOrder(ctx, store.owner.ID, nil, appsales.CreateOrderRequest{
		Items:  []appsales.OrderItemInput{{ProductVariantID: store.variant.ID, Quantity: 1}},
		Source: sales.SourceWeb,
	})
	require.NoError(t, err)

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })
	orders := NewGormOrderRepository(db)
	svc := payment.NewPaymentService(nil, orders, NewGormUserRepository(db), idempotency, nil, "", zap.NewNop())

	for i := 0; i < 2; i++ {
		result, err := svc.HandleWebhook(ctx, nil, order.ID.String())
		require.NoError(t, err)
		assert.Equal(t, sales.OrderStatusCompleted, result.Status)

		stored, err := orders.FindByID(ctx, store.owner.ID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.OrderStatusCompleted, stored.Status)
	}

	_, err = svc.HandleWebhook(ctx, nil, uuid.New().String())
	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	first, err := identity.NewUser("dup@example.com", "secret123", "First")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := identity.NewUser("dup@example.com", "secret123", "Second")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, second), shared.ErrAlreadyExists)
}

func TestFinanceRepositories_Sums(t *testing.T) {
	db := newSQLiteDB(t)
	tenant := uuid.New()
	ctx := context.Background()
	repo := NewGormExpenseRepository(db)

	paid, err := finance.NewExpense(tenant, "Arriendo", decimal.NewFromInt(1000), "fijo")
	require.NoError(t, err)
	require.NoError(t, paid.MarkPaid())
	pending, err := finance.NewExpense(tenant, "Luz", decimal.NewFromInt(250), "diario")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, paid))
	require.NoError(t, repo.Create(ctx, pending))

	all, err := repo.SumByStatus(ctx, tenant, "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1250).Equal(all))

	onlyPending, err := repo.SumByStatus(ctx, tenant, finance.StatusPending)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(onlyPending))

	other, err := repo.SumByStatus(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.True(t, other.IsZero())
}

func TestTaxRateRepository_ClearDefault(t *testing.T) {
	db := newSQLiteDB(t)
	tenant := uuid.New()
	ctx := context.Background()
	repo := NewGormTaxRateRepository(db)

	first, err := finance.NewTaxRate(tenant, "IVA", decimal.NewFromInt(19), true)
	require.NoError(t, err)
	second, err := finance.NewTaxRate(tenant, "IVA reducido", decimal.NewFromInt(5), true)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.ClearDefault(ctx, tenant, second.ID))

	rates, _, err := repo.FindAll(ctx, tenant, shared.DefaultFilter())
	require.NoError(t, err)
	defaults := 0
	for _, r := range rates {
		if r.IsDefault {
			defaults++
			assert.Equal(t, second.ID, r.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestShopPageRepository_SaveUpserts(t *testing.T) {
	db := newSQLiteDB(t)
	tenant := uuid.New()
	ctx := context.Background()
	repo := NewGormShopPageRepository(db)

	page, err := studio.NewShopPage(tenant, "home", studio.Schema{"v": float64(1)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, page))

	again, err := studio.NewShopPage(tenant, "home", studio.Schema{"v": float64(2)})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, again))

	stored, err := repo.FindByKey(ctx, tenant, "home")
	require.NoError(t, err)
	assert.Equal(t, float64(2), stored.SchemaData["v"])

	keys, err := repo.ListKeys(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, keys)
}
