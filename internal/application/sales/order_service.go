package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrMixedStores is returned when an order spans products of more than one store
var ErrMixedStores = shared.NewDomainError("MIXED_STORES", "All products in an order must belong to the same store")

// OrderNotifier delivers buyer notifications for new orders
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, order *sales.Order, storeName string) error
}

// OrderMetrics records order counters
type OrderMetrics interface {
	RecordOrderCreated(ctx context.Context, tenantID uuid.UUID, source string, total decimal.Decimal)
}

// ReceiptRenderer renders an order receipt as PDF
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, order *sales.Order, storeName string) ([]byte, error)
}

// OrderService handles order placement and order queries
type OrderService struct {
	txScope   TransactionScope
	orderRepo sales.OrderRepository
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
	notifier  OrderNotifier
	metrics   OrderMetrics
	receipts  ReceiptRenderer
	logger    *zap.Logger
}

// OrderServiceOption configures optional collaborators of OrderService
type OrderServiceOption func(*OrderService)

// WithEventPublisher publishes OrderCreated after commit
func WithEventPublisher(p shared.EventPublisher) OrderServiceOption {
	return func(s *OrderService) { s.publisher = p }
}

// WithNotifier sends the order confirmation after commit
func WithNotifier(n OrderNotifier) OrderServiceOption {
	return func(s *OrderService) { s.notifier = n }
}

// WithOrderMetrics counts created orders
func WithOrderMetrics(m OrderMetrics) OrderServiceOption {
	return func(s *OrderService) { s.metrics = m }
}

// WithReceiptRenderer enables PDF receipts
func WithReceiptRenderer(r ReceiptRenderer) OrderServiceOption {
	return func(s *OrderService) { s.receipts = r }
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo sales.OrderRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	s := &OrderService{
		txScope:   txScope,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type orderLine struct {
	variant  *catalog.ProductVariant
	quantity int
}

// CreateOrder places an order in one transaction: it snapshots prices,
// checks and decrements stock, and books the CRM, shipment, activity and
// income rows. tenantID is the caller's store; uuid.Nil lets the products
// determine the store. actorID is recorded on the activity line when set.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	var order *sales.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, storeID, err := resolveLines(ctx, repos.VariantRepo(), req.Items)
		if err != nil {
			return err
		}
		if tenantID != uuid.Nil && storeID != tenantID {
			return ErrMixedStores
		}

		order, err = buildOrder(storeID, req, lines)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range lines {
			if err := repos.VariantRepo().DecrementStock(ctx, line.variant.ID, line.quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return insufficientStock(line.variant)
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		return fanOut(ctx, repos, order, actorID, req.ShippingAddress)
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, order)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// CreateStorefrontOrder places a web order for the store published under slug
func (s *OrderService) CreateStorefrontOrder(ctx context.Context, shopSlug string, req CreateOrderRequest) (*OrderResponse, error) {
	store, err := s.userRepo.FindByShopSlug(ctx, shopSlug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Store not found")
		}
		return nil, err
	}
	if req.Source == "" || req.Source == sales.SourcePOS {
		req.Source = sales.SourceWeb
	}
	return s.CreateOrder(ctx, store.ID, nil, req)
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
		}
		if item.ProductVariantID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Product variant is required")
		}
	}
	return nil
}

// resolveLines loads every variant, checks the store and the stock, and
// returns the owning store. Nothing is written.
func resolveLines(ctx context.Context, variants catalog.VariantRepository, items []OrderItemInput) ([]orderLine, uuid.UUID, error) {
	lines := make([]orderLine, 0, len(items))
	requested := make(map[uuid.UUID]int, len(items))
	storeID := uuid.Nil

	for _, item := range items {
		v, err := variants.FindByID(ctx, item.ProductVariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, uuid.Nil, shared.NewDomainError("NOT_FOUND", "Variant not found")
			}
			return nil, uuid.Nil, fmt.Errorf("load variant: %w", err)
		}
		if v.Product == nil {
			return nil, uuid.Nil, shared.NewDomainError("NOT_FOUND", "Variant not found")
		}

		owner := v.Product.TenantID
		if storeID == uuid.Nil {
			storeID = owner
		} else if owner != storeID {
			return nil, uuid.Nil, ErrMixedStores
		}

		requested[v.ID] += item.Quantity
		if !v.CanFulfill(requested[v.ID]) {
			return nil, uuid.Nil, insufficientStock(v)
		}
		lines = append(lines, orderLine{variant: v, quantity: item.Quantity})
	}
	return lines, storeID, nil
}

func buildOrder(storeID uuid.UUID, req CreateOrderRequest, lines []orderLine) (*sales.Order, error) {
	order, err := sales.NewOrder(storeID, sales.CustomerInfo{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
		City:  req.CustomerCity,
		Type:  req.CustomerType,
	}, req.Source, req.PaymentMethod, req.SellerName)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	for _, line := range lines {
		v := line.variant
		if _, err := order.AddItem(v.ID, v.Product.Name, v.Name, v.UnitPrice(v.Product.Price), line.quantity); err != nil {
			return nil, err
		}
	}

	shipping, tax := decimal.Zero, decimal.Zero
	if req.ShippingCost != nil {
		shipping = *req.ShippingCost
	}
	if req.TaxAmount != nil {
		tax = *req.TaxAmount
	}
	if err := order.SetCharges(shipping, tax); err != nil {
		return nil, err
	}
	return order, nil
}

// fanOut books the rows that accompany every order
func fanOut(ctx context.Context, repos TransactionalRepositories, order *sales.Order, actorID *uuid.UUID, address string) error {
	if order.CustomerEmail != "" {
		if err := upsertCustomer(ctx, repos.CustomerRepo(), order); err != nil {
			return err
		}
	}

	if order.RequiresShipping() {
		if err := repos.ShipmentRepo().Create(ctx, sales.NewShipment(order, address)); err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}
	}

	detail := fmt.Sprintf("Pedido #%s por %s", order.ShortID(), order.TotalPrice.StringFixed(2))
	activity := sales.NewActivityLog(order.TenantID, actorID, sales.ActionOrderCreated, detail, &order.ID)
	if err := repos.ActivityRepo().Create(ctx, activity); err != nil {
		return fmt.Errorf("log activity: %w", err)
	}

	income := finance.NewSaleIncome(order.TenantID, order.ID, order.ShortID(), order.TotalPrice)
	if err := repos.IncomeRepo().Create(ctx, income); err != nil {
		return fmt.Errorf("book income: %w", err)
	}
	return nil
}

func upsertCustomer(ctx context.Context, repo sales.CustomerRepository, order *sales.Order) error {
	customer, err := repo.FindByEmail(ctx, order.TenantID, order.CustomerEmail)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		customer, err = sales.NewCustomer(order.TenantID, sales.CustomerInfo{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
			Phone: order.CustomerPhone,
			City:  order.CustomerCity,
			Type:  order.CustomerType,
		})
		if err != nil {
			return err
		}
		customer.RecordPurchase(order)
		if err := repo.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("load customer: %w", err)
	}

	customer.RecordPurchase(order)
	if err := repo.Update(ctx, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func insufficientStock(v *catalog.ProductVariant) error {
	name := v.Name
	if v.Product != nil {
		name = v.Product.Name + " (" + v.Name + ")"
	}
	return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Insufficient stock for %s", name)
}

// afterCommit runs the side effects that must not roll the order back
func (s *OrderService) afterCommit(ctx context.Context, order *sales.Order) {
	log := s.logger.With(zap.String("order_id", order.ID.String()), zap.String("tenant_id", order.TenantID.String()))
	log.Info("order created", zap.String("total", order.TotalPrice.String()), zap.Int("items", order.ItemCount()))

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, order.TenantID, order.Source, order.TotalPrice)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, sales.NewOrderCreatedEvent(order)); err != nil {
			log.Warn("publish order created", zap.Error(err))
		}
	}
	if s.notifier != nil && order.CustomerEmail != "" {
		if err := s.notifier.NotifyOrderCreated(ctx, order, s.storeName(ctx, order.TenantID)); err != nil {
			log.Warn("order confirmation not sent", zap.Error(err))
		}
	}
}

func (s *OrderService) storeName(ctx context.Context, tenantID uuid.UUID) string {
	owner, err := s.userRepo.FindByID(ctx, tenantID)
	if err != nil {
		return "Bayup"
	}
	return owner.DisplayName()
}

// ListOrders lists the orders of a store, newest first
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	orders, total, err := s.orderRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// GetOrder returns an order of the store
func (s *OrderService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateOrderStatus moves an order of the store to a new status
func (s *OrderService) UpdateOrderStatus(ctx context.Context, tenantID, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(sales.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Receipt renders the PDF receipt of an order
func (s *OrderService) Receipt(ctx context.Context, tenantID, id uuid.UUID) ([]byte, error) {
	if s.receipts == nil {
		return nil, shared.NewDomainError("NOT_CONFIGURED", "Receipt printing is not configured")
	}
	order, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.receipts.RenderReceipt(ctx, order, s.storeName(ctx, tenantID))
}
