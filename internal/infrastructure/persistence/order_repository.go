package persistence

import (
	"context"
	"strings"

	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create saves the order with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return translateError(err)
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		return translateError(tx.Create(&order.Items).Error)
	})
}

// FindByID finds an order with items within the tenant
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	return r.first(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindByIDAny finds an order by id regardless of tenant
func (r *GormOrderRepository) FindByIDAny(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByPaymentReference finds an order by its gateway reference
func (r *GormOrderRepository) FindByPaymentReference(ctx context.Context, reference string) (*sales.Order, error) {
	if reference == "" {
		return nil, shared.ErrNotFound
	}
	return r.first(ctx, "payment_reference = ?", reference)
}

func (r *GormOrderRepository) first(ctx context.Context, query string, args ...interface{}) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where(query, args...).
		First(&order).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// FindAll lists orders of a tenant, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Order, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&sales.Order{}).Scopes(TenantScope(tenantID))
		q = applyEquals(q, filter, "status", "source")
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]sales.Order, 0)
	if err := query().
		Preload("Items", orderItems).
		Scopes(paginate(filter, OrderSortFields)).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus overwrites the status of an order
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status sales.OrderStatus) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Where("id = ?", id).
		Update("status", status))
}

// SetPaymentReference stores the gateway reference of an order
func (r *GormOrderRepository) SetPaymentReference(ctx context.Context, tenantID, id uuid.UUID, reference string) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("payment_reference", reference))
}

const revenueColumns = "tenant_id, COUNT(*) AS orders, COALESCE(SUM(total_price), 0) AS revenue"

// StatsForTenant returns order count and revenue of a tenant, ignoring
// cancelled orders
func (r *GormOrderRepository) StatsForTenant(ctx context.Context, tenantID uuid.UUID) (sales.TenantRevenue, error) {
	var rows []sales.TenantRevenue
	if err := r.db.WithContext(ctx).Model(&sales.Order{}).
		Select(revenueColumns).
		Scopes(TenantScope(tenantID)).
		Where("status <> ?", sales.OrderStatusCancelled).
		Group("tenant_id").
		Scan(&rows).Error; err != nil {
		return sales.TenantRevenue{}, err
	}
	if len(rows) == 0 {
		return sales.TenantRevenue{TenantID: tenantID}, nil
	}
	return rows[0], nil
}

// RevenueByTenant aggregates order counts and totals for every store
func (r *GormOrderRepository) RevenueByTenant(ctx context.Context) ([]sales.TenantRevenue, error) {
	rows := make([]sales.TenantRevenue, 0)
	err := r.db.WithContext(ctx).Model(&sales.Order{}).
		Select(revenueColumns).
		Where("status <> ?", sales.OrderStatusCancelled).
		Group("tenant_id").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	*GormTenantRepository[sales.Shipment]
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{
		GormTenantRepository: NewGormTenantRepository[sales.Shipment](db, ShipmentSortFields, "recipient_name", "status"),
	}
}

// FindByOrder finds the shipment of an order
func (r *GormShipmentRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*sales.Shipment, error) {
	var shipment sales.Shipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		First(&shipment).Error; err != nil {
		return nil, translateError(err)
	}
	return &shipment, nil
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create inserts a customer. A second row for the same tenant and email
// returns shared.ErrAlreadyExists
func (r *GormCustomerRepository) Create(ctx context.Context, c *sales.Customer) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

// Update saves a customer
func (r *GormCustomerRepository) Update(ctx context.Context, c *sales.Customer) error {
	return translateError(r.db.WithContext(ctx).Save(c).Error)
}

// FindByEmail finds the customer of a tenant identified by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*sales.Customer, error) {
	var customer sales.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

// FindByID finds a customer within the tenant
func (r *GormCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Customer, error) {
	var customer sales.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

// FindAll lists the customers of a tenant
func (r *GormCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Customer, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&sales.Customer{}).Scopes(TenantScope(tenantID))
		q = applyEquals(q, filter, "customer_type", "city")
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	customers := make([]sales.Customer, 0)
	if err := query().Scopes(paginate(filter, CustomerSortFields)).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an activity line
func (r *GormActivityLogRepository) Create(ctx context.Context, log *sales.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindRecent returns the newest activity lines of a tenant
func (r *GormActivityLogRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]sales.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	logs := make([]sales.ActivityLog, 0, limit)
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

var (
	_ sales.OrderRepository       = (*GormOrderRepository)(nil)
	_ sales.ShipmentRepository    = (*GormShipmentRepository)(nil)
	_ sales.CustomerRepository    = (*GormCustomerRepository)(nil)
	_ sales.ActivityLogRepository = (*GormActivityLogRepository)(nil)
)
