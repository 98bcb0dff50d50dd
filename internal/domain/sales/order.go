package sales

import (
	"fmt"
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Order sources and defaults
const (
	SourcePOS     = "pos"
	SourceWeb     = "web"
	DefaultMethod = "cash"
	CustomerFinal = "final"
)

// CustomerInfo is the buyer data captured on an order
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
	City  string
	Type  string
}

// Order is a sale placed in a store. It is the aggregate root for its items.
type Order struct {
	shared.TenantAggregateRoot
	CustomerName     string          `gorm:"type:varchar(200)"`
	CustomerEmail    string          `gorm:"type:varchar(200);index"`
	CustomerPhone    string          `gorm:"type:varchar(50)"`
	CustomerCity     string          `gorm:"type:varchar(100)"`
	CustomerType     string          `gorm:"type:varchar(30);not null;default:'final'"`
	Source           string          `gorm:"type:varchar(30);not null;default:'pos'"`
	PaymentMethod    string          `gorm:"type:varchar(30);not null;default:'cash'"`
	SellerName       string          `gorm:"type:varchar(200)"`
	Status           OrderStatus     `gorm:"type:varchar(30);not null;default:'pending';index"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingCost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes            string          `gorm:"type:text"`
	PaymentReference string          `gorm:"type:varchar(40);index"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an empty pending order for a store
func NewOrder(tenantID uuid.UUID, customer CustomerInfo, source, paymentMethod, sellerName string) (*Order, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if source == "" {
		source = SourcePOS
	}
	if paymentMethod == "" {
		paymentMethod = DefaultMethod
	}
	if customer.Type == "" {
		customer.Type = CustomerFinal
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerName:        strings.TrimSpace(customer.Name),
		CustomerEmail:       strings.ToLower(strings.TrimSpace(customer.Email)),
		CustomerPhone:       strings.TrimSpace(customer.Phone),
		CustomerCity:        strings.TrimSpace(customer.City),
		CustomerType:        customer.Type,
		Source:              source,
		PaymentMethod:       paymentMethod,
		SellerName:          sellerName,
		Status:              OrderStatusPending,
		TotalPrice:          decimal.Zero,
		ShippingCost:        decimal.Zero,
		TaxAmount:           decimal.Zero,
		Items:               make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line item priced at the given unit price and
// recalculates the total
func (o *Order) AddItem(variantID uuid.UUID, productName, variantName string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, variantID, productName, variantName, unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.recalculate()
	return &o.Items[len(o.Items)-1], nil
}

// SetCharges sets shipping cost and tax amount and recalculates the total
func (o *Order) SetCharges(shipping, tax decimal.Decimal) error {
	if shipping.IsNegative() || tax.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charges cannot be negative")
	}
	o.ShippingCost = shipping
	o.TaxAmount = tax
	o.recalculate()
	return nil
}

// Subtotal sums the line items
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) recalculate() {
	o.TotalPrice = o.Subtotal().Add(o.ShippingCost).Add(o.TaxAmount)
	o.Touch()
}

// ItemCount returns the total units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Summary returns a short human description of the items
func (o *Order) Summary() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.DisplayName()))
	}
	return strings.Join(parts, ", ")
}

// ShortID returns the first block of the order id, used in ledger descriptions
func (o *Order) ShortID() string {
	return strings.ToUpper(o.ID.String()[:8])
}

// UpdateStatus moves the order to a new status
func (o *Order) UpdateStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "Unknown order status %q", status)
	}
	o.Status = status
	o.MarkModified()
	return nil
}

// MarkCompleted sets the order as completed regardless of its current status
func (o *Order) MarkCompleted() {
	o.Status = OrderStatusCompleted
	o.Touch()
}

// SetPaymentReference stores the gateway checkout reference
func (o *Order) SetPaymentReference(ref string) {
	o.PaymentReference = ref
	o.Touch()
}

// RequiresShipping reports whether the order leaves the store physically
func (o *Order) RequiresShipping() bool {
	return o.Source != SourcePOS
}

// OrderItem is a line of an order with the unit price captured at purchase
type OrderItem struct {
	shared.BaseEntity
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductVariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200)"`
	VariantName      string          `gorm:"type:varchar(200)"`
	Quantity         int             `gorm:"not null"`
	PriceAtPurchase  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item
func NewOrderItem(orderID, variantID uuid.UUID, productName, variantName string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &OrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		OrderID:          orderID,
		ProductVariantID: variantID,
		ProductName:      productName,
		VariantName:      variantName,
		Quantity:         quantity,
		PriceAtPurchase:  unitPrice,
	}, nil
}

// Subtotal returns price at purchase times quantity
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DisplayName joins product and variant names
func (i *OrderItem) DisplayName() string {
	if i.VariantName == "" {
		return i.ProductName
	}
	return i.ProductName + " (" + i.VariantName + ")"
}
