package sales

import (
	"time"

	"github.com/bayup/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	ProductVariantID uuid.UUID `json:"product_variant_id" binding:"required"`
	Quantity         int       `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	CustomerName    string           `json:"customer_name" binding:"max=200"`
	CustomerEmail   string           `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone   string           `json:"customer_phone" binding:"max=50"`
	CustomerCity    string           `json:"customer_city" binding:"max=100"`
	CustomerType    string           `json:"customer_type" binding:"omitempty,oneof=final mayorista"`
	Source          string           `json:"source" binding:"max=30"`
	PaymentMethod   string           `json:"payment_method" binding:"max=30"`
	SellerName      string           `json:"seller_name" binding:"max=200"`
	Notes           string           `json:"notes" binding:"max=2000"`
	ShippingAddress string           `json:"shipping_address" binding:"max=500"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost"`
	TaxAmount       *decimal.Decimal `json:"tax_amount"`
}

// UpdateOrderStatusRequest represents a request to change an order's status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateShipmentStatusRequest represents a request to change a shipment's status
type UpdateShipmentStatusRequest struct {
	Status         string `json:"status" binding:"required,max=50"`
	Carrier        string `json:"carrier" binding:"max=100"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductVariantID uuid.UUID       `json:"product_variant_id"`
	ProductName      string          `json:"product_name"`
	VariantName      string          `json:"variant_name"`
	Quantity         int             `json:"quantity"`
	PriceAtPurchase  decimal.Decimal `json:"price_at_purchase"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	TenantID         uuid.UUID           `json:"tenant_id"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	CustomerPhone    string              `json:"customer_phone"`
	CustomerCity     string              `json:"customer_city"`
	CustomerType     string              `json:"customer_type"`
	Source           string              `json:"source"`
	PaymentMethod    string              `json:"payment_method"`
	SellerName       string              `json:"seller_name"`
	Status           string              `json:"status"`
	TotalPrice       decimal.Decimal     `json:"total_price"`
	ShippingCost     decimal.Decimal     `json:"shipping_cost"`
	TaxAmount        decimal.Decimal     `json:"tax_amount"`
	Notes            string              `json:"notes"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:               item.ID,
			ProductVariantID: item.ProductVariantID,
			ProductName:      item.ProductName,
			VariantName:      item.VariantName,
			Quantity:         item.Quantity,
			PriceAtPurchase:  item.PriceAtPurchase,
			Subtotal:         item.Subtotal(),
		}
	}
	return OrderResponse{
		ID:               o.ID,
		TenantID:         o.TenantID,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		CustomerCity:     o.CustomerCity,
		CustomerType:     o.CustomerType,
		Source:           o.Source,
		PaymentMethod:    o.PaymentMethod,
		SellerName:       o.SellerName,
		Status:           o.Status.String(),
		TotalPrice:       o.TotalPrice,
		ShippingCost:     o.ShippingCost,
		TaxAmount:        o.TaxAmount,
		Notes:            o.Notes,
		PaymentReference: o.PaymentReference,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                 uuid.UUID `json:"id"`
	OrderID            uuid.UUID `json:"order_id"`
	Status             string    `json:"status"`
	RecipientName      string    `json:"recipient_name"`
	DestinationAddress string    `json:"destination_address"`
	Carrier            string    `json:"carrier"`
	TrackingNumber     string    `json:"tracking_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToShipmentResponse converts a domain Shipment to ShipmentResponse
func ToShipmentResponse(s *sales.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:                 s.ID,
		OrderID:            s.OrderID,
		Status:             s.Status,
		RecipientName:      s.RecipientName,
		DestinationAddress: s.DestinationAddress,
		Carrier:            s.Carrier,
		TrackingNumber:     s.TrackingNumber,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// CustomerResponse represents a CRM customer in API responses
type CustomerResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Email               string          `json:"email"`
	FullName            string          `json:"full_name"`
	Phone               string          `json:"phone"`
	City                string          `json:"city"`
	CustomerType        string          `json:"customer_type"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	OrdersCount         int             `json:"orders_count"`
	LoyaltyPoints       int             `json:"loyalty_points"`
	LastPurchaseDate    *time.Time      `json:"last_purchase_date"`
	LastPurchaseSummary string          `json:"last_purchase_summary"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *sales.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                  c.ID,
		Email:               c.Email,
		FullName:            c.FullName,
		Phone:               c.Phone,
		City:                c.City,
		CustomerType:        c.CustomerType,
		TotalSpent:          c.TotalSpent,
		OrdersCount:         c.OrdersCount,
		LoyaltyPoints:       c.LoyaltyPoints,
		LastPurchaseDate:    c.LastPurchaseDate,
		LastPurchaseSummary: c.LastPurchaseSummary,
	}
}

// ActivityLogResponse represents an activity line in API responses
type ActivityLogResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Action    string     `json:"action"`
	Detail    string     `json:"detail"`
	TargetID  *uuid.UUID `json:"target_id"`
	CreatedAt time.Time  `json:"created_at"`
}
