package order

import (
	"time"

	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/google/uuid"
)

// OrderLine is one (product, qty) pair from the cart
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required"`
}

// PlaceOrderRequest represents a checkout submission
type PlaceOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,max=100"`
	CustomerEmail string `json:"customer_email" binding:"required,email,max=200"`
	CustomerPhone string `json:"customer_phone" binding:"required,max=40"`

	ShippingMethod      string `json:"shipping_method" binding:"required"`
	ShippingAddress     string `json:"shipping_address" binding:"max=300"`
	ShippingPostAddress string `json:"shipping_post_address" binding:"max=255"`
	RecipientName       string `json:"recipient_name" binding:"required,max=80"`
	RecipientPhone      string `json:"recipient_phone" binding:"required,max=40"`
	CVSBrand            string `json:"cvs_brand" binding:"max=20"`
	CVSStoreID          string `json:"cvs_store_id" binding:"max=40"`
	CVSStoreName        string `json:"cvs_store_name" binding:"max=120"`

	Items []OrderLine `json:"items" binding:"required,min=1"`
}

// OrderCreatedResponse is returned after successful placement
type OrderCreatedResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	TotalAmount int       `json:"total_amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Status              string     `json:"status"`
	CustomerName        string     `json:"customer_name"`
	CustomerEmail       string     `json:"customer_email"`
	CustomerPhone       string     `json:"customer_phone"`
	ShippingMethod      string     `json:"shipping_method"`
	ShippingAddress     string     `json:"shipping_address"`
	ShippingPostAddress *string    `json:"shipping_post_address"`
	RecipientName       *string    `json:"recipient_name"`
	RecipientPhone      *string    `json:"recipient_phone"`
	CVSBrand            *string    `json:"cvs_brand"`
	CVSStoreID          *string    `json:"cvs_store_id"`
	CVSStoreName        *string    `json:"cvs_store_name"`
	TotalAmount         int        `json:"total_amount"`
	ShippedAt           *time.Time `json:"shipped_at,omitempty"`
	TrackingNo          *string    `json:"tracking_no,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// OrderItemResponse represents a line item in API responses
type OrderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Qty       int       `json:"qty"`
	UnitPrice int       `json:"unit_price"`
}

// OrderItemDetail is a line item joined with its product name
type OrderItemDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice int       `json:"unit_price"`
	LineTotal int       `json:"line_total"`
}

// OrderDetailResponse is the admin view of an order with its items
type OrderDetailResponse struct {
	Order OrderResponse     `json:"order"`
	Items []OrderItemDetail `json:"items"`
}

// ShipOrderRequest carries shipment metadata
type ShipOrderRequest struct {
	TrackingNo string `json:"tracking_no" binding:"max=80"`
	Note       string `json:"note" binding:"max=500"`
}

// ToOrderResponse maps an order aggregate to its response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                  o.ID,
		Status:              o.Status.String(),
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		CustomerPhone:       o.CustomerPhone,
		ShippingMethod:      o.ShippingMethod.String(),
		ShippingAddress:     o.ShippingAddress,
		ShippingPostAddress: o.ShippingPostAddress,
		RecipientName:       o.RecipientName,
		RecipientPhone:      o.RecipientPhone,
		CVSBrand:            o.CVSBrand,
		CVSStoreID:          o.CVSStoreID,
		CVSStoreName:        o.CVSStoreName,
		TotalAmount:         o.TotalAmount,
		ShippedAt:           o.ShippedAt,
		TrackingNo:          o.TrackingNo,
		CreatedAt:           o.CreatedAt,
	}
}

// ToOrderItemResponse maps a line item to its response DTO
func ToOrderItemResponse(i order.Item) OrderItemResponse {
	return OrderItemResponse{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Qty:       i.Qty,
		UnitPrice: i.UnitPrice,
	}
}
