package order

import (
	"strings"
	"time"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a valid order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Item is an immutable snapshot of a purchased line. UnitPrice is pinned
// at order time so later catalog price changes never touch history.
type Item struct {
	shared.BaseEntity
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Qty       int       `gorm:"not null"`
	UnitPrice int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// LineTotal returns qty * unit price for this line
func (i Item) LineTotal() int {
	return i.Qty * i.UnitPrice
}

// ShippingInfo carries the delivery details captured at checkout
type ShippingInfo struct {
	Method         catalog.ShippingMethod
	Address        string
	PostAddress    string
	RecipientName  string
	RecipientPhone string
	CVSBrand       string
	CVSStoreID     string
	CVSStoreName   string
}

// Order is the aggregate root for a placed order and its line items
type Order struct {
	shared.BaseEntity
	CustomerName  string `gorm:"type:varchar(100);not null"`
	CustomerEmail string `gorm:"type:varchar(200);not null"`
	CustomerPhone string `gorm:"type:varchar(40);not null;default:''"`

	ShippingMethod      catalog.ShippingMethod `gorm:"type:varchar(50);not null"`
	ShippingAddress     string                 `gorm:"type:varchar(300);not null;default:''"`
	ShippingPostAddress *string                `gorm:"type:varchar(255)"`
	RecipientName       *string                `gorm:"type:varchar(80)"`
	RecipientPhone      *string                `gorm:"type:varchar(40)"`
	CVSBrand            *string                `gorm:"type:varchar(20)"`
	CVSStoreID          *string                `gorm:"type:varchar(40)"`
	CVSStoreName        *string                `gorm:"type:varchar(120)"`

	TotalAmount int        `gorm:"not null"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'pending'"`
	ShippedAt   *time.Time
	TrackingNo  *string `gorm:"type:varchar(80)"`

	Items []Item `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// CustomerInfo carries the buyer contact fields captured at checkout
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// NewOrder creates a pending order from validated customer and shipping
// info. Line items are attached afterwards via AddItem; TotalAmount is the
// caller's responsibility so it can be derived inside the placement
// transaction.
func NewOrder(customer CustomerInfo, shipping ShippingInfo) (*Order, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	normalized, err := normalizeShipping(shipping)
	if err != nil {
		return nil, err
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerName:    strings.TrimSpace(customer.Name),
		CustomerEmail:   strings.TrimSpace(customer.Email),
		CustomerPhone:   strings.TrimSpace(customer.Phone),
		ShippingMethod:  normalized.Method,
		ShippingAddress: normalized.Address,
		RecipientName:   optional(normalized.RecipientName),
		RecipientPhone:  optional(normalized.RecipientPhone),
		Status:          StatusPending,
	}

	if normalized.Method.IsCVS() {
		o.CVSBrand = optional(normalized.CVSBrand)
		o.CVSStoreID = optional(normalized.CVSStoreID)
		o.CVSStoreName = optional(normalized.CVSStoreName)
	} else {
		o.ShippingPostAddress = optional(normalized.PostAddress)
	}

	return o, nil
}

// AddItem appends a line item snapshot to the order
func (o *Order) AddItem(productID uuid.UUID, qty, unitPrice int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QTY", "Quantity must be greater than zero")
	}
	if unitPrice < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	o.Items = append(o.Items, Item{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Qty:        qty,
		UnitPrice:  unitPrice,
	})
	return nil
}

// SetStatus moves the order to the given status
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid status: "+status.String())
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// MarkShipped records shipment with an optional tracking number
func (o *Order) MarkShipped(trackingNo string) {
	now := time.Now()
	o.Status = StatusShipped
	o.ShippedAt = &now
	o.TrackingNo = optional(trackingNo)
	o.UpdatedAt = now
}

func validateCustomer(c CustomerInfo) error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "customer_name required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "customer_email required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "customer_phone required")
	}
	return nil
}

// normalizeShipping validates the method-specific required fields and fills
// the derivable ones: CVS brand follows the method, and the loose address
// falls back to the store name for pickups.
func normalizeShipping(s ShippingInfo) (ShippingInfo, error) {
	out := ShippingInfo{
		Method:         s.Method,
		Address:        strings.TrimSpace(s.Address),
		PostAddress:    strings.TrimSpace(s.PostAddress),
		RecipientName:  strings.TrimSpace(s.RecipientName),
		RecipientPhone: strings.TrimSpace(s.RecipientPhone),
		CVSBrand:       strings.TrimSpace(s.CVSBrand),
		CVSStoreID:     strings.TrimSpace(s.CVSStoreID),
		CVSStoreName:   strings.TrimSpace(s.CVSStoreName),
	}

	if out.RecipientName == "" {
		return out, shared.NewDomainError("INVALID_SHIPPING", "recipient_name required")
	}
	if out.RecipientPhone == "" {
		return out, shared.NewDomainError("INVALID_SHIPPING", "recipient_phone required")
	}

	switch {
	case out.Method == catalog.ShippingMethodPost || out.Method == catalog.ShippingMethodCourier:
		if out.PostAddress == "" {
			out.PostAddress = out.Address
		}
		if out.PostAddress == "" {
			return out, shared.NewDomainError("INVALID_SHIPPING", "shipping_address required for post/courier")
		}
	case out.Method.IsCVS():
		if out.CVSStoreName == "" {
			return out, shared.NewDomainError("INVALID_SHIPPING", "cvs_store_name required for cvs")
		}
		if out.CVSBrand == "" {
			if out.Method == catalog.ShippingMethodCVS711 {
				out.CVSBrand = "7-11"
			} else {
				out.CVSBrand = "FamilyMart"
			}
		}
		if out.Address == "" {
			out.Address = out.CVSStoreName
		}
	default:
		return out, shared.NewDomainError("INVALID_SHIPPING_METHOD", "invalid shipping_method")
	}

	return out, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
