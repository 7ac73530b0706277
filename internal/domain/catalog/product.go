package catalog

import (
	"strings"
	"time"

	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShippingMethod identifies how an order can be delivered
type ShippingMethod string

const (
	ShippingMethodPost      ShippingMethod = "post"
	ShippingMethodCourier   ShippingMethod = "courier"
	ShippingMethodCVS711    ShippingMethod = "cvs_711"
	ShippingMethodCVSFamily ShippingMethod = "cvs_family"
)

// IsValid checks if the method is one of the supported shipping methods
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingMethodPost, ShippingMethodCourier, ShippingMethodCVS711, ShippingMethodCVSFamily:
		return true
	}
	return false
}

// IsCVS reports whether the method is a convenience-store pickup
func (m ShippingMethod) IsCVS() bool {
	return m == ShippingMethodCVS711 || m == ShippingMethodCVSFamily
}

// String returns the string representation of ShippingMethod
func (m ShippingMethod) String() string {
	return string(m)
}

// ShippingOption is a delivery method offered for a single product.
// A product carries at most one option per method.
type ShippingOption struct {
	shared.BaseEntity
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_shipping_option_product_method"`
	Method     ShippingMethod `gorm:"type:varchar(30);not null;uniqueIndex:idx_shipping_option_product_method"`
	Fee        int            `gorm:"not null;default:0"`
	RegionNote string         `gorm:"type:varchar(200);not null;default:''"`
}

// TableName returns the table name for GORM
func (ShippingOption) TableName() string {
	return "product_shipping_options"
}

// Product is a purchasable catalog item and the aggregate root for
// its shipping options. Price is an integer amount in TWD.
type Product struct {
	shared.BaseEntity
	Name            string     `gorm:"type:varchar(200);not null"`
	Price           int        `gorm:"not null"`
	Description     string     `gorm:"type:varchar(1000);not null;default:''"`
	DescriptionText string     `gorm:"type:varchar(4000);not null;default:''"`
	ImageURL        string     `gorm:"type:varchar(500);not null;default:''"`
	StockQty        int        `gorm:"not null;default:0"`
	IsActive        bool       `gorm:"not null;default:true"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`

	ShippingOptions []ShippingOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Price:      price,
		IsActive:   true,
	}, nil
}

// Update applies basic field changes
func (p *Product) Update(name string, price int) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Name = strings.TrimSpace(name)
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the on-hand quantity
func (p *Product) SetStock(qty int) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	p.StockQty = qty
	p.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles storefront visibility
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.UpdatedAt = time.Now()
}

// SetCategory assigns the product to a category; nil clears it
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// ReplaceShippingOptions swaps the whole shipping option set.
// Methods must be unique within the set.
func (p *Product) ReplaceShippingOptions(options []ShippingOption) error {
	seen := make(map[ShippingMethod]struct{}, len(options))
	for i := range options {
		if !options[i].Method.IsValid() {
			return shared.NewDomainError("INVALID_SHIPPING_METHOD", "Unknown shipping method: "+options[i].Method.String())
		}
		if _, dup := seen[options[i].Method]; dup {
			return shared.NewDomainError("DUPLICATE_SHIPPING_METHOD", "Duplicate shipping method: "+options[i].Method.String())
		}
		seen[options[i].Method] = struct{}{}
		if options[i].Fee < 0 {
			return shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
		}
	}

	replaced := make([]ShippingOption, len(options))
	for i, o := range options {
		replaced[i] = ShippingOption{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  p.ID,
			Method:     o.Method,
			Fee:        o.Fee,
			RegionNote: o.RegionNote,
		}
	}
	p.ShippingOptions = replaced
	p.UpdatedAt = time.Now()
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be blank")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
