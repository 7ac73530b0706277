package persistence

import (
	"context"
	"errors"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// demoShippingOptions are the shared shipping options attached to every
// demo product.
var demoShippingOptions = []catalog.ShippingOption{
	{Method: catalog.ShippingMethodPost, Fee: 60},
	{Method: catalog.ShippingMethodCVS711, Fee: 45},
	{Method: catalog.ShippingMethodCVSFamily, Fee: 45},
	{Method: catalog.ShippingMethodCourier, Fee: 120, RegionNote: "Main island only"},
}

type demoProduct struct {
	name            string
	price           int
	description     string
	descriptionText string
}

var demoProducts = []demoProduct{
	{
		name:        "Demo product 1",
		price:       199,
		description: "Short demo description for listings.",
		descriptionText: "<p>A demo product for exercising:</p><ul>" +
			"<li>product list thumbnails</li>" +
			"<li>the long HTML detail page</li>" +
			"<li>the cart and checkout flow</li></ul>",
	},
	{
		name:            "Demo product 2",
		price:           99,
		description:     "Short demo description.",
		descriptionText: "<p>Long demo description (HTML allowed).</p>",
	},
	{
		name:            "Demo product 3",
		price:           299,
		description:     "Demo product short description.",
		descriptionText: "<p>Demo product long description.</p>",
	},
}

// SeedDemoData inserts a few demo products, keyed by name so repeated runs
// never duplicate or overwrite data edited through the admin console. Demo
// products start hidden with zero stock so no real order can touch them.
func SeedDemoData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dp := range demoProducts {
			product, err := getOrCreateProduct(ctx, tx, dp)
			if err != nil {
				return err
			}
			if err := ensureShippingOptions(ctx, tx, product); err != nil {
				return err
			}
		}
		return nil
	})
}

func getOrCreateProduct(ctx context.Context, tx *gorm.DB, dp demoProduct) (*catalog.Product, error) {
	var existing catalog.Product
	err := tx.WithContext(ctx).First(&existing, "name = ?", dp.name).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product, err := catalog.NewProduct(dp.name, dp.price)
	if err != nil {
		return nil, err
	}
	product.Description = dp.description
	product.DescriptionText = dp.descriptionText
	product.SetActive(false)

	if err := tx.WithContext(ctx).Omit("ShippingOptions").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ensureShippingOptions backfills default options only when the product has
// none, so admin edits survive re-seeding.
func ensureShippingOptions(ctx context.Context, tx *gorm.DB, product *catalog.Product) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&catalog.ShippingOption{}).
		Where("product_id = ?", product.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	options := make([]catalog.ShippingOption, len(demoShippingOptions))
	for i, o := range demoShippingOptions {
		options[i] = catalog.ShippingOption{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  product.ID,
			Method:     o.Method,
			Fee:        o.Fee,
			RegionNote: o.RegionNote,
		}
	}
	return tx.WithContext(ctx).Create(&options).Error
}
