package order

import (
	"testing"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() CustomerInfo {
	return CustomerInfo{
		Name:  "Chia-ling",
		Email: "buyer@example.com",
		Phone: "0912345678",
	}
}

func postShipping() ShippingInfo {
	return ShippingInfo{
		Method:         catalog.ShippingMethodPost,
		PostAddress:    "No. 1, Sec. 1, Roosevelt Rd., Taipei",
		RecipientName:  "Chia-ling",
		RecipientPhone: "0912345678",
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order for postal shipping", func(t *testing.T) {
		o, err := NewOrder(validCustomer(), postShipping())
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, catalog.ShippingMethodPost, o.ShippingMethod)
		require.NotNil(t, o.ShippingPostAddress)
		assert.Equal(t, "No. 1, Sec. 1, Roosevelt Rd., Taipei", *o.ShippingPostAddress)
		assert.Nil(t, o.CVSStoreName)
	})

	t.Run("falls back to loose address for post", func(t *testing.T) {
		shipping := postShipping()
		shipping.PostAddress = ""
		shipping.Address = "Somewhere in Tainan"

		o, err := NewOrder(validCustomer(), shipping)
		require.NoError(t, err)
		require.NotNil(t, o.ShippingPostAddress)
		assert.Equal(t, "Somewhere in Tainan", *o.ShippingPostAddress)
	})

	t.Run("requires address for courier", func(t *testing.T) {
		shipping := ShippingInfo{
			Method:         catalog.ShippingMethodCourier,
			RecipientName:  "A",
			RecipientPhone: "B",
		}
		_, err := NewOrder(validCustomer(), shipping)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SHIPPING", domainErr.Code)
	})

	t.Run("defaults cvs brand from method", func(t *testing.T) {
		shipping := ShippingInfo{
			Method:         catalog.ShippingMethodCVSFamily,
			CVSStoreName:   "Zhongxiao Store",
			RecipientName:  "Chia-ling",
			RecipientPhone: "0912345678",
		}
		o, err := NewOrder(validCustomer(), shipping)
		require.NoError(t, err)
		require.NotNil(t, o.CVSBrand)
		assert.Equal(t, "FamilyMart", *o.CVSBrand)
		// address backfilled from store name
		assert.Equal(t, "Zhongxiao Store", o.ShippingAddress)
	})

	t.Run("requires store name for cvs", func(t *testing.T) {
		shipping := ShippingInfo{
			Method:         catalog.ShippingMethodCVS711,
			RecipientName:  "A",
			RecipientPhone: "B",
		}
		_, err := NewOrder(validCustomer(), shipping)
		assert.Error(t, err)
	})

	t.Run("rejects unknown shipping method", func(t *testing.T) {
		shipping := postShipping()
		shipping.Method = "pigeon"
		_, err := NewOrder(validCustomer(), shipping)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SHIPPING_METHOD", domainErr.Code)
	})

	t.Run("rejects missing contact fields", func(t *testing.T) {
		customer := validCustomer()
		customer.Email = "   "
		_, err := NewOrder(customer, postShipping())
		assert.Error(t, err)
	})
}

func TestOrderAddItem(t *testing.T) {
	o, err := NewOrder(validCustomer(), postShipping())
	require.NoError(t, err)

	t.Run("appends snapshot with pinned price", func(t *testing.T) {
		productID := uuid.New()
		require.NoError(t, o.AddItem(productID, 2, 100))

		require.Len(t, o.Items, 1)
		assert.Equal(t, o.ID, o.Items[0].OrderID)
		assert.Equal(t, productID, o.Items[0].ProductID)
		assert.Equal(t, 200, o.Items[0].LineTotal())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		assert.Error(t, o.AddItem(uuid.New(), 0, 100))
		assert.Error(t, o.AddItem(uuid.New(), -1, 100))
	})

	t.Run("rejects empty product id", func(t *testing.T) {
		assert.Error(t, o.AddItem(uuid.Nil, 1, 100))
	})
}

func TestOrderStatus(t *testing.T) {
	o, err := NewOrder(validCustomer(), postShipping())
	require.NoError(t, err)

	t.Run("accepts valid statuses", func(t *testing.T) {
		for _, s := range []Status{StatusPending, StatusPaid, StatusShipped, StatusDone, StatusCancelled} {
			assert.NoError(t, o.SetStatus(s))
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.Error(t, o.SetStatus("refunded"))
	})

	t.Run("mark shipped records timestamp and tracking", func(t *testing.T) {
		o.MarkShipped("TW123456789")
		assert.Equal(t, StatusShipped, o.Status)
		require.NotNil(t, o.ShippedAt)
		require.NotNil(t, o.TrackingNo)
		assert.Equal(t, "TW123456789", *o.TrackingNo)
	})

	t.Run("blank tracking number stays nil", func(t *testing.T) {
		o2, err := NewOrder(validCustomer(), postShipping())
		require.NoError(t, err)
		o2.MarkShipped("  ")
		assert.Nil(t, o2.TrackingNo)
	})
}
