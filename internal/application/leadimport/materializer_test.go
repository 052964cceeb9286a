package leadimport

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/trade"
)

func fixtureLead() *Lead {
	phone2 := "0712223334"
	return &Lead{
		FullName:     "Nimal Perera",
		Phone:        "0771234567",
		Phone2:       &phone2,
		CityName:     "Colombo",
		AddressLine1: "12 Galle Rd",
		ProductCode:  "SKU-1",
		Quantity:     2,
		TotalAmount:  dec("1500.00"),
		Notes:        "call before delivery",
	}
}

func fixtureRefs(t *testing.T, tenantID uuid.UUID) (*partner.Customer, *catalog.Product, *geo.City) {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, "Nimal Perera", "0771234567")
	require.NoError(t, err)
	product, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", dec("700.00"))
	require.NoError(t, err)
	product.SetDescription("a widget")
	city, err := geo.NewCity("Colombo")
	require.NoError(t, err)
	return customer, product, city
}

func TestOrderMaterializer_Materialize(t *testing.T) {
	tenantID := uuid.New()
	customer, product, city := fixtureRefs(t, tenantID)
	zoneID := uuid.New()
	city.SetZone(&zoneID)
	operator := uuid.New()

	m := NewOrderMaterializer(rand.New(rand.NewSource(1)))
	order, err := m.Materialize(tenantID, fixtureLead(), customer, product, city, dec("350.00"), []uuid.UUID{operator})
	require.NoError(t, err)

	assert.Equal(t, trade.OrderStatusPending, order.Status)
	assert.Equal(t, trade.PayStatusUnpaid, order.PayStatus)
	assert.Equal(t, trade.OrderSourceBulkImport, order.Source)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, operator, order.AssignedTo)

	assert.Equal(t, "Nimal Perera", order.CustomerName)
	assert.Equal(t, "0771234567", order.CustomerPhone)
	require.NotNil(t, order.CustomerPhone2)
	assert.Equal(t, "0712223334", *order.CustomerPhone2)
	assert.Equal(t, city.ID, order.Shipping.CityID)
	assert.Equal(t, "Colombo", order.Shipping.CityName)
	require.NotNil(t, order.Shipping.ZoneID)
	assert.Equal(t, zoneID, *order.Shipping.ZoneID)
	assert.Nil(t, order.Shipping.DistrictID)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(dec("700.00")))
	assert.True(t, item.LineTotal.Equal(dec("1500.00")), "line total carries the declared amount")
	assert.Equal(t, "a widget", item.ProductDescription)

	assert.True(t, order.TotalAmount.Equal(dec("1850.00")), "total = declared amount + delivery fee")
	assert.True(t, order.Discount.IsZero())
	assert.Equal(t, "call before delivery", order.Notes)
}

func TestOrderMaterializer_OperatorDraw(t *testing.T) {
	tenantID := uuid.New()
	customer, product, city := fixtureRefs(t, tenantID)
	pool := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	t.Run("seeded source makes the draw deterministic", func(t *testing.T) {
		a := NewOrderMaterializer(rand.New(rand.NewSource(42)))
		b := NewOrderMaterializer(rand.New(rand.NewSource(42)))
		for i := 0; i < 10; i++ {
			oa, err := a.Materialize(tenantID, fixtureLead(), customer, product, city, decimal.Zero, pool)
			require.NoError(t, err)
			ob, err := b.Materialize(tenantID, fixtureLead(), customer, product, city, decimal.Zero, pool)
			require.NoError(t, err)
			assert.Equal(t, oa.AssignedTo, ob.AssignedTo)
		}
	})

	t.Run("every operator in the pool gets drawn eventually", func(t *testing.T) {
		m := NewOrderMaterializer(rand.New(rand.NewSource(7)))
		seen := make(map[uuid.UUID]bool)
		for i := 0; i < 200; i++ {
			order, err := m.Materialize(tenantID, fixtureLead(), customer, product, city, decimal.Zero, pool)
			require.NoError(t, err)
			seen[order.AssignedTo] = true
		}
		assert.Len(t, seen, len(pool))
	})

	t.Run("empty pool fails", func(t *testing.T) {
		m := NewOrderMaterializer(rand.New(rand.NewSource(1)))
		_, err := m.Materialize(tenantID, fixtureLead(), customer, product, city, decimal.Zero, nil)
		assert.Error(t, err)
	})
}
