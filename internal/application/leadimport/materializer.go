package leadimport

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
)

// RandomSource supplies the random draws used for operator assignment.
// *rand.Rand satisfies it; tests inject a seeded source.
type RandomSource interface {
	Intn(n int) int
}

var _ RandomSource = (*rand.Rand)(nil)

// OrderMaterializer builds the pending order for a fully resolved lead.
// Operator assignment is one uniform draw per row from the batch's operator
// pool; draws are independent, the pipeline promises no even distribution.
type OrderMaterializer struct {
	random RandomSource
}

// NewOrderMaterializer creates a materializer drawing from the given source
func NewOrderMaterializer(random RandomSource) *OrderMaterializer {
	return &OrderMaterializer{random: random}
}

// Materialize builds one order for the lead: a header with the lead's
// contact and address snapshot, exactly one item snapshotting the product,
// a zero discount, and total = lead total amount + delivery fee.
func (m *OrderMaterializer) Materialize(
	tenantID uuid.UUID,
	lead *Lead,
	customer *partner.Customer,
	product *catalog.Product,
	city *geo.City,
	deliveryFee decimal.Decimal,
	operatorPool []uuid.UUID,
) (*trade.Order, error) {
	if len(operatorPool) == 0 {
		return nil, shared.NewDomainError("EMPTY_OPERATOR_POOL", "No active operators to assign orders to")
	}
	operator := operatorPool[m.random.Intn(len(operatorPool))]

	order, err := trade.NewOrder(tenantID, customer.ID, operator, trade.OrderSourceBulkImport)
	if err != nil {
		return nil, err
	}

	order.SetCustomerSnapshot(lead.FullName, lead.Phone, lead.Phone2)
	if err := order.SetShipping(trade.ShippingAddress{
		Line1:      lead.AddressLine1,
		Line2:      lead.AddressLine2,
		CityID:     city.ID,
		CityName:   city.Name,
		ZoneID:     city.ZoneID,
		DistrictID: city.DistrictID,
	}); err != nil {
		return nil, err
	}

	item, err := trade.NewOrderItem(
		product.ID,
		product.Code,
		product.Name,
		product.Description,
		lead.Quantity,
		product.Price,
		lead.TotalAmount,
	)
	if err != nil {
		return nil, err
	}
	if err := order.AddItem(item); err != nil {
		return nil, err
	}
	if err := order.SetDeliveryFee(deliveryFee); err != nil {
		return nil, err
	}
	order.SetNotes(lead.Notes)

	return order, nil
}
