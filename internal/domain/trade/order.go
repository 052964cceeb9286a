package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:  {OrderStatusDispatched, OrderStatusCancelled},
		OrderStatusDispatched: {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PayStatus represents the payment status of an order
type PayStatus string

const (
	PayStatusUnpaid   PayStatus = "unpaid"
	PayStatusPaid     PayStatus = "paid"
	PayStatusRefunded PayStatus = "refunded"
)

// OrderSource identifies how an order entered the system
type OrderSource string

const (
	OrderSourceManual     OrderSource = "manual"
	OrderSourceBulkImport OrderSource = "bulk_import"
)

// OrderItem is a line on an order. Product details are snapshotted at
// creation time so later catalog edits do not rewrite history. The line
// total is stored explicitly rather than derived, because imported lines
// carry the amount agreed with the customer, which may already include a
// negotiated discount.
type OrderItem struct {
	shared.BaseEntity
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null"`
	ProductCode        string          `gorm:"type:varchar(50);not null"`
	ProductName        string          `gorm:"type:varchar(200);not null"`
	ProductDescription string          `gorm:"type:text"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item with product snapshot fields
func NewOrderItem(productID uuid.UUID, code, name, description string, quantity int, unitPrice, lineTotal decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !lineTotal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Line total must be positive")
	}

	return &OrderItem{
		BaseEntity:         shared.NewBaseEntity(),
		ProductID:          productID,
		ProductCode:        code,
		ProductName:        name,
		ProductDescription: description,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		LineTotal:          lineTotal,
	}, nil
}

// ShippingAddress is the delivery destination snapshotted onto the order
// header. City, zone and district IDs reference the shared geo tables; zone
// and district stay nil when the city carries no such link.
type ShippingAddress struct {
	Line1      string     `gorm:"column:ship_line1;type:varchar(200);not null"`
	Line2      *string    `gorm:"column:ship_line2;type:varchar(200)"`
	CityID     uuid.UUID  `gorm:"column:ship_city_id;type:uuid;not null"`
	CityName   string     `gorm:"column:ship_city_name;type:varchar(100);not null"`
	ZoneID     *uuid.UUID `gorm:"column:ship_zone_id;type:uuid"`
	DistrictID *uuid.UUID `gorm:"column:ship_district_id;type:uuid"`
}

// Order is the aggregate root for sales orders. The header carries a
// denormalized customer contact snapshot so the order remains readable even
// if the customer record is later edited.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssignedTo     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PayStatus      PayStatus       `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Source         OrderSource     `gorm:"type:varchar(20);not null;default:'manual'"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	CustomerPhone  string          `gorm:"type:varchar(20);not null"`
	CustomerPhone2 *string         `gorm:"type:varchar(20)"`
	Shipping       ShippingAddress `gorm:"embedded"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes          string          `gorm:"type:text"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending, unpaid order assigned to an operator
func NewOrder(tenantID, customerID, assignedTo uuid.UUID, source OrderSource) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if assignedTo == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNEE", "Assigned operator is required")
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         generateOrderNumber(),
		CustomerID:          customerID,
		AssignedTo:          assignedTo,
		Status:              OrderStatusPending,
		PayStatus:           PayStatusUnpaid,
		Source:              source,
		Subtotal:            decimal.Zero,
		DeliveryFee:         decimal.Zero,
		Discount:            decimal.Zero,
		TotalAmount:         decimal.Zero,
	}, nil
}

// SetCustomerSnapshot records the customer contact details on the header
func (o *Order) SetCustomerSnapshot(name, phone string, phone2 *string) {
	o.CustomerName = name
	o.CustomerPhone = phone
	o.CustomerPhone2 = phone2
	o.touch()
}

// SetShipping records the delivery destination on the header
func (o *Order) SetShipping(addr ShippingAddress) error {
	if addr.Line1 == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping address line 1 is required")
	}
	if addr.CityID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping city is required")
	}
	o.Shipping = addr
	o.touch()
	return nil
}

// AddItem appends a line to the order and recalculates totals
func (o *Order) AddItem(item *OrderItem) error {
	if item == nil {
		return shared.NewDomainError("INVALID_ITEM", "Order item is required")
	}
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to pending orders")
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.touch()
	return nil
}

// SetDeliveryFee sets the delivery fee and recalculates totals
func (o *Order) SetDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}
	o.DeliveryFee = fee
	o.recalculateTotals()
	o.touch()
	return nil
}

// SetNotes sets free-text notes on the order
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.touch()
}

// TransitionTo moves the order to a new fulfillment status
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.touch()
	return nil
}

// MarkPaid marks the order as paid
func (o *Order) MarkPaid() error {
	if o.PayStatus == PayStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid")
	}
	o.PayStatus = PayStatusPaid
	o.touch()
	return nil
}

func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.DeliveryFee).Sub(o.Discount)
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// generateOrderNumber builds a short, human-readable order number. The
// uniqueIndex on order_number is the real guarantee; the random suffix keeps
// collisions within the same second from happening in practice.
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
