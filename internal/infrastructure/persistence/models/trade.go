package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	TenantAggregateModel
	OrderNumber    string            `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	AssignedTo     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status         trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PayStatus      trade.PayStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Source         trade.OrderSource `gorm:"type:varchar(20);not null;default:'manual'"`
	CustomerName   string            `gorm:"type:varchar(200);not null"`
	CustomerPhone  string            `gorm:"type:varchar(20);not null"`
	CustomerPhone2 *string           `gorm:"type:varchar(20)"`
	ShipLine1      string            `gorm:"type:varchar(200);not null"`
	ShipLine2      *string           `gorm:"type:varchar(200)"`
	ShipCityID     uuid.UUID         `gorm:"type:uuid;not null"`
	ShipCityName   string            `gorm:"type:varchar(100);not null"`
	ShipZoneID     *uuid.UUID        `gorm:"type:uuid"`
	ShipDistrictID *uuid.UUID        `gorm:"type:uuid"`
	Subtotal       decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	DeliveryFee    decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Discount       decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Notes          string            `gorm:"type:text"`
	Items          []OrderItemModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for order lines.
type OrderItemModel struct {
	BaseModel
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
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		OrderNumber:    m.OrderNumber,
		CustomerID:     m.CustomerID,
		AssignedTo:     m.AssignedTo,
		Status:         m.Status,
		PayStatus:      m.PayStatus,
		Source:         m.Source,
		CustomerName:   m.CustomerName,
		CustomerPhone:  m.CustomerPhone,
		CustomerPhone2: m.CustomerPhone2,
		Shipping: trade.ShippingAddress{
			Line1:      m.ShipLine1,
			Line2:      m.ShipLine2,
			CityID:     m.ShipCityID,
			CityName:   m.ShipCityName,
			ZoneID:     m.ShipZoneID,
			DistrictID: m.ShipDistrictID,
		},
		Subtotal:    m.Subtotal,
		DeliveryFee: m.DeliveryFee,
		Discount:    m.Discount,
		TotalAmount: m.TotalAmount,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)

	o.Items = make([]trade.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		o.Items = append(o.Items, *m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.AssignedTo = o.AssignedTo
	m.Status = o.Status
	m.PayStatus = o.PayStatus
	m.Source = o.Source
	m.CustomerName = o.CustomerName
	m.CustomerPhone = o.CustomerPhone
	m.CustomerPhone2 = o.CustomerPhone2
	m.ShipLine1 = o.Shipping.Line1
	m.ShipLine2 = o.Shipping.Line2
	m.ShipCityID = o.Shipping.CityID
	m.ShipCityName = o.Shipping.CityName
	m.ShipZoneID = o.Shipping.ZoneID
	m.ShipDistrictID = o.Shipping.DistrictID
	m.Subtotal = o.Subtotal
	m.DeliveryFee = o.DeliveryFee
	m.Discount = o.Discount
	m.TotalAmount = o.TotalAmount
	m.Notes = o.Notes

	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		var im OrderItemModel
		im.FromDomain(&o.Items[i])
		m.Items = append(m.Items, im)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *trade.OrderItem {
	return &trade.OrderItem{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderID:            m.OrderID,
		ProductID:          m.ProductID,
		ProductCode:        m.ProductCode,
		ProductName:        m.ProductName,
		ProductDescription: m.ProductDescription,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		LineTotal:          m.LineTotal,
	}
}

// FromDomain populates the persistence model from a domain OrderItem entity.
func (m *OrderItemModel) FromDomain(item *trade.OrderItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.OrderID = item.OrderID
	m.ProductID = item.ProductID
	m.ProductCode = item.ProductCode
	m.ProductName = item.ProductName
	m.ProductDescription = item.ProductDescription
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.LineTotal = item.LineTotal
}
