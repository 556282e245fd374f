package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses. Orders are only ever created as pending; the later
	// transitions exist in the schema but nothing in this service drives
	// them yet.
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	// Payment methods. Card is offered in the UI but rejected at selection
	// time; cash on delivery is the only method that reaches the store.
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Order is the persisted order header. Its items are owned exclusively by
// the header and are removed with it.
type Order struct {
	ID              uint            `gorm:"primaryKey;column:order_id" json:"order_id"`
	CustomerName    string          `gorm:"size:100;not null" json:"customer_name"`
	PhoneNumber     string          `gorm:"size:15;not null" json:"phone_number"`
	CustomerAddress string          `gorm:"type:text;not null" json:"customer_address"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	OrderDate       time.Time       `gorm:"column:order_date;autoCreateTime" json:"order_date"`
	UserID          *uint           `json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	OrderCode       string          `gorm:"size:10;uniqueIndex" json:"order_code"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"delivery_fee"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one catalog item's quantity and computed subtotal within an
// order. ItemTotal is fixed when the order is compiled; later catalog price
// changes never alter it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ItemName  string          `gorm:"size:50;not null" json:"item_name"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	ItemTotal decimal.Decimal `gorm:"type:decimal(10,2);not null;check:item_total >= 0" json:"item_total"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
