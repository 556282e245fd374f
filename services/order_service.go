package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/digibistro/digibistro-api/models"
	"github.com/digibistro/digibistro-api/utils"
)

// FixedDeliveryFee is charged on cash-on-delivery orders.
var FixedDeliveryFee = decimal.NewFromFloat(10.00)

const (
	orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderCodeLength   = 6

	// Connection acquisition retry budget. This protects against transient
	// connectivity failure when leasing a connection, not against failures
	// once the transaction has started.
	persistConnectAttempts = 3
	persistConnectBackoff  = time.Second
	persistConnectTimeout  = 5 * time.Second
)

// GenerateOrderCode returns a 6-character human-facing order reference from
// A-Z and 0-9. It is not a security token; uniqueness is enforced by the
// database constraint on order_code, not here.
func GenerateOrderCode() string {
	code := make([]byte, orderCodeLength)
	for i := range code {
		code[i] = orderCodeAlphabet[rand.Intn(len(orderCodeAlphabet))]
	}
	return string(code)
}

// LineItem is one compiled cart entry.
type LineItem struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

// OrderComputation is the result of compiling a cart: the money totals and
// the expanded line items, with unit prices resolved against the catalog
// snapshot at compile time.
type OrderComputation struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Items       []LineItem      `json:"items"`
}

// CompileOrder computes subtotal, delivery fee and total for a cart and
// expands it into line items, ordered by item name. The delivery fee applies
// to cash on delivery only. Payment-method legality is the caller's problem;
// this function only maps method to fee. Pure: no I/O, no mutation.
func CompileOrder(catalog models.Catalog, cart Cart, method models.PaymentMethod) OrderComputation {
	subtotal := decimal.Zero
	items := make([]LineItem, 0, len(cart))
	for _, name := range catalog.ItemNames() {
		qty, ok := cart[name]
		if !ok || qty <= 0 {
			continue
		}
		price, _ := catalog.UnitPrice(name)
		itemTotal := price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(itemTotal)
		items = append(items, LineItem{ItemName: name, Quantity: qty, ItemTotal: itemTotal})
	}

	fee := decimal.Zero
	if method == models.PaymentMethodCashOnDelivery {
		fee = FixedDeliveryFee
	}

	return OrderComputation{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
		Items:       items,
	}
}

// PersistErrorKind classifies order persistence failures.
type PersistErrorKind string

const (
	// PersistConflict: a unique constraint fired (duplicate order code).
	// Retryable with a freshly generated code.
	PersistConflict PersistErrorKind = "conflict"
	// PersistNoValidItems: after filtering non-positive quantities there
	// was nothing to insert. Terminal for the request.
	PersistNoValidItems PersistErrorKind = "no_valid_items"
	// PersistUnavailable: connection acquisition failed even after the
	// internal retry budget. Terminal for the request.
	PersistUnavailable PersistErrorKind = "unavailable"
	// PersistInternal: any other failure. Terminal for the request.
	PersistInternal PersistErrorKind = "internal"
)

// PersistError is returned by OrderService.Persist. Whatever the kind, the
// transaction has been fully rolled back: no partial order is ever visible.
type PersistError struct {
	Kind   PersistErrorKind
	Detail string
	Err    error
}

func (e *PersistError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("order persistence failed (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("order persistence failed (%s)", e.Kind)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// OrderHeaderInput carries the header fields for a new order. OrderCode may
// be left empty to have one generated.
type OrderHeaderInput struct {
	CustomerName    string
	PhoneNumber     string
	CustomerAddress string
	TotalPrice      decimal.Decimal
	DeliveryFee     decimal.Decimal
	PaymentMethod   models.PaymentMethod
	UserID          *uint
	OrderCode       string
}

// OrderItemInput is one line item to persist with the header.
type OrderItemInput struct {
	ItemName  string
	Quantity  int
	ItemTotal decimal.Decimal
	Notes     *string
}

// OrderService durably persists orders.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an OrderService backed by the given database.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Persist writes an order header and its items as one atomic unit and
// returns the assigned order id and order code. The header row is always
// created with status pending. Items with a non-positive quantity are
// dropped before any database work; if nothing remains the call fails
// without opening a transaction.
func (s *OrderService) Persist(ctx context.Context, header OrderHeaderInput, items []OrderItemInput) (uint, string, error) {
	valid := make([]OrderItemInput, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			log.Printf("dropping item %q with quantity %d", item.ItemName, item.Quantity)
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return 0, "", &PersistError{Kind: PersistNoValidItems, Detail: "no valid items to insert"}
	}

	code := header.OrderCode
	if code == "" {
		code = GenerateOrderCode()
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return 0, "", &PersistError{Kind: PersistInternal, Detail: "failed to get database handle", Err: err}
	}
	if err := utils.Retry(persistConnectAttempts, persistConnectBackoff, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, persistConnectTimeout)
		defer cancel()
		return sqlDB.PingContext(pingCtx)
	}); err != nil {
		return 0, "", &PersistError{Kind: PersistUnavailable, Detail: "could not acquire database connection", Err: err}
	}

	order := models.Order{
		CustomerName:    header.CustomerName,
		PhoneNumber:     header.PhoneNumber,
		CustomerAddress: header.CustomerAddress,
		TotalPrice:      header.TotalPrice,
		UserID:          header.UserID,
		PaymentMethod:   header.PaymentMethod,
		OrderCode:       code,
		DeliveryFee:     header.DeliveryFee,
		Status:          models.OrderStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		rows := make([]models.OrderItem, 0, len(valid))
		for _, item := range valid {
			rows = append(rows, models.OrderItem{
				OrderID:   order.ID,
				ItemName:  item.ItemName,
				Quantity:  item.Quantity,
				ItemTotal: item.ItemTotal,
				Notes:     item.Notes,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, "", &PersistError{Kind: PersistConflict, Detail: "duplicate order code " + code, Err: err}
		}
		return 0, "", &PersistError{Kind: PersistInternal, Detail: err.Error(), Err: err}
	}

	log.Printf("Order %d committed successfully with code %s", order.ID, code)
	return order.ID, code, nil
}

// ListUserOrders returns a user's orders with their items, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Matching on the driver message keeps this portable between PostgreSQL
// and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
