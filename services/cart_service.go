package services

import (
	"fmt"
	"strconv"

	"github.com/digibistro/digibistro-api/models"
)

// Cart maps a catalog item name to the requested quantity. Quantities are
// always positive; a cart with zero entries never leaves AccumulateCart.
type Cart map[string]int

// CartContext carries one submission's cart and payment selection from the
// session through compilation and persistence, instead of having each stage
// reach back into ambient session state.
type CartContext struct {
	Cart          Cart                 `json:"cart"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// ValidationError reports bad user input on the cart form. It is always
// recoverable: the caller re-prompts and the submission can be retried.
type ValidationError struct {
	Item   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("invalid quantity for %s: %s", e.Item, e.Reason)
	}
	return e.Reason
}

// AccumulateCart builds a Cart from raw form quantities. Only catalog items
// are considered; a non-integer quantity rejects the whole accumulation,
// while quantities of zero or less are silently dropped. An accumulation
// that ends up empty is rejected too.
func AccumulateCart(catalog models.Catalog, raw map[string]string) (Cart, error) {
	cart := make(Cart)
	for _, item := range catalog.ItemNames() {
		value, present := raw[item]
		if !present || value == "" {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, &ValidationError{Item: item, Reason: "not an integer"}
		}
		if qty <= 0 {
			continue
		}
		cart[item] = qty
	}
	if len(cart) == 0 {
		return nil, &ValidationError{Reason: "empty cart"}
	}
	return cart, nil
}
