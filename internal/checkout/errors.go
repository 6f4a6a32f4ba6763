package checkout

import "errors"

var (
	// ErrOutOfStock - the product has nothing on hand at all.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrInsufficientStock - the requested quantity (cumulative across the
	// cart) would exceed the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCart - commit was attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingCustomer - a debt sale needs an attributable customer name.
	ErrMissingCustomer = errors.New("debt sale requires a customer name")
	// ErrInvalidDiscount - discount percent outside [0,100]. Rejected, not
	// clamped.
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	// ErrInvalidPayment - unknown payment method.
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrProductNotFound - a cart line references a product that no longer
	// exists by commit time.
	ErrProductNotFound = errors.New("product not found")
)
