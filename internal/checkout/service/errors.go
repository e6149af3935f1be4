package service

import "errors"

var (
	ErrEmptyCart             = errors.New("cart is empty, nothing to checkout")
	ErrMissingFullName       = errors.New("full name is required")
	ErrInvalidEmail          = errors.New("a valid email address is required")
	ErrMissingAddress        = errors.New("shipping address is required")
	ErrMissingPhone          = errors.New("phone number is required")
	ErrUnknownZone           = errors.New("a delivery zone must be selected")
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")
)

// IsValidationError reports whether err was raised before any persistence
// attempt, meaning the shopper can simply fix the input and retry.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrEmptyCart,
		ErrMissingFullName,
		ErrInvalidEmail,
		ErrMissingAddress,
		ErrMissingPhone,
		ErrUnknownZone,
		ErrMissingIdempotencyKey,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
