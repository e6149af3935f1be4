// Package pricing computes order money amounts. Everything here is pure:
// no I/O, no clock, no state beyond the tables passed in.
package pricing

import (
	"strings"

	"github.com/takkat/storefront/internal/cart/domain"
)

type Zone string

const (
	ZoneWestern Zone = "western-region"
	ZoneInland  Zone = "48-regions"
)

var zoneFees = map[Zone]float64{
	ZoneWestern: 20,
	ZoneInland:  70,
}

// DeliveryFee returns the fixed fee for the zone, 0 when no zone is selected
// or the zone is unknown.
func DeliveryFee(zone Zone) float64 {
	return zoneFees[zone]
}

func ValidZone(zone Zone) bool {
	_, ok := zoneFees[zone]
	return ok
}

// DiscountCodes maps a code to a discount percentage. The rule is data, not a
// branch: callers inject whatever table they want.
type DiscountCodes map[string]float64

func DefaultDiscountCodes() DiscountCodes {
	return DiscountCodes{"welcome": 10}
}

// Percent looks up the code case-insensitively. Unknown or empty codes give 0.
func (d DiscountCodes) Percent(code string) float64 {
	return d[strings.ToLower(strings.TrimSpace(code))]
}

// LineTotal charges the sale price when one is set, the list price otherwise.
func LineTotal(line domain.CartLine) float64 {
	unit := line.Price
	if line.SalePrice != nil {
		unit = *line.SalePrice
	}
	return unit * float64(line.Quantity)
}

func Subtotal(lines []domain.CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += LineTotal(line)
	}
	return sum
}

func DiscountAmount(subtotal, percent float64) float64 {
	return subtotal * percent / 100
}

// GrandTotal never goes negative: a discount larger than subtotal + fee is
// clamped instead of producing a refund.
func GrandTotal(subtotal, deliveryFee, discountAmount float64) float64 {
	total := subtotal + deliveryFee - discountAmount
	if total < 0 {
		return 0
	}
	return total
}
