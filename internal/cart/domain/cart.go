package domain

import "time"

// CartLine is one product-variant selection awaiting checkout. Lines are
// identified by (ProductID, Color, Size): the same product in a different
// color or size is a separate line.
type CartLine struct {
	ProductID string     `bson:"product_id" json:"product_id"`
	Name      string     `bson:"name" json:"name"`
	Price     float64    `bson:"price" json:"price"`
	SalePrice *float64   `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	Color     string     `bson:"color" json:"color"`
	Size      string     `bson:"size" json:"size"`
	ImageURL  string     `bson:"image_url" json:"image_url"`
	Quantity  int        `bson:"quantity" json:"quantity"`
	AddedAt   time.Time  `bson:"added_at" json:"added_at"`
}

type LineKey struct {
	ProductID string
	Color     string
	Size      string
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Color: l.Color, Size: l.Size}
}

type Cart struct {
	CartID    string     `bson:"cart_id" json:"cart_id"`
	Lines     []CartLine `bson:"lines" json:"lines"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// MergeLine adds line to lines. If a line with the same key already exists its
// quantity is incremented by line.Quantity; otherwise the line is appended.
func MergeLine(lines []CartLine, line CartLine) []CartLine {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range lines {
		if lines[i].Key() == line.Key() {
			lines[i].Quantity += line.Quantity
			return lines
		}
	}
	return append(lines, line)
}

// AdjustQuantity applies delta to the matching line's quantity, clamped to a
// minimum of 1. The stepper never removes a line; RemoveLine does that.
func AdjustQuantity(lines []CartLine, key LineKey, delta int) []CartLine {
	for i := range lines {
		if lines[i].Key() == key {
			q := lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			lines[i].Quantity = q
			break
		}
	}
	return lines
}

// RemoveLine drops the matching line. Unknown keys are a no-op.
func RemoveLine(lines []CartLine, key LineKey) []CartLine {
	for i := range lines {
		if lines[i].Key() == key {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}
