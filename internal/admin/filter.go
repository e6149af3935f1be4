package admin

import (
	"strings"
	"time"

	"github.com/takkat/storefront/internal/orders/domain"
)

// StatusAll disables the status criterion.
const StatusAll = "all"

// Filter narrows a page of orders. All criteria are ANDed; zero-value
// criteria match everything. Filtering applies only to the page the
// admin already fetched, it does not trigger a new query.
type Filter struct {
	Search string
	Status string
	Date   string // calendar day, 2006-01-02
}

func (f Filter) matches(o *domain.Order) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		s = strings.ToLower(s)
		if !strings.Contains(strings.ToLower(o.FullName), s) &&
			!strings.Contains(strings.ToLower(o.Email), s) {
			return false
		}
	}
	if f.Status != "" && f.Status != StatusAll && f.Status != string(o.Status) {
		return false
	}
	if f.Date != "" && f.Date != o.CreatedAt.Format(time.DateOnly) {
		return false
	}
	return true
}

func FilterOrders(orders []*domain.Order, f Filter) []*domain.Order {
	out := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if f.matches(o) {
			out = append(out, o)
		}
	}
	return out
}
