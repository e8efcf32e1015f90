// Package basket holds the per-session cart, wishlist and comparison aggregates.
// Each aggregate has a single owner and is not safe for concurrent use.
package basket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot held by a basket
type Item struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ProductCode string          `json:"product_code,omitempty"`
	SKU         string          `json:"sku,omitempty"`
}

// Result reports whether a wishlist or comparison operation was applied
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func accepted(msg string) Result { return Result{OK: true, Message: msg} }
func declined(msg string) Result { return Result{OK: false, Message: msg} }

// itemSet keeps insertion order and holds each product at most once
type itemSet struct {
	items []Item
}

func (s *itemSet) index(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ProductID == id {
			return i
		}
	}
	return -1
}

func (s *itemSet) Contains(id uuid.UUID) bool { return s.index(id) >= 0 }

func (s *itemSet) Count() int { return len(s.items) }

func (s *itemSet) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *itemSet) Clear() { s.items = nil }

func (s *itemSet) remove(id uuid.UUID) (Item, bool) {
	i := s.index(id)
	if i < 0 {
		return Item{}, false
	}
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return item, true
}
