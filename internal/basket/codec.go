package basket

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
)

// document is the stored layout of every aggregate
type document struct {
	Items []wireItem `json:"items"`
}

// wireItem accepts both the canonical field names and the legacy client
// layout, where the id was "id" and the price a display string like "R850.00".
type wireItem struct {
	ProductID   string          `json:"product_id,omitempty"`
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Price       json.RawMessage `json:"price"`
	ProductCode string          `json:"product_code,omitempty"`
	Code        string          `json:"code,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity,omitempty"`
}

func toWire(item Item, quantity int) wireItem {
	return wireItem{
		ProductID:   item.ProductID.String(),
		Name:        item.Name,
		Image:       item.Image,
		Price:       json.RawMessage(`"` + item.Price.StringFixed(domain.MoneyPlaces) + `"`),
		ProductCode: item.ProductCode,
		SKU:         item.SKU,
		Quantity:    quantity,
	}
}

func (w wireItem) toItem() (Item, error) {
	rawID := w.ProductID
	if rawID == "" {
		rawID = w.ID
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Item{}, fmt.Errorf("invalid product id %q: %w", rawID, err)
	}
	price, err := domain.ParsePriceJSON(w.Price)
	if err != nil {
		return Item{}, fmt.Errorf("product %s: %w", id, err)
	}
	code := w.ProductCode
	if code == "" {
		code = w.Code
	}
	return Item{
		ProductID:   id,
		Name:        w.Name,
		Image:       w.Image,
		Price:       price,
		ProductCode: code,
		SKU:         w.SKU,
	}, nil
}

// decode reads either {"items": [...]} or a bare array
func decode(data []byte) ([]wireItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '[' {
		var items []wireItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return items, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return doc.Items, nil
}

// MarshalCart serializes a cart
func MarshalCart(c *Cart) ([]byte, error) {
	doc := document{Items: make([]wireItem, 0, len(c.lines))}
	for _, l := range c.lines {
		doc.Items = append(doc.Items, toWire(l.Item, l.Quantity))
	}
	return json.Marshal(doc)
}

// UnmarshalCart rebuilds a cart. Lines for the same product are merged and
// lines without a positive quantity are dropped.
func UnmarshalCart(data []byte) (*Cart, error) {
	items, err := decode(data)
	if err != nil {
		return nil, err
	}
	cart := NewCart()
	for _, w := range items {
		item, err := w.toItem()
		if err != nil {
			return nil, err
		}
		if w.Quantity <= 0 {
			continue
		}
		if i := cart.index(item.ProductID); i >= 0 {
			cart.lines[i].Quantity += w.Quantity
			continue
		}
		cart.lines = append(cart.lines, Line{Item: item, Quantity: w.Quantity})
	}
	return cart, nil
}

// MarshalItems serializes a wishlist or comparison item list
func MarshalItems(items []Item) ([]byte, error) {
	doc := document{Items: make([]wireItem, 0, len(items))}
	for _, item := range items {
		doc.Items = append(doc.Items, toWire(item, 0))
	}
	return json.Marshal(doc)
}

func unmarshalSet(data []byte) (itemSet, error) {
	items, err := decode(data)
	if err != nil {
		return itemSet{}, err
	}
	var set itemSet
	for _, w := range items {
		item, err := w.toItem()
		if err != nil {
			return itemSet{}, err
		}
		if set.Contains(item.ProductID) {
			continue
		}
		set.items = append(set.items, item)
	}
	return set, nil
}

// UnmarshalWishlist rebuilds a wishlist, dropping duplicate products
func UnmarshalWishlist(data []byte) (*Wishlist, error) {
	set, err := unmarshalSet(data)
	if err != nil {
		return nil, err
	}
	return &Wishlist{itemSet: set}, nil
}

// UnmarshalComparison rebuilds a comparison. Stored data above capacity is rejected.
func UnmarshalComparison(data []byte) (*Comparison, error) {
	set, err := unmarshalSet(data)
	if err != nil {
		return nil, err
	}
	if set.Count() > ComparisonCapacity {
		return nil, fmt.Errorf("comparison holds %d items, limit is %d", set.Count(), ComparisonCapacity)
	}
	return &Comparison{itemSet: set}, nil
}
