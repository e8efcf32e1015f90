package basket

import "github.com/google/uuid"

// CartSink receives items moved out of a wishlist
type CartSink interface {
	AddItem(item Item)
}

// Wishlist is a set of saved products
type Wishlist struct {
	itemSet
}

// NewWishlist creates an empty wishlist
func NewWishlist() *Wishlist {
	return &Wishlist{}
}

// Add saves a product unless it is already present
func (w *Wishlist) Add(item Item) Result {
	if w.Contains(item.ProductID) {
		return declined("Item already in wishlist")
	}
	w.items = append(w.items, item)
	return accepted("Added to wishlist")
}

// Remove drops a product; removing an absent product still succeeds
func (w *Wishlist) Remove(id uuid.UUID) Result {
	w.remove(id)
	return accepted("Removed from wishlist")
}

// MoveToCart adds the product to sink and removes it from the wishlist.
// Nothing changes when the product is not in the wishlist.
func (w *Wishlist) MoveToCart(id uuid.UUID, sink CartSink) Result {
	i := w.index(id)
	if i < 0 {
		return declined("Item not found")
	}
	sink.AddItem(w.items[i])
	w.remove(id)
	return accepted("Moved to cart")
}
