package basket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalCart_LegacyLayout(t *testing.T) {
	id := uuid.New()
	data := []byte(`[
		{"id":"` + id.String() + `","name":"Brake pads","price":"R850.00","image":"/img/pads.jpg","quantity":1},
		{"id":"` + id.String() + `","name":"Brake pads","price":"R850.00","quantity":2}
	]`)

	cart, err := UnmarshalCart(data)

	require.NoError(t, err)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, id, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "2550.00", cart.Total().StringFixed(2))
}

func TestCartCodec_Canonical(t *testing.T) {
	cart := NewCart()
	item := testItem("Oil filter", "120.5")
	item.SKU = "OF-1"
	cart.AddItem(item)
	cart.UpdateQuantity(item.ProductID, 2)

	data, err := MarshalCart(cart)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"120.50"`)

	restored, err := UnmarshalCart(data)
	require.NoError(t, err)
	assert.Equal(t, cart.ItemCount(), restored.ItemCount())
	assert.True(t, cart.Total().Equal(restored.Total()))
	assert.Equal(t, "OF-1", restored.Lines()[0].SKU)
}

func TestUnmarshalCart_Empty(t *testing.T) {
	cart, err := UnmarshalCart(nil)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestUnmarshalCart_InvalidPrice(t *testing.T) {
	data := []byte(`{"items":[{"product_id":"` + uuid.New().String() + `","price":"free","quantity":1}]}`)

	_, err := UnmarshalCart(data)

	assert.Error(t, err)
}

func TestUnmarshalComparison_OverCapacity(t *testing.T) {
	items := make([]Item, 0, ComparisonCapacity+1)
	for i := 0; i <= ComparisonCapacity; i++ {
		items = append(items, testItem("Part", "1"))
	}
	data, err := MarshalItems(items)
	require.NoError(t, err)

	_, err = UnmarshalComparison(data)

	assert.Error(t, err)
}

func TestUnmarshalWishlist_DropsDuplicates(t *testing.T) {
	item := testItem("Part", "1")
	data, err := MarshalItems([]Item{item, item})
	require.NoError(t, err)

	w, err := UnmarshalWishlist(data)

	require.NoError(t, err)
	assert.Equal(t, 1, w.Count())
}
