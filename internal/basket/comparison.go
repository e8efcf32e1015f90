package basket

import (
	"fmt"

	"github.com/google/uuid"
)

// ComparisonCapacity is the most products that can be compared at once
const ComparisonCapacity = 4

// Comparison is a bounded set of products shown side by side
type Comparison struct {
	itemSet
}

// NewComparison creates an empty comparison
func NewComparison() *Comparison {
	return &Comparison{}
}

// IsFull reports whether the comparison is at capacity
func (c *Comparison) IsFull() bool {
	return c.Count() >= ComparisonCapacity
}

// Add includes a product unless it is already present or the comparison is full
func (c *Comparison) Add(item Item) Result {
	if c.Contains(item.ProductID) {
		return declined("Item already in comparison")
	}
	if c.IsFull() {
		return declined(fmt.Sprintf("Maximum %d items can be compared", ComparisonCapacity))
	}
	c.items = append(c.items, item)
	return accepted("Added to comparison")
}

// Remove drops a product; removing an absent product still succeeds
func (c *Comparison) Remove(id uuid.UUID) Result {
	c.remove(id)
	return accepted("Removed from comparison")
}
