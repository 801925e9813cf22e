// =============================================================================
// Purchase Parser - Purchase Record
// =============================================================================
//
// This package holds the two data types the parser works with:
//   - Purchase : the immutable result of a successful parse
//   - Builder  : the mutable accumulator the parser drives (builder.go)
//
// TEXT FORM:
//   A Purchase renders as the buyer name followed by one cost line and one
//   name line per product, products in ascending order of name:
//
//   Ivan Ivanov
//   359
//   apples
//   90
//   coffee
//
// =============================================================================

package purchase

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// =============================================================================
// PURCHASE
// =============================================================================

// Purchase is one buyer and the cost paid for each product.
// The zero value is an empty purchase with no buyer name.
type Purchase struct {
	buyerName string
	products  Products
}

// New creates a Purchase from a buyer name and a product -> cost mapping.
// The mapping is copied, so later changes to products do not reach the
// returned value. A nil map gives an empty product set.
func New(buyerName string, products map[string]int) Purchase {
	return Purchase{
		buyerName: buyerName,
		products:  newProducts(products),
	}
}

// BuyerName returns the name of the buyer.
func (p Purchase) BuyerName() string {
	return p.buyerName
}

// Products returns a read-only view of the purchased products.
func (p Purchase) Products() Products {
	return p.products
}

// Equal reports whether both purchases have the same buyer and the same
// product -> cost mapping.
func (p Purchase) Equal(other Purchase) bool {
	if p.buyerName != other.buyerName {
		return false
	}
	return maps.Equal(p.products.costs, other.products.costs)
}

// String returns the canonical text form: the buyer name line, then a cost
// line and a name line for each product in ascending order of name. Every
// line, including the last, ends with a single newline.
func (p Purchase) String() string {
	var sb strings.Builder

	sb.WriteString(p.buyerName)
	sb.WriteByte('\n')

	for name, cost := range p.products.All() {
		sb.WriteString(strconv.Itoa(cost))
		sb.WriteByte('\n')
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// =============================================================================
// PRODUCTS VIEW
// =============================================================================

// Products is a read-only, name-ordered view of a purchase's products.
// None of its methods hand out the underlying storage.
type Products struct {
	// names is sorted ascending and holds each key of costs exactly once.
	names []string
	costs map[string]int
}

func newProducts(src map[string]int) Products {
	costs := make(map[string]int, len(src))
	maps.Copy(costs, src)

	return Products{
		names: slices.Sorted(maps.Keys(costs)),
		costs: costs,
	}
}

// Len returns the number of distinct products.
func (ps Products) Len() int {
	return len(ps.names)
}

// Cost returns the cost paid for the named product.
func (ps Products) Cost(name string) (int, bool) {
	cost, ok := ps.costs[name]
	return cost, ok
}

// Names returns the product names in ascending order.
// The slice is a copy and may be modified by the caller.
func (ps Products) Names() []string {
	return slices.Clone(ps.names)
}

// All iterates over (name, cost) pairs in ascending order of name.
func (ps Products) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range ps.names {
			if !yield(name, ps.costs[name]) {
				return
			}
		}
	}
}

// Map returns a fresh copy of the product -> cost mapping.
func (ps Products) Map() map[string]int {
	return maps.Clone(ps.costs)
}

// Total returns the sum of all product costs.
func (ps Products) Total() int {
	total := 0
	for _, cost := range ps.costs {
		total += cost
	}
	return total
}
