package purchase

import "errors"

// ErrNoPendingCost is returned by FinishAddingProduct when it is not preceded
// by a StartAddingProduct call.
var ErrNoPendingCost = errors.New("purchase: finish adding product without a pending cost")

// =============================================================================
// BUILDER
// =============================================================================

// Builder accumulates a buyer name and products and yields a Purchase.
//
// Products are added in two steps: StartAddingProduct records the cost,
// FinishAddingProduct supplies the name and stores the pair. The builder does
// no grammar checks of its own; it only refuses a finish without a start.
//
// USAGE:
//
//	b := purchase.NewBuilder()
//	b.SetBuyerName("Ivan Ivanov")
//	b.StartAddingProduct(359)
//	_ = b.FinishAddingProduct("apples")
//	p := b.Build()
type Builder struct {
	buyerName string
	products  map[string]int

	// pendingCost bridges StartAddingProduct and FinishAddingProduct.
	pendingCost int
	pending     bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		products: make(map[string]int),
	}
}

// SetBuyerName stores the buyer name verbatim. The last call wins.
func (b *Builder) SetBuyerName(name string) {
	b.buyerName = name
}

// StartAddingProduct stores the cost of the product about to be added,
// replacing any cost that was never finished.
func (b *Builder) StartAddingProduct(cost int) {
	b.pendingCost = cost
	b.pending = true
}

// FinishAddingProduct stores name with the pending cost, replacing an earlier
// product of the same name. It consumes the pending cost.
func (b *Builder) FinishAddingProduct(name string) error {
	if !b.pending {
		return ErrNoPendingCost
	}

	if b.products == nil {
		b.products = make(map[string]int)
	}
	b.products[name] = b.pendingCost
	b.pending = false

	return nil
}

// Build snapshots the builder into a new Purchase. It may be called any
// number of times and does not reset the builder.
func (b *Builder) Build() Purchase {
	return New(b.buyerName, b.products)
}
