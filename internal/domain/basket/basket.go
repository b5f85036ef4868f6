package basket

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Item is one product line in a customer basket. Name, price, picture,
// brand and category are snapshots taken when the line was first added.
type Item struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Picture     string          `json:"picture"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
}

// LineTotal returns price multiplied by quantity for this line
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerBasket is a customer's in-progress selection of product lines.
// It lives only in the cache store, keyed by an opaque id assigned by the
// caller; it has no relational persistence lifecycle of its own.
//
// Invariant: TotalPrice always equals the sum of Price*Quantity over Items.
type CustomerBasket struct {
	ID         string          `json:"id"`
	Items      []Item          `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// NewCustomerBasket creates an empty basket with the given id
func NewCustomerBasket(id string) *CustomerBasket {
	return &CustomerBasket{
		ID:         id,
		Items:      []Item{},
		TotalPrice: decimal.Zero,
	}
}

// IsEmpty returns true when the basket holds no lines
func (b *CustomerBasket) IsEmpty() bool {
	return len(b.Items) == 0
}

// FindItem returns the line for a product, or nil
func (b *CustomerBasket) FindItem(productID int64) *Item {
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			return &b.Items[i]
		}
	}
	return nil
}

// AddItem adds one unit of a product to the basket. If a line for the
// product already exists its quantity is incremented; otherwise the given
// snapshot becomes a new line with quantity 1. The total is updated
// incrementally by the unit price.
func (b *CustomerBasket) AddItem(snapshot Item) {
	if line := b.FindItem(snapshot.ProductID); line != nil {
		line.Quantity++
	} else {
		snapshot.Quantity = 1
		b.Items = append(b.Items, snapshot)
	}
	b.TotalPrice = b.TotalPrice.Add(snapshot.Price)
}

// RemoveItem removes one unit of a product from the basket. A line with
// quantity 1 is removed entirely. The total is recomputed as a full
// resummation over the remaining lines to avoid incremental drift.
// Fails with ErrItemNotFound when the basket holds no line for the product.
func (b *CustomerBasket) RemoveItem(productID int64) error {
	idx := -1
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrItemNotFound
	}

	if b.Items[idx].Quantity <= 1 {
		b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
	} else {
		b.Items[idx].Quantity--
	}

	b.TotalPrice = b.sumLines()
	return nil
}

// sumLines computes the total over all lines
func (b *CustomerBasket) sumLines() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
