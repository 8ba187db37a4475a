package cart

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned by Add when the product id does not
// resolve in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Product is the catalog's view of an item: the current name and price.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Catalog is the read-only product lookup the cart resolves against.
type Catalog interface {
	Get(productID string) (Product, error)
}

// Entry is a single cart line as held in the session. Name and Price are
// snapshots taken when the item was first added; totals are always
// computed from the live catalog price, not from these.
type Entry struct {
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

// Cart maps product ids (string form) to entries. It is a plain value:
// the request layer is responsible for loading it from and saving it back
// to the session.
type Cart map[string]Entry

// Add puts one unit of the product into the cart, incrementing the
// quantity if it is already there. The name/price snapshot is taken only
// on first add. Returns the new total item count.
func (c Cart) Add(catalog Catalog, productID string) (int, error) {
	product, err := catalog.Get(productID)
	if err != nil {
		return 0, ErrProductNotFound
	}

	if entry, ok := c[productID]; ok {
		entry.Quantity++
		c[productID] = entry
	} else {
		c[productID] = Entry{
			Quantity: 1,
			Name:     product.Name,
			Price:    product.Price,
		}
	}

	return c.Count(), nil
}

// SetQuantity overwrites the quantity of an existing entry. A quantity of
// zero or less removes the entry. Setting a quantity for a product that
// was never added is a no-op.
func (c Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		delete(c, productID)
		return
	}

	if entry, ok := c[productID]; ok {
		entry.Quantity = quantity
		c[productID] = entry
	}
}

// Remove deletes the entry if present. Removing an absent product is a
// no-op.
func (c Cart) Remove(productID string) {
	delete(c, productID)
}

// Clear empties the cart.
func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// Count returns the total number of items across all entries.
func (c Cart) Count() int {
	total := 0
	for _, entry := range c {
		total += entry.Quantity
	}
	return total
}

// Line is one row of the projected cart, priced at the live catalog price.
type Line struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Project resolves every entry against the catalog and computes per-line
// and aggregate totals. Entries whose product no longer exists are
// skipped without being removed from the cart. Lines come back sorted by
// product id so output is stable.
func (c Cart) Project(catalog Catalog) ([]Line, decimal.Decimal) {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var lines []Line
	total := decimal.Zero

	for _, id := range ids {
		product, err := catalog.Get(id)
		if err != nil {
			continue
		}

		entry := c[id]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		lines = append(lines, Line{
			Product:  product,
			Quantity: entry.Quantity,
			Total:    lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return lines, total
}
