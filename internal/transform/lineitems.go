package transform

import (
	"fmt"

	"salesetl/internal/model"
	"salesetl/pkg/records"
)

// lineKey is the composite identity of a line item.
type lineKey struct {
	orderID   int64
	productID int64
}

// aggregateLineItems drops rows missing OrderID/ProductID/Quantity, rows
// with an unparsable or non-positive quantity, and rows with non-integer
// identifiers, then merges duplicates by summing Quantity per
// (OrderID, ProductID). The same product ordered twice in one order
// accumulates; it does not overwrite. Output preserves first-appearance
// order. UnitPrice and LineTotal stay zero until deriveLineItems runs,
// after integrity filtering.
func aggregateLineItems(in []records.Record) []model.LineItem {
	order := make([]lineKey, 0, len(in))
	qty := make(map[lineKey]float64, len(in))

	for _, r := range in {
		if missing(r[colOrderID]) || missing(r[colProductID]) || missing(r[colQuantity]) {
			continue
		}
		q, ok := asFloat(r[colQuantity])
		if !ok || q <= 0 {
			continue
		}
		orderID, ok := asID(r[colOrderID])
		if !ok {
			continue
		}
		productID, ok := asID(r[colProductID])
		if !ok {
			continue
		}
		k := lineKey{orderID: orderID, productID: productID}
		if _, seen := qty[k]; !seen {
			order = append(order, k)
		}
		qty[k] += q
	}

	out := make([]model.LineItem, 0, len(order))
	for _, k := range order {
		out = append(out, model.LineItem{
			OrderID:   k.orderID,
			ProductID: k.productID,
			Quantity:  qty[k],
		})
	}
	return out
}

// deriveLineItems copies UnitPrice from the referenced product and computes
// LineTotal. Every retained line item passed integrity filtering, so a
// missing price is a programming-invariant breach and aborts loudly rather
// than substituting a default.
func deriveLineItems(items []model.LineItem, products []model.Product) ([]model.LineItem, error) {
	price := make(map[int64]float64, len(products))
	for _, p := range products {
		price[p.ProductID] = p.Price
	}
	for i := range items {
		p, ok := price[items[i].ProductID]
		if !ok {
			return nil, fmt.Errorf(
				"transform: line item (order=%d, product=%d) passed integrity filtering but has no product price",
				items[i].OrderID, items[i].ProductID,
			)
		}
		items[i].UnitPrice = p
		items[i].LineTotal = items[i].Quantity * p
	}
	return items, nil
}
