package transform

import "salesetl/internal/model"

// filterOrders drops orders whose CustomerID is not in the retained customer
// set. Orphans are dropped silently; they surface only in the drop counts.
func filterOrders(orders []model.Order, customers []model.Customer) []model.Order {
	valid := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		valid[c.CustomerID] = struct{}{}
	}
	out := orders[:0]
	for _, o := range orders {
		if _, ok := valid[o.CustomerID]; ok {
			out = append(out, o)
		}
	}
	return out
}

// filterLineItems drops line items whose OrderID is not in the retained
// order set or whose ProductID is not in the retained product set. Runs
// after filterOrders; removal of an order here never triggers re-validation
// of earlier levels.
func filterLineItems(items []model.LineItem, orders []model.Order, products []model.Product) []model.LineItem {
	validOrders := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		validOrders[o.OrderID] = struct{}{}
	}
	validProducts := make(map[int64]struct{}, len(products))
	for _, p := range products {
		validProducts[p.ProductID] = struct{}{}
	}
	out := items[:0]
	for _, it := range items {
		if _, ok := validOrders[it.OrderID]; !ok {
			continue
		}
		if _, ok := validProducts[it.ProductID]; !ok {
			continue
		}
		out = append(out, it)
	}
	return out
}
