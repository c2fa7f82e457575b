package transform

import (
	"salesetl/internal/model"
	"salesetl/pkg/records"
)

// Raw carries the four raw tables handed over by extraction.
type Raw struct {
	Customers    []records.Record
	Products     []records.Record
	Orders       []records.Record
	OrderDetails []records.Record
}

// Result carries the four cleaned tables, ready for loading.
type Result struct {
	Customers []model.Customer
	Products  []model.Product
	Orders    []model.Order
	LineItems []model.LineItem
}

// Stats counts rows in and out of each table plus referential drops. Rows
// are still dropped silently; the counts only feed logs and metrics.
type Stats struct {
	CustomersIn   int
	CustomersKept int

	ProductsIn   int
	ProductsKept int

	OrdersIn       int
	OrdersCleaned  int
	OrdersOrphaned int
	OrdersKept     int

	LineItemsIn       int
	LineItemsMerged   int
	LineItemsOrphaned int
	LineItemsKept     int
}

// Apply runs the full transform: entity cleaning, line-item aggregation,
// referential integrity filtering in strict dependency order (customers and
// products first, then orders, then line items), and derived-field
// computation last. The returned error is only ever an internal-consistency
// violation; bad input rows never produce one.
func Apply(raw Raw) (Result, Stats, error) {
	var st Stats
	st.CustomersIn = len(raw.Customers)
	st.ProductsIn = len(raw.Products)
	st.OrdersIn = len(raw.Orders)
	st.LineItemsIn = len(raw.OrderDetails)

	customers := cleanCustomers(raw.Customers)
	products := cleanProducts(raw.Products)
	orders := cleanOrders(raw.Orders)
	items := aggregateLineItems(raw.OrderDetails)

	st.CustomersKept = len(customers)
	st.ProductsKept = len(products)
	st.OrdersCleaned = len(orders)
	st.LineItemsMerged = len(items)

	orders = filterOrders(orders, customers)
	st.OrdersOrphaned = st.OrdersCleaned - len(orders)
	st.OrdersKept = len(orders)

	items = filterLineItems(items, orders, products)
	st.LineItemsOrphaned = st.LineItemsMerged - len(items)

	items, err := deriveLineItems(items, products)
	if err != nil {
		return Result{}, st, err
	}
	st.LineItemsKept = len(items)

	return Result{
		Customers: customers,
		Products:  products,
		Orders:    orders,
		LineItems: items,
	}, st, nil
}
