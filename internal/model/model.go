// Package model defines the cleaned sales entities produced by the transform
// stage and consumed by the load stage. Nullable text fields are *string so
// a missing value stays an explicit NULL all the way into the database,
// never an empty string.
package model

// Customer is a cleaned customer row. CustomerID is unique within a batch.
type Customer struct {
	CustomerID int64
	FirstName  string
	LastName   string
	Email      *string
	Phone      *string
	City       *string
	Country    *string
}

// Product is a cleaned product row. Price is non-negative; Stock is
// non-negative and defaults to 0.
type Product struct {
	ProductID   int64
	ProductName string
	Category    string
	Price       float64
	Stock       int64
}

// Order is a cleaned order row. OrderDate is a calendar date in YYYY-MM-DD
// form with no time component.
type Order struct {
	OrderID    int64
	CustomerID int64
	OrderDate  string
	Status     *string
}

// LineItem is one (order, product) entry with the quantity summed across
// duplicate raw rows. UnitPrice is copied from the referenced product at
// transform time; LineTotal = Quantity * UnitPrice.
type LineItem struct {
	OrderID   int64
	ProductID int64
	Quantity  float64
	UnitPrice float64
	LineTotal float64
}

// UncategorizedCategory is the sentinel applied to products without a
// category value.
const UncategorizedCategory = "uncategorized"
