package transform

import (
	"salesetl/internal/model"
	"salesetl/pkg/records"
)

// Raw column names as they appear in the input headers.
const (
	colCustomerID  = "CustomerID"
	colFirstName   = "FirstName"
	colLastName    = "LastName"
	colEmail       = "Email"
	colPhone       = "Phone"
	colCity        = "City"
	colCountry     = "Country"
	colProductID   = "ProductID"
	colProductName = "ProductName"
	colCategory    = "Category"
	colPrice       = "Price"
	colStock       = "Stock"
	colOrderID     = "OrderID"
	colOrderDate   = "OrderDate"
	colStatus      = "Status"
	colQuantity    = "Quantity"
)

// cleanCustomers deduplicates by CustomerID (first wins), drops rows missing
// CustomerID/FirstName/LastName or with a non-integer id, and coerces the
// contact fields to text-or-nil.
func cleanCustomers(in []records.Record) []model.Customer {
	rows := dedupFirst(in, colCustomerID)
	out := make([]model.Customer, 0, len(rows))
	for _, r := range rows {
		if missing(r[colCustomerID]) || missing(r[colFirstName]) || missing(r[colLastName]) {
			continue
		}
		id, ok := asID(r[colCustomerID])
		if !ok {
			continue
		}
		out = append(out, model.Customer{
			CustomerID: id,
			FirstName:  asString(r[colFirstName]),
			LastName:   asString(r[colLastName]),
			Email:      nullableString(r[colEmail]),
			Phone:      nullableString(r[colPhone]),
			City:       nullableString(r[colCity]),
			Country:    nullableString(r[colCountry]),
		})
	}
	return out
}

// cleanProducts deduplicates by ProductID (first wins) and applies the
// product numeric policy: Price required, numeric, non-negative (row dropped
// otherwise); Stock defaults to 0 when missing or unparsable and negative
// values clamp to 0; a missing Category becomes the uncategorized sentinel.
func cleanProducts(in []records.Record) []model.Product {
	rows := dedupFirst(in, colProductID)
	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		if missing(r[colProductID]) || missing(r[colProductName]) || missing(r[colPrice]) {
			continue
		}
		id, ok := asID(r[colProductID])
		if !ok {
			continue
		}
		price, ok := asFloat(r[colPrice])
		if !ok || price < 0 {
			continue
		}
		stock := int64(0)
		if f, ok := asFloat(r[colStock]); ok && f > 0 {
			stock = int64(f) // fractional stock truncates toward zero
		}
		category := model.UncategorizedCategory
		if c := nullableString(r[colCategory]); c != nil {
			category = *c
		}
		out = append(out, model.Product{
			ProductID:   id,
			ProductName: asString(r[colProductName]),
			Category:    category,
			Price:       price,
			Stock:       stock,
		})
	}
	return out
}

// cleanOrders deduplicates by OrderID (first wins), requires OrderID,
// CustomerID, and a parsable OrderDate, and normalizes the date to
// YYYY-MM-DD. Referential checks against customers happen later.
func cleanOrders(in []records.Record) []model.Order {
	rows := dedupFirst(in, colOrderID)
	out := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		if missing(r[colOrderID]) || missing(r[colCustomerID]) || missing(r[colOrderDate]) {
			continue
		}
		id, ok := asID(r[colOrderID])
		if !ok {
			continue
		}
		customerID, ok := asID(r[colCustomerID])
		if !ok {
			continue
		}
		date, ok := asDate(r[colOrderDate])
		if !ok {
			continue
		}
		out = append(out, model.Order{
			OrderID:    id,
			CustomerID: customerID,
			OrderDate:  date,
			Status:     nullableString(r[colStatus]),
		})
	}
	return out
}
