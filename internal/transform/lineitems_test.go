package transform

import (
	"strings"
	"testing"

	"salesetl/internal/model"
	"salesetl/pkg/records"
)

func itemRow(order, product, qty any) records.Record {
	return records.Record{
		colOrderID:   order,
		colProductID: product,
		colQuantity:  qty,
	}
}

func TestAggregateSumsDuplicates(t *testing.T) {
	in := []records.Record{
		itemRow("100", "10", "2"),
		itemRow("100", "10", "3"),
	}
	got := aggregateLineItems(in)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got[0].OrderID != 100 || got[0].ProductID != 10 || got[0].Quantity != 5 {
		t.Fatalf("got %+v", got[0])
	}
}

func TestAggregateDropsInvalidRows(t *testing.T) {
	in := []records.Record{
		itemRow(nil, "10", "2"),     // missing order
		itemRow("100", nil, "2"),    // missing product
		itemRow("100", "10", nil),   // missing quantity
		itemRow("100", "10", "0"),   // zero quantity
		itemRow("100", "10", "-3"),  // negative quantity
		itemRow("100", "10", "two"), // unparsable quantity
		itemRow("x", "10", "2"),     // unparsable order id
		itemRow("100", "y", "2"),    // unparsable product id
		itemRow("100", "10", "2"),
	}
	got := aggregateLineItems(in)
	if len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestAggregatePreservesFirstAppearanceOrder(t *testing.T) {
	in := []records.Record{
		itemRow("2", "20", "1"),
		itemRow("1", "10", "1"),
		itemRow("2", "20", "1"),
	}
	got := aggregateLineItems(in)
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].OrderID != 2 || got[1].OrderID != 1 {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestDeriveLineItems(t *testing.T) {
	items := []model.LineItem{{OrderID: 100, ProductID: 10, Quantity: 5}}
	products := []model.Product{{ProductID: 10, ProductName: "Widget", Price: 9.5}}
	got, err := deriveLineItems(items, products)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if got[0].UnitPrice != 9.5 || got[0].LineTotal != 47.5 {
		t.Fatalf("got %+v", got[0])
	}
}

func TestDeriveMissingPriceIsFatal(t *testing.T) {
	items := []model.LineItem{{OrderID: 100, ProductID: 99, Quantity: 1}}
	_, err := deriveLineItems(items, nil)
	if err == nil {
		t.Fatal("expected internal-consistency error")
	}
	if !strings.Contains(err.Error(), "product=99") {
		t.Fatalf("error should name the offending key: %v", err)
	}
}
