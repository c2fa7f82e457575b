// Package schema defines the five relations of the sales analytics store:
// the DataSources registry plus the four cleaned entity tables. Every entity
// row carries a SourceID referencing the batch that loaded it.
package schema

import "salesetl/internal/ddl"

// Relation names.
const (
	TableDataSources  = "DataSources"
	TableCustomers    = "Customers"
	TableProducts     = "Products"
	TableOrders       = "Orders"
	TableOrderDetails = "OrderDetails"
)

// DataSources is the source registry: one row per batch run.
var DataSources = ddl.TableDef{
	Name: TableDataSources,
	Columns: []ddl.ColumnDef{
		{Name: "SourceID", Kind: ddl.KindIdentity},
		{Name: "SourceName", Kind: ddl.KindText},
		{Name: "SourceType", Kind: ddl.KindText},
		{Name: "SourcePath", Kind: ddl.KindText, Nullable: true},
		{Name: "RunID", Kind: ddl.KindText, Nullable: true},
		{Name: "Checksum", Kind: ddl.KindText, Nullable: true},
		{Name: "LoadedAt", Kind: ddl.KindTimestamp},
	},
}

// Customers holds cleaned customer rows.
var Customers = ddl.TableDef{
	Name: TableCustomers,
	Columns: []ddl.ColumnDef{
		{Name: "CustomerID", Kind: ddl.KindBigInt, PrimaryKey: true},
		{Name: "FirstName", Kind: ddl.KindText},
		{Name: "LastName", Kind: ddl.KindText},
		{Name: "Email", Kind: ddl.KindText, Nullable: true},
		{Name: "Phone", Kind: ddl.KindText, Nullable: true},
		{Name: "City", Kind: ddl.KindText, Nullable: true},
		{Name: "Country", Kind: ddl.KindText, Nullable: true},
		{Name: "SourceID", Kind: ddl.KindBigInt},
	},
	ForeignKeys: []ddl.ForeignKey{
		{Columns: []string{"SourceID"}, RefTable: TableDataSources, RefColumns: []string{"SourceID"}},
	},
}

// Products holds cleaned product rows.
var Products = ddl.TableDef{
	Name: TableProducts,
	Columns: []ddl.ColumnDef{
		{Name: "ProductID", Kind: ddl.KindBigInt, PrimaryKey: true},
		{Name: "ProductName", Kind: ddl.KindText},
		{Name: "Category", Kind: ddl.KindText},
		{Name: "Price", Kind: ddl.KindReal},
		{Name: "Stock", Kind: ddl.KindBigInt},
		{Name: "SourceID", Kind: ddl.KindBigInt},
	},
	ForeignKeys: []ddl.ForeignKey{
		{Columns: []string{"SourceID"}, RefTable: TableDataSources, RefColumns: []string{"SourceID"}},
	},
}

// Orders holds cleaned order rows; each references a retained customer.
var Orders = ddl.TableDef{
	Name: TableOrders,
	Columns: []ddl.ColumnDef{
		{Name: "OrderID", Kind: ddl.KindBigInt, PrimaryKey: true},
		{Name: "CustomerID", Kind: ddl.KindBigInt},
		{Name: "OrderDate", Kind: ddl.KindDate},
		{Name: "Status", Kind: ddl.KindText, Nullable: true},
		{Name: "SourceID", Kind: ddl.KindBigInt},
	},
	ForeignKeys: []ddl.ForeignKey{
		{Columns: []string{"CustomerID"}, RefTable: TableCustomers, RefColumns: []string{"CustomerID"}},
		{Columns: []string{"SourceID"}, RefTable: TableDataSources, RefColumns: []string{"SourceID"}},
	},
}

// OrderDetails holds aggregated line items with derived financial fields.
var OrderDetails = ddl.TableDef{
	Name: TableOrderDetails,
	Columns: []ddl.ColumnDef{
		{Name: "OrderID", Kind: ddl.KindBigInt, PrimaryKey: true},
		{Name: "ProductID", Kind: ddl.KindBigInt, PrimaryKey: true},
		{Name: "Quantity", Kind: ddl.KindReal},
		{Name: "UnitPrice", Kind: ddl.KindReal},
		{Name: "LineTotal", Kind: ddl.KindReal},
		{Name: "SourceID", Kind: ddl.KindBigInt},
	},
	ForeignKeys: []ddl.ForeignKey{
		{Columns: []string{"OrderID"}, RefTable: TableOrders, RefColumns: []string{"OrderID"}},
		{Columns: []string{"ProductID"}, RefTable: TableProducts, RefColumns: []string{"ProductID"}},
		{Columns: []string{"SourceID"}, RefTable: TableDataSources, RefColumns: []string{"SourceID"}},
	},
}

// Tables returns all relations in creation order (parents before children).
func Tables() []ddl.TableDef {
	return []ddl.TableDef{DataSources, Customers, Products, Orders, OrderDetails}
}

// EntityTables returns the four entity relations in load order.
func EntityTables() []ddl.TableDef {
	return []ddl.TableDef{Customers, Products, Orders, OrderDetails}
}
