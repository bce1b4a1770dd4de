// Package store provides the in-memory entity collections the analytical
// engine reads from: one store per entity type, each with an id index and
// secondary indexes on its foreign keys, plus the CSV dataset loader.
//
// Stores are populated once at startup. Create/Update operations exist
// for the mutable entities, but queries running concurrently with
// mutation see no consistency guarantees beyond per-call atomicity.
package store

// Dataset bundles the six entity stores loaded from one tabular dataset.
type Dataset struct {
	Merchants    *MerchantStore
	Items        *ItemStore
	Invoices     *InvoiceStore
	InvoiceItems *InvoiceItemStore
	Transactions *TransactionStore
	Customers    *CustomerStore
}
