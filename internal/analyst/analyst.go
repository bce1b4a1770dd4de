// Package analyst is the analytical engine over the entity stores:
// grouping and deviation primitives, merchant/item and invoice/day
// outlier queries, and the revenue roll-ups that join invoices, line
// items, and payment transactions.
//
// Every query recomputes its groupings from current store contents, so
// results always reflect the in-memory state; nothing is cached here.
// Callers wanting amortized performance cache results externally (the
// HTTP layer does).
package analyst

import (
	"salesengine/internal/store"
)

// Analyst answers analytical queries over the six entity stores. It
// holds explicit store references and never mutates them.
type Analyst struct {
	merchants    *store.MerchantStore
	items        *store.ItemStore
	invoices     *store.InvoiceStore
	invoiceItems *store.InvoiceItemStore
	transactions *store.TransactionStore
	customers    *store.CustomerStore
}

func New(ds *store.Dataset) *Analyst {
	return &Analyst{
		merchants:    ds.Merchants,
		items:        ds.Items,
		invoices:     ds.Invoices,
		invoiceItems: ds.InvoiceItems,
		transactions: ds.Transactions,
		customers:    ds.Customers,
	}
}
