package analyst

import (
	"time"

	"github.com/shopspring/decimal"

	"salesengine/internal/core"
	"salesengine/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func newDataset(
	merchants []core.Merchant,
	items []core.Item,
	invoices []core.Invoice,
	invoiceItems []core.InvoiceItem,
	transactions []core.Transaction,
) *store.Dataset {
	return &store.Dataset{
		Merchants:    store.NewMerchantStore(merchants),
		Items:        store.NewItemStore(items),
		Invoices:     store.NewInvoiceStore(invoices),
		InvoiceItems: store.NewInvoiceItemStore(invoiceItems),
		Transactions: store.NewTransactionStore(transactions),
		Customers:    store.NewCustomerStore(nil),
	}
}

// itemFixture: four merchants owning 2, 1, 3, and 0 items.
//
// Group sizes (2, 1, 3): mean 2.00, sample deviation 1.00, so the high
// item count threshold is 3. Item prices (10, 30, 20, 190, 10, 10):
// mean 45, sample deviation ~71.48, golden threshold ~187.97.
func itemFixture() *Analyst {
	merchants := []core.Merchant{
		{ID: 1, Name: "Shopin1901", CreatedAt: day(2010, time.December, 10)},
		{ID: 2, Name: "Candisart", CreatedAt: day(2009, time.May, 30)},
		{ID: 3, Name: "MiniatureBikez", CreatedAt: day(2010, time.March, 30)},
		{ID: 4, Name: "GoldenRayPress", CreatedAt: day(2011, time.January, 8)},
	}
	items := []core.Item{
		{ID: 11, Name: "Pencil", MerchantID: 1, UnitPrice: dec("10.00")},
		{ID: 12, Name: "Notebook", MerchantID: 1, UnitPrice: dec("30.00")},
		{ID: 21, Name: "Frame", MerchantID: 2, UnitPrice: dec("20.00")},
		{ID: 31, Name: "Bike", MerchantID: 3, UnitPrice: dec("190.00")},
		{ID: 32, Name: "Bell", MerchantID: 3, UnitPrice: dec("10.00")},
		{ID: 33, Name: "Sticker", MerchantID: 3, UnitPrice: dec("10.00")},
	}
	return New(newDataset(merchants, items, nil, nil, nil))
}

// invoiceCountFixture: ten merchants with invoice counts
// 5,5,5,5,5,5,5,5,1,9. Mean 5.00, sample deviation 1.89 (around the
// rounded mean), so the 2-sigma outlier bounds are 8.78 and 1.22.
func invoiceCountFixture() *Analyst {
	counts := []int{5, 5, 5, 5, 5, 5, 5, 5, 1, 9}
	var merchants []core.Merchant
	var invoices []core.Invoice
	invoiceID := int64(0)
	for i, n := range counts {
		merchantID := int64(i + 1)
		merchants = append(merchants, core.Merchant{ID: merchantID, CreatedAt: day(2010, time.June, 1)})
		for j := 0; j < n; j++ {
			invoiceID++
			invoices = append(invoices, core.Invoice{
				ID:         invoiceID,
				CustomerID: 1,
				MerchantID: merchantID,
				Status:     core.StatusShipped,
				CreatedAt:  day(2012, time.April, 1+j),
			})
		}
	}
	return New(newDataset(merchants, nil, invoices, nil, nil))
}

// weekdayFixture: nine invoices, five on a Monday, one on a Wednesday,
// three on a Saturday. Daily counts (5, 1, 3): mean 3.00, sample
// deviation 2.00, top-day threshold 5. Statuses: 3 pending, 5 shipped,
// 1 returned.
func weekdayFixture() *Analyst {
	dates := []struct {
		d time.Time
		n int
	}{
		{day(2023, time.January, 2), 5}, // Monday
		{day(2023, time.January, 4), 1}, // Wednesday
		{day(2023, time.January, 7), 3}, // Saturday
	}
	statuses := []core.InvoiceStatus{
		core.StatusPending, core.StatusPending, core.StatusPending,
		core.StatusShipped, core.StatusShipped, core.StatusShipped,
		core.StatusShipped, core.StatusShipped, core.StatusReturned,
	}
	merchants := []core.Merchant{{ID: 1, CreatedAt: day(2010, time.June, 1)}}
	var invoices []core.Invoice
	id := int64(0)
	for _, b := range dates {
		for j := 0; j < b.n; j++ {
			invoices = append(invoices, core.Invoice{
				ID:         id + 1,
				CustomerID: 1,
				MerchantID: 1,
				Status:     statuses[id],
				CreatedAt:  b.d,
			})
			id++
		}
	}
	return New(newDataset(merchants, nil, invoices, nil, nil))
}

// revenueFixture implements the concrete scenarios: merchant 1 owns a
// $10 and a $30 item; invoice 101 (qty 2 of the $10 item) is paid via a
// failed-then-success transaction pair; invoice 102 (qty 1 of the $30
// item) only ever failed. Merchant 2 earns 30.00 paid, merchant 3 earns
// 20.00 paid, merchant 4 has nothing.
func revenueFixture() *Analyst {
	merchants := []core.Merchant{
		{ID: 1, Name: "Shopin1901", CreatedAt: day(2010, time.December, 10)},
		{ID: 2, Name: "Candisart", CreatedAt: day(2009, time.May, 30)},
		{ID: 3, Name: "MiniatureBikez", CreatedAt: day(2010, time.March, 30)},
		{ID: 4, Name: "GoldenRayPress", CreatedAt: day(2011, time.January, 8)},
	}
	items := []core.Item{
		{ID: 11, Name: "Pencil", MerchantID: 1, UnitPrice: dec("10.00")},
		{ID: 12, Name: "Notebook", MerchantID: 1, UnitPrice: dec("30.00")},
		{ID: 21, Name: "Frame", MerchantID: 2, UnitPrice: dec("5.00")},
		{ID: 22, Name: "Print", MerchantID: 2, UnitPrice: dec("5.00")},
		{ID: 31, Name: "Bike", MerchantID: 3, UnitPrice: dec("20.00")},
	}
	invoices := []core.Invoice{
		{ID: 101, CustomerID: 1, MerchantID: 1, Status: core.StatusShipped, CreatedAt: day(2009, time.February, 7)},
		{ID: 102, CustomerID: 1, MerchantID: 1, Status: core.StatusPending, CreatedAt: day(2012, time.January, 5)},
		{ID: 103, CustomerID: 2, MerchantID: 2, Status: core.StatusShipped, CreatedAt: day(2009, time.February, 7)},
		{ID: 104, CustomerID: 2, MerchantID: 3, Status: core.StatusShipped, CreatedAt: day(2013, time.March, 3)},
		{ID: 105, CustomerID: 3, MerchantID: 3, Status: core.StatusReturned, CreatedAt: day(2014, time.May, 5)},
		{ID: 106, CustomerID: 3, MerchantID: 1, Status: core.StatusPending, CreatedAt: day(2014, time.June, 6)},
	}
	invoiceItems := []core.InvoiceItem{
		{ID: 1001, ItemID: 11, InvoiceID: 101, Quantity: 2, UnitPrice: dec("10.00")},
		{ID: 1002, ItemID: 12, InvoiceID: 102, Quantity: 1, UnitPrice: dec("30.00")},
		{ID: 1003, ItemID: 21, InvoiceID: 103, Quantity: 3, UnitPrice: dec("5.00")},
		{ID: 1004, ItemID: 22, InvoiceID: 103, Quantity: 3, UnitPrice: dec("5.00")},
		{ID: 1005, ItemID: 31, InvoiceID: 104, Quantity: 1, UnitPrice: dec("20.00")},
	}
	transactions := []core.Transaction{
		{ID: 1, InvoiceID: 101, Result: core.ResultFailed},
		{ID: 2, InvoiceID: 101, Result: core.ResultSuccess},
		{ID: 3, InvoiceID: 102, Result: core.ResultFailed},
		{ID: 4, InvoiceID: 103, Result: core.ResultSuccess},
		{ID: 5, InvoiceID: 104, Result: core.ResultSuccess},
	}
	return New(newDataset(merchants, items, invoices, invoiceItems, transactions))
}
