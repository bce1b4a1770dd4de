package analyst

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salesengine/internal/core"
)

// InvoicePaidInFull reports whether at least one of the invoice's
// transactions succeeded. A failed retry after a success does not revoke
// paid status. An id with no transactions at all is simply unpaid.
func (a *Analyst) InvoicePaidInFull(invoiceID int64) bool {
	for _, tx := range a.transactions.FindAllByInvoiceID(invoiceID) {
		if tx.Result == core.ResultSuccess {
			return true
		}
	}
	return false
}

// InvoiceTotal is the exact decimal sum of quantity times sale-time unit
// price over the invoice's line items.
func (a *Analyst) InvoiceTotal(invoiceID int64) (decimal.Decimal, error) {
	if _, err := a.invoices.FindByID(invoiceID); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, li := range a.invoiceItems.FindAllByInvoiceID(invoiceID) {
		total = total.Add(li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity)))
	}
	return total, nil
}

// TotalRevenueByDate returns the item total of the first invoice created
// on the given UTC calendar date. It deliberately does not aggregate all
// invoices of that date; callers wanting an aggregate sum InvoiceTotal
// themselves.
func (a *Analyst) TotalRevenueByDate(date time.Time) (decimal.Decimal, error) {
	y, m, d := date.UTC().Date()
	for _, inv := range a.invoices.All() {
		iy, im, id := inv.CreatedAt.UTC().Date()
		if iy == y && im == m && id == d {
			return a.InvoiceTotal(inv.ID)
		}
	}
	return decimal.Zero, fmt.Errorf("no invoice created on %04d-%02d-%02d: %w", y, m, d, core.ErrNotFound)
}

// RevenueByMerchant sums the invoice totals of the merchant's paid-in-full
// invoices; unpaid invoices contribute nothing.
func (a *Analyst) RevenueByMerchant(merchantID int64) (decimal.Decimal, error) {
	if _, err := a.merchants.FindByID(merchantID); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range a.invoices.FindAllByMerchantID(merchantID) {
		if !a.InvoicePaidInFull(inv.ID) {
			continue
		}
		sub, err := a.InvoiceTotal(inv.ID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sub)
	}
	return total, nil
}

// TopRevenueEarners ranks every merchant by revenue, descending, and
// returns the first n. The sort is stable: merchants with equal revenue
// keep their relative store order. n larger than the merchant count
// returns all merchants.
func (a *Analyst) TopRevenueEarners(n int) ([]core.Merchant, error) {
	if n < 0 {
		return nil, fmt.Errorf("top revenue earners count %d: %w", n, core.ErrInvalidArgument)
	}
	merchants := a.merchants.All()
	revenues := make([]decimal.Decimal, len(merchants))
	for i, m := range merchants {
		rev, err := a.RevenueByMerchant(m.ID)
		if err != nil {
			return nil, err
		}
		revenues[i] = rev
	}
	order := make([]int, len(merchants))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return revenues[order[i]].GreaterThan(revenues[order[j]])
	})
	if n > len(order) {
		n = len(order)
	}
	out := make([]core.Merchant, 0, n)
	for _, idx := range order[:n] {
		out = append(out, merchants[idx])
	}
	return out, nil
}

// MerchantsWithPendingInvoices returns merchants owning at least one
// invoice that is not paid in full, each merchant once, in the order
// their first qualifying invoice appears.
func (a *Analyst) MerchantsWithPendingInvoices() ([]core.Merchant, error) {
	seen := make(map[int64]bool)
	var out []core.Merchant
	for _, inv := range a.invoices.All() {
		if a.InvoicePaidInFull(inv.ID) || seen[inv.MerchantID] {
			continue
		}
		seen[inv.MerchantID] = true
		m, err := a.merchants.FindByID(inv.MerchantID)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// MostSoldItemForMerchant returns the merchant's item with the highest
// total quantity across all its line items, regardless of invoice
// status. Ties go to the lowest item id.
func (a *Analyst) MostSoldItemForMerchant(merchantID int64) (core.Item, error) {
	if _, err := a.merchants.FindByID(merchantID); err != nil {
		return core.Item{}, err
	}
	items := a.items.FindAllByMerchantID(merchantID)
	if len(items) == 0 {
		return core.Item{}, fmt.Errorf("merchant %d owns no items: %w", merchantID, core.ErrEmptyPopulation)
	}
	var best core.Item
	bestQty := int64(-1)
	for _, it := range items {
		var qty int64
		for _, li := range a.invoiceItems.FindAllByItemID(it.ID) {
			qty += li.Quantity
		}
		if qty > bestQty || (qty == bestQty && it.ID < best.ID) {
			best, bestQty = it, qty
		}
	}
	return best, nil
}

// BestItemForMerchant returns the item generating the most line-item
// revenue on the merchant's paid-in-full invoices. Ties go to the lowest
// item id.
func (a *Analyst) BestItemForMerchant(merchantID int64) (core.Item, error) {
	if _, err := a.merchants.FindByID(merchantID); err != nil {
		return core.Item{}, err
	}
	revenue := make(map[int64]decimal.Decimal)
	var itemIDs []int64
	for _, inv := range a.invoices.FindAllByMerchantID(merchantID) {
		if !a.InvoicePaidInFull(inv.ID) {
			continue
		}
		for _, li := range a.invoiceItems.FindAllByInvoiceID(inv.ID) {
			if _, ok := revenue[li.ItemID]; !ok {
				itemIDs = append(itemIDs, li.ItemID)
			}
			revenue[li.ItemID] = revenue[li.ItemID].Add(li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity)))
		}
	}
	if len(itemIDs) == 0 {
		return core.Item{}, fmt.Errorf("merchant %d has no paid line items: %w", merchantID, core.ErrEmptyPopulation)
	}
	bestID := int64(0)
	bestRevenue := decimal.Zero
	first := true
	for _, id := range itemIDs {
		r := revenue[id]
		if first || r.GreaterThan(bestRevenue) || (r.Equal(bestRevenue) && id < bestID) {
			bestID, bestRevenue, first = id, r, false
		}
	}
	return a.items.FindByID(bestID)
}
