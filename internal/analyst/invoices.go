package analyst

import (
	"fmt"
	"time"

	"salesengine/internal/core"
)

func (a *Analyst) invoicesByMerchant() grouping[int64, core.Invoice] {
	return groupBy(a.invoices.All(), func(i core.Invoice) int64 { return i.MerchantID })
}

func (a *Analyst) invoicesByWeekday() grouping[time.Weekday, core.Invoice] {
	return groupBy(a.invoices.All(), func(i core.Invoice) time.Weekday {
		return i.CreatedAt.Weekday()
	})
}

// AverageInvoicesPerMerchant is the mean invoice count across merchants
// that have at least one invoice.
func (a *Analyst) AverageInvoicesPerMerchant() (float64, error) {
	m, err := mean(a.invoicesByMerchant().sizes())
	if err != nil {
		return 0, fmt.Errorf("average invoices per merchant: %w", err)
	}
	return round2(m), nil
}

// AverageInvoicesPerMerchantStandardDeviation is the sample deviation of
// the per-merchant invoice counts around the published rounded mean.
func (a *Analyst) AverageInvoicesPerMerchantStandardDeviation() (float64, error) {
	avg, err := a.AverageInvoicesPerMerchant()
	if err != nil {
		return 0, err
	}
	sd, err := sampleStdDev(a.invoicesByMerchant().sizes(), avg)
	if err != nil {
		return 0, fmt.Errorf("invoices per merchant deviation: %w", err)
	}
	return round2(sd), nil
}

// TopMerchantsByInvoiceCount returns merchants at least two standard
// deviations above the average invoice count. The items query uses one
// deviation; the asymmetry is deliberate.
func (a *Analyst) TopMerchantsByInvoiceCount() ([]core.Merchant, error) {
	avg, err := a.AverageInvoicesPerMerchant()
	if err != nil {
		return nil, err
	}
	sd, err := a.AverageInvoicesPerMerchantStandardDeviation()
	if err != nil {
		return nil, err
	}
	return a.merchantsByInvoiceThreshold(avg+2*sd, true)
}

// BottomMerchantsByInvoiceCount returns merchants at least two standard
// deviations below the average invoice count.
func (a *Analyst) BottomMerchantsByInvoiceCount() ([]core.Merchant, error) {
	avg, err := a.AverageInvoicesPerMerchant()
	if err != nil {
		return nil, err
	}
	sd, err := a.AverageInvoicesPerMerchantStandardDeviation()
	if err != nil {
		return nil, err
	}
	return a.merchantsByInvoiceThreshold(avg-2*sd, false)
}

func (a *Analyst) merchantsByInvoiceThreshold(threshold float64, above bool) ([]core.Merchant, error) {
	g := a.invoicesByMerchant()
	var out []core.Merchant
	for _, merchantID := range g.keys {
		count := float64(len(g.groups[merchantID]))
		if (above && count >= threshold) || (!above && count <= threshold) {
			m, err := a.merchants.FindByID(merchantID)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// InvoicesByWeekday groups invoices by the weekday of their creation
// date.
func (a *Analyst) InvoicesByWeekday() map[time.Weekday][]core.Invoice {
	g := a.invoicesByWeekday()
	out := make(map[time.Weekday][]core.Invoice, len(g.keys))
	for _, day := range g.keys {
		out[day] = append([]core.Invoice(nil), g.groups[day]...)
	}
	return out
}

// AverageInvoicesPerDay is the mean invoice count across the weekdays
// present in the data (at most seven buckets).
func (a *Analyst) AverageInvoicesPerDay() (float64, error) {
	m, err := mean(a.invoicesByWeekday().sizes())
	if err != nil {
		return 0, fmt.Errorf("average invoices per day: %w", err)
	}
	return round2(m), nil
}

// AverageInvoicesPerDayStandardDeviation is the sample deviation of the
// per-weekday invoice counts. Unlike the per-merchant queries this
// deviates around the exact mean, not the rounded one.
func (a *Analyst) AverageInvoicesPerDayStandardDeviation() (float64, error) {
	sizes := a.invoicesByWeekday().sizes()
	m, err := mean(sizes)
	if err != nil {
		return 0, fmt.Errorf("average invoices per day: %w", err)
	}
	sd, err := sampleStdDev(sizes, m)
	if err != nil {
		return 0, fmt.Errorf("invoices per day deviation: %w", err)
	}
	return round2(sd), nil
}

// TopDaysByInvoiceCount returns the weekday names whose invoice count is
// at least one standard deviation above the daily average.
func (a *Analyst) TopDaysByInvoiceCount() ([]string, error) {
	g := a.invoicesByWeekday()
	sizes := g.sizes()
	m, err := mean(sizes)
	if err != nil {
		return nil, fmt.Errorf("top days: %w", err)
	}
	sd, err := sampleStdDev(sizes, m)
	if err != nil {
		return nil, fmt.Errorf("top days: %w", err)
	}
	threshold := m + sd

	var out []string
	for _, day := range g.keys {
		if float64(len(g.groups[day])) >= threshold {
			out = append(out, day.String())
		}
	}
	return out, nil
}

// InvoiceStatusPercentage is the share of all invoices carrying the
// given status, as a percentage rounded to two places.
func (a *Analyst) InvoiceStatusPercentage(status core.InvoiceStatus) (float64, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}
	total := a.invoices.Len()
	if total == 0 {
		return 0, fmt.Errorf("invoice status share: %w", core.ErrEmptyPopulation)
	}
	count := len(a.invoices.FindAllByStatus(status))
	return round2(float64(count) / float64(total) * 100), nil
}
