package analyst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salesengine/internal/core"
)

func (a *Analyst) itemsByMerchant() grouping[int64, core.Item] {
	return groupBy(a.items.All(), func(i core.Item) int64 { return i.MerchantID })
}

// AverageItemsPerMerchant is the mean item count across merchants that
// own at least one item.
func (a *Analyst) AverageItemsPerMerchant() (float64, error) {
	m, err := mean(a.itemsByMerchant().sizes())
	if err != nil {
		return 0, fmt.Errorf("average items per merchant: %w", err)
	}
	return round2(m), nil
}

// AverageItemsPerMerchantStandardDeviation is the sample deviation of
// the per-merchant item counts, taken around the published rounded mean.
func (a *Analyst) AverageItemsPerMerchantStandardDeviation() (float64, error) {
	avg, err := a.AverageItemsPerMerchant()
	if err != nil {
		return 0, err
	}
	sd, err := sampleStdDev(a.itemsByMerchant().sizes(), avg)
	if err != nil {
		return 0, fmt.Errorf("items per merchant deviation: %w", err)
	}
	return round2(sd), nil
}

// MerchantsWithHighItemCount returns merchants whose item count is at
// least one standard deviation above the average, in grouping order.
func (a *Analyst) MerchantsWithHighItemCount() ([]core.Merchant, error) {
	avg, err := a.AverageItemsPerMerchant()
	if err != nil {
		return nil, err
	}
	sd, err := a.AverageItemsPerMerchantStandardDeviation()
	if err != nil {
		return nil, err
	}
	threshold := avg + sd

	g := a.itemsByMerchant()
	var out []core.Merchant
	for _, merchantID := range g.keys {
		if float64(len(g.groups[merchantID])) >= threshold {
			m, err := a.merchants.FindByID(merchantID)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// AverageItemPriceForMerchant is the mean unit price of the merchant's
// items, rounded to four decimal places.
func (a *Analyst) AverageItemPriceForMerchant(merchantID int64) (decimal.Decimal, error) {
	if _, err := a.merchants.FindByID(merchantID); err != nil {
		return decimal.Zero, err
	}
	items := a.items.FindAllByMerchantID(merchantID)
	if len(items) == 0 {
		return decimal.Zero, fmt.Errorf("merchant %d owns no items: %w", merchantID, core.ErrEmptyPopulation)
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice)
	}
	return total.Div(decimal.NewFromInt(int64(len(items)))).Round(4), nil
}

// AverageAveragePricePerMerchant is the mean of the per-merchant average
// item prices. This is a mean of means, not a global mean; the two differ
// when merchants own unequal item counts.
func (a *Analyst) AverageAveragePricePerMerchant() (decimal.Decimal, error) {
	g := a.itemsByMerchant()
	if len(g.keys) == 0 {
		return decimal.Zero, fmt.Errorf("average average price: %w", core.ErrEmptyPopulation)
	}
	total := decimal.Zero
	for _, merchantID := range g.keys {
		avg, err := a.AverageItemPriceForMerchant(merchantID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(avg)
	}
	return total.Div(decimal.NewFromInt(int64(len(g.keys)))).Round(2), nil
}

// GoldenItems returns items priced at or above two sample deviations
// over the global mean item price, computed on the flat item collection.
func (a *Analyst) GoldenItems() ([]core.Item, error) {
	items := a.items.All()
	if len(items) < 2 {
		return nil, fmt.Errorf("golden items over %d items: %w", len(items), core.ErrEmptyPopulation)
	}
	total := decimal.Zero
	prices := make([]float64, 0, len(items))
	for _, it := range items {
		total = total.Add(it.UnitPrice)
		prices = append(prices, it.UnitPrice.InexactFloat64())
	}
	meanPrice := total.Div(decimal.NewFromInt(int64(len(items))))
	sd, err := sampleStdDev(prices, meanPrice.InexactFloat64())
	if err != nil {
		return nil, err
	}
	threshold := meanPrice.Add(decimal.NewFromFloat(2 * sd))

	var out []core.Item
	for _, it := range items {
		if it.UnitPrice.GreaterThanOrEqual(threshold) {
			out = append(out, it)
		}
	}
	return out, nil
}

// MerchantsWithOnlyOneItem returns merchants owning exactly one item, in
// grouping order.
func (a *Analyst) MerchantsWithOnlyOneItem() ([]core.Merchant, error) {
	g := a.itemsByMerchant()
	var out []core.Merchant
	for _, merchantID := range g.keys {
		if len(g.groups[merchantID]) == 1 {
			m, err := a.merchants.FindByID(merchantID)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// MerchantsWithOnlyOneItemRegisteredInMonth filters the one-item
// merchants down to those created in the named month.
func (a *Analyst) MerchantsWithOnlyOneItemRegisteredInMonth(monthName string) ([]core.Merchant, error) {
	month, err := core.ParseMonthName(monthName)
	if err != nil {
		return nil, err
	}
	oneItem, err := a.MerchantsWithOnlyOneItem()
	if err != nil {
		return nil, err
	}
	var out []core.Merchant
	for _, m := range oneItem {
		if m.CreatedAt.Month() == month {
			out = append(out, m)
		}
	}
	return out, nil
}
