// Command report loads the CSV dataset and prints the full analyst
// summary to stdout. Queries that cannot be answered for the dataset
// (too few data points) are reported as n/a instead of aborting.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"salesengine/internal/analyst"
	"salesengine/internal/config"
	"salesengine/internal/core"
	"salesengine/internal/log"
	"salesengine/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	dataDir := flag.String("data", cfg.DataDir, "directory holding the CSV dataset")
	topN := flag.Int("top", 10, "number of merchants in the revenue ranking")
	flag.Parse()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentReport,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ds, err := store.LoadDataset(ctx, *dataDir)
	if err != nil {
		logger.Error("failed to load dataset", log.FieldError, err, log.FieldDataDir, *dataDir)
		os.Exit(1)
	}

	a := analyst.New(ds)

	fmt.Printf("Dataset: %d merchants, %d items, %d invoices, %d transactions, %d customers\n\n",
		ds.Merchants.Len(), ds.Items.Len(), ds.Invoices.Len(), ds.Transactions.Len(), ds.Customers.Len())

	fmt.Println("Merchants")
	printFloat("  average items per merchant", a.AverageItemsPerMerchant)
	printFloat("  items per merchant std dev", a.AverageItemsPerMerchantStandardDeviation)
	printFloat("  average invoices per merchant", a.AverageInvoicesPerMerchant)
	printFloat("  invoices per merchant std dev", a.AverageInvoicesPerMerchantStandardDeviation)
	printMerchants("  high item count", a.MerchantsWithHighItemCount)
	printMerchants("  top by invoice count", a.TopMerchantsByInvoiceCount)
	printMerchants("  bottom by invoice count", a.BottomMerchantsByInvoiceCount)
	printMerchants("  only one item", a.MerchantsWithOnlyOneItem)
	printMerchants("  with pending invoices", a.MerchantsWithPendingInvoices)

	fmt.Println("\nItems")
	if items, err := a.GoldenItems(); err != nil {
		fmt.Printf("  golden items: %s\n", describe(err))
	} else {
		fmt.Printf("  golden items: %d\n", len(items))
		for _, it := range items {
			fmt.Printf("    %s (%s)\n", it.Name, core.FormatPrice(it.UnitPrice))
		}
	}

	fmt.Println("\nInvoices")
	printFloat("  average invoices per day", a.AverageInvoicesPerDay)
	printFloat("  invoices per day std dev", a.AverageInvoicesPerDayStandardDeviation)
	if days, err := a.TopDaysByInvoiceCount(); err != nil {
		fmt.Printf("  top days: %s\n", describe(err))
	} else {
		fmt.Printf("  top days: %v\n", days)
	}
	for _, status := range []core.InvoiceStatus{core.StatusPending, core.StatusShipped, core.StatusReturned} {
		if pct, err := a.InvoiceStatusPercentage(status); err != nil {
			fmt.Printf("  %s: %s\n", status, describe(err))
		} else {
			fmt.Printf("  %s: %.2f%%\n", status, pct)
		}
	}

	fmt.Println("\nRevenue")
	earners, err := a.TopRevenueEarners(*topN)
	if err != nil {
		fmt.Printf("  top earners: %s\n", describe(err))
		return
	}
	for i, m := range earners {
		revenue, err := a.RevenueByMerchant(m.ID)
		if err != nil {
			fmt.Printf("  %2d. %s: %s\n", i+1, m.Name, describe(err))
			continue
		}
		fmt.Printf("  %2d. %s: %s\n", i+1, m.Name, core.FormatPrice(revenue))
	}
}

func printFloat(label string, query func() (float64, error)) {
	v, err := query()
	if err != nil {
		fmt.Printf("%s: %s\n", label, describe(err))
		return
	}
	fmt.Printf("%s: %.2f\n", label, v)
}

func printMerchants(label string, query func() ([]core.Merchant, error)) {
	merchants, err := query()
	if err != nil {
		fmt.Printf("%s: %s\n", label, describe(err))
		return
	}
	fmt.Printf("%s: %d\n", label, len(merchants))
}

func describe(err error) string {
	if errors.Is(err, core.ErrEmptyPopulation) {
		return "n/a"
	}
	return err.Error()
}
