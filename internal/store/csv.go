package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"salesengine/internal/core"
)

// Conventional file names inside a dataset directory.
const (
	merchantsFile    = "merchants.csv"
	itemsFile        = "items.csv"
	invoicesFile     = "invoices.csv"
	invoiceItemsFile = "invoice_items.csv"
	transactionsFile = "transactions.csv"
	customersFile    = "customers.csv"
)

// timeLayouts are the timestamp formats seen in the dataset exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// LoadDataset reads the six CSV files from dir and builds all stores,
// one goroutine per file.
func LoadDataset(ctx context.Context, dir string) (*Dataset, error) {
	ds := &Dataset{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, merchantsFile), parseMerchant)
		if err != nil {
			return err
		}
		ds.Merchants = NewMerchantStore(records)
		return nil
	})
	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, itemsFile), parseItem)
		if err != nil {
			return err
		}
		ds.Items = NewItemStore(records)
		return nil
	})
	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, invoicesFile), parseInvoice)
		if err != nil {
			return err
		}
		ds.Invoices = NewInvoiceStore(records)
		return nil
	})
	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, invoiceItemsFile), parseInvoiceItem)
		if err != nil {
			return err
		}
		ds.InvoiceItems = NewInvoiceItemStore(records)
		return nil
	})
	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, transactionsFile), parseTransaction)
		if err != nil {
			return err
		}
		ds.Transactions = NewTransactionStore(records)
		return nil
	})
	g.Go(func() error {
		records, err := readCSV(ctx, filepath.Join(dir, customersFile), parseCustomer)
		if err != nil {
			return err
		}
		ds.Customers = NewCustomerStore(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// row is one CSV record keyed by column header.
type row map[string]string

func readCSV[T any](ctx context.Context, path string, parse func(row) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var out []T
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rec := make(row, len(header))
		for i, h := range header {
			if i < len(fields) {
				rec[h] = fields[i]
			}
		}
		parsed, err := parse(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseMerchant(r row) (core.Merchant, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.Merchant{}, err
	}
	return core.Merchant{
		ID:        id,
		Name:      r["name"],
		CreatedAt: parseTime(r["created_at"]),
		UpdatedAt: parseTime(r["updated_at"]),
	}, nil
}

func parseItem(r row) (core.Item, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.Item{}, err
	}
	merchantID, err := parseID(r, "merchant_id")
	if err != nil {
		return core.Item{}, err
	}
	price, err := core.ParseCents(r["unit_price"])
	if err != nil {
		return core.Item{}, fmt.Errorf("unit_price %q: %w", r["unit_price"], err)
	}
	return core.Item{
		ID:          id,
		Name:        r["name"],
		Description: r["description"],
		UnitPrice:   price,
		MerchantID:  merchantID,
		CreatedAt:   parseTime(r["created_at"]),
		UpdatedAt:   parseTime(r["updated_at"]),
	}, nil
}

func parseInvoice(r row) (core.Invoice, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.Invoice{}, err
	}
	customerID, err := parseID(r, "customer_id")
	if err != nil {
		return core.Invoice{}, err
	}
	merchantID, err := parseID(r, "merchant_id")
	if err != nil {
		return core.Invoice{}, err
	}
	status, err := core.ParseInvoiceStatus(r["status"])
	if err != nil {
		return core.Invoice{}, err
	}
	return core.Invoice{
		ID:         id,
		CustomerID: customerID,
		MerchantID: merchantID,
		Status:     status,
		CreatedAt:  parseTime(r["created_at"]),
		UpdatedAt:  parseTime(r["updated_at"]),
	}, nil
}

func parseInvoiceItem(r row) (core.InvoiceItem, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.InvoiceItem{}, err
	}
	itemID, err := parseID(r, "item_id")
	if err != nil {
		return core.InvoiceItem{}, err
	}
	invoiceID, err := parseID(r, "invoice_id")
	if err != nil {
		return core.InvoiceItem{}, err
	}
	quantity, err := parseID(r, "quantity")
	if err != nil {
		return core.InvoiceItem{}, err
	}
	price, err := core.ParseCents(r["unit_price"])
	if err != nil {
		return core.InvoiceItem{}, fmt.Errorf("unit_price %q: %w", r["unit_price"], err)
	}
	return core.InvoiceItem{
		ID:        id,
		ItemID:    itemID,
		InvoiceID: invoiceID,
		Quantity:  quantity,
		UnitPrice: price,
		CreatedAt: parseTime(r["created_at"]),
		UpdatedAt: parseTime(r["updated_at"]),
	}, nil
}

func parseTransaction(r row) (core.Transaction, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.Transaction{}, err
	}
	invoiceID, err := parseID(r, "invoice_id")
	if err != nil {
		return core.Transaction{}, err
	}
	result, err := core.ParseTransactionResult(r["result"])
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:                       id,
		InvoiceID:                invoiceID,
		CreditCardNumber:         r["credit_card_number"],
		CreditCardExpirationDate: r["credit_card_expiration_date"],
		Result:                   result,
		CreatedAt:                parseTime(r["created_at"]),
		UpdatedAt:                parseTime(r["updated_at"]),
	}, nil
}

func parseCustomer(r row) (core.Customer, error) {
	id, err := parseID(r, "id")
	if err != nil {
		return core.Customer{}, err
	}
	return core.Customer{
		ID:        id,
		FirstName: r["first_name"],
		LastName:  r["last_name"],
		CreatedAt: parseTime(r["created_at"]),
		UpdatedAt: parseTime(r["updated_at"]),
	}, nil
}

func parseID(r row, column string) (int64, error) {
	v := strings.TrimSpace(r[column])
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid integer %q", column, v)
	}
	return id, nil
}

// parseTime tries the known dataset layouts; a blank or unparseable value
// falls back to the current time rather than failing the load.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Now().UTC()
}
