package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  InvoiceStatus = "pending"
	StatusShipped  InvoiceStatus = "shipped"
	StatusReturned InvoiceStatus = "returned"
)

const (
	ResultSuccess TransactionResult = "success"
	ResultFailed  TransactionResult = "failed"
)

type (
	// InvoiceStatus is the closed set of invoice lifecycle states.
	InvoiceStatus string

	// TransactionResult is the outcome of a single payment attempt.
	TransactionResult string

	Merchant struct {
		ID        int64
		Name      string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Item struct {
		ID          int64
		Name        string
		Description string
		UnitPrice   decimal.Decimal
		MerchantID  int64
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Invoice struct {
		ID         int64
		CustomerID int64
		MerchantID int64
		Status     InvoiceStatus
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}

	// InvoiceItem carries the sale-time unit price, which may differ
	// from the current Item price.
	InvoiceItem struct {
		ID        int64
		ItemID    int64
		InvoiceID int64
		Quantity  int64
		UnitPrice decimal.Decimal
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Transaction struct {
		ID                       int64
		InvoiceID                int64
		CreditCardNumber         string
		CreditCardExpirationDate string
		Result                   TransactionResult
		CreatedAt                time.Time
		UpdatedAt                time.Time
	}

	Customer struct {
		ID        int64
		FirstName string
		LastName  string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	// ErrNotFound signals that a referenced id has no matching record.
	ErrNotFound = errors.New("not found")

	// ErrEmptyPopulation signals a statistic requested over too few data
	// points: an empty group, or fewer than two values for a sample deviation.
	ErrEmptyPopulation = errors.New("empty population")

	// ErrInvalidArgument signals an out-of-range or unknown query argument.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseInvoiceStatus validates a status string against the closed enumeration.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusShipped:
		return StatusShipped, nil
	case StatusReturned:
		return StatusReturned, nil
	}
	return "", fmt.Errorf("%w: unknown invoice status %q", ErrInvalidArgument, s)
}

// ParseTransactionResult validates a payment result string.
func ParseTransactionResult(s string) (TransactionResult, error) {
	switch TransactionResult(strings.ToLower(strings.TrimSpace(s))) {
	case ResultSuccess:
		return ResultSuccess, nil
	case ResultFailed:
		return ResultFailed, nil
	}
	return "", fmt.Errorf("%w: unknown transaction result %q", ErrInvalidArgument, s)
}

// ParseMonthName resolves an English month name ("March") to its time.Month.
func ParseMonthName(s string) (time.Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month name %q", ErrInvalidArgument, s)
}

// ParseWeekdayName resolves an English weekday name ("Wednesday") to its time.Weekday.
func ParseWeekdayName(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday name %q", ErrInvalidArgument, s)
}

func (s InvoiceStatus) Validate() error {
	_, err := ParseInvoiceStatus(string(s))
	return err
}

func (r TransactionResult) Validate() error {
	_, err := ParseTransactionResult(string(r))
	return err
}
