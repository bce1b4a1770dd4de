package store

import (
	"fmt"
	"sync"

	"salesengine/internal/core"
)

// TransactionStore holds payment transactions with id and invoice_id
// indexes. Transactions are load-only; the payment gateway owns creation.
type TransactionStore struct {
	mu        sync.RWMutex
	records   []core.Transaction
	byID      map[int64]int
	byInvoice map[int64][]int
}

func NewTransactionStore(records []core.Transaction) *TransactionStore {
	s := &TransactionStore{
		byID:      make(map[int64]int, len(records)),
		byInvoice: make(map[int64][]int),
	}
	for _, r := range records {
		pos := len(s.records)
		s.byID[r.ID] = pos
		s.byInvoice[r.InvoiceID] = append(s.byInvoice[r.InvoiceID], pos)
		s.records = append(s.records, r)
	}
	return s
}

func (s *TransactionStore) All() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, len(s.records))
	copy(out, s.records)
	return out
}

func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *TransactionStore) FindByID(id int64) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

func (s *TransactionStore) FindAllByInvoiceID(invoiceID int64) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byInvoice[invoiceID]
	out := make([]core.Transaction, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

func (s *TransactionStore) FindAllByResult(result core.TransactionResult) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, r := range s.records {
		if r.Result == result {
			out = append(out, r)
		}
	}
	return out
}
