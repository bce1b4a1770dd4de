package store

import (
	"fmt"
	"sync"
	"time"

	"salesengine/internal/core"
)

// InvoiceStore holds invoices with id, merchant_id, and customer_id
// indexes. Status lookups scan, since status is the one mutable field.
type InvoiceStore struct {
	mu         sync.RWMutex
	records    []core.Invoice
	byID       map[int64]int
	byMerchant map[int64][]int
	byCustomer map[int64][]int
	nextID     int64
}

func NewInvoiceStore(records []core.Invoice) *InvoiceStore {
	s := &InvoiceStore{
		byID:       make(map[int64]int, len(records)),
		byMerchant: make(map[int64][]int),
		byCustomer: make(map[int64][]int),
		nextID:     1,
	}
	for _, r := range records {
		s.append(r)
	}
	return s
}

func (s *InvoiceStore) append(r core.Invoice) {
	pos := len(s.records)
	s.byID[r.ID] = pos
	s.byMerchant[r.MerchantID] = append(s.byMerchant[r.MerchantID], pos)
	s.byCustomer[r.CustomerID] = append(s.byCustomer[r.CustomerID], pos)
	s.records = append(s.records, r)
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}

func (s *InvoiceStore) All() []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Invoice, len(s.records))
	copy(out, s.records)
	return out
}

func (s *InvoiceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *InvoiceStore) FindByID(id int64) (core.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Invoice{}, fmt.Errorf("invoice %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

func (s *InvoiceStore) FindAllByMerchantID(merchantID int64) []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byMerchant[merchantID]
	out := make([]core.Invoice, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

func (s *InvoiceStore) FindAllByCustomerID(customerID int64) []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byCustomer[customerID]
	out := make([]core.Invoice, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

func (s *InvoiceStore) FindAllByStatus(status core.InvoiceStatus) []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Invoice
	for _, r := range s.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (s *InvoiceStore) Create(customerID, merchantID int64, status core.InvoiceStatus, createdAt time.Time) core.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	r := core.Invoice{
		ID:         s.nextID,
		CustomerID: customerID,
		MerchantID: merchantID,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	s.append(r)
	return r
}

// InvoiceUpdate lists the mutable invoice fields; nil means unchanged.
type InvoiceUpdate struct {
	Status *core.InvoiceStatus
}

func (s *InvoiceStore) Update(id int64, u InvoiceUpdate) (core.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Invoice{}, fmt.Errorf("invoice %d: %w", id, core.ErrNotFound)
	}
	if u.Status != nil {
		if err := u.Status.Validate(); err != nil {
			return core.Invoice{}, err
		}
		s.records[pos].Status = *u.Status
	}
	s.records[pos].UpdatedAt = time.Now().UTC()
	return s.records[pos], nil
}
