package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"salesengine/internal/core"
)

// InvoiceItemStore holds invoice line items with id, invoice_id, and
// item_id indexes.
type InvoiceItemStore struct {
	mu        sync.RWMutex
	records   []core.InvoiceItem
	byID      map[int64]int
	byInvoice map[int64][]int
	byItem    map[int64][]int
	nextID    int64
}

func NewInvoiceItemStore(records []core.InvoiceItem) *InvoiceItemStore {
	s := &InvoiceItemStore{
		byID:      make(map[int64]int, len(records)),
		byInvoice: make(map[int64][]int),
		byItem:    make(map[int64][]int),
		nextID:    1,
	}
	for _, r := range records {
		s.append(r)
	}
	return s
}

func (s *InvoiceItemStore) append(r core.InvoiceItem) {
	pos := len(s.records)
	s.byID[r.ID] = pos
	s.byInvoice[r.InvoiceID] = append(s.byInvoice[r.InvoiceID], pos)
	s.byItem[r.ItemID] = append(s.byItem[r.ItemID], pos)
	s.records = append(s.records, r)
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}

func (s *InvoiceItemStore) All() []core.InvoiceItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.InvoiceItem, len(s.records))
	copy(out, s.records)
	return out
}

func (s *InvoiceItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *InvoiceItemStore) FindByID(id int64) (core.InvoiceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.InvoiceItem{}, fmt.Errorf("invoice item %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

func (s *InvoiceItemStore) FindAllByInvoiceID(invoiceID int64) []core.InvoiceItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byInvoice[invoiceID]
	out := make([]core.InvoiceItem, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

func (s *InvoiceItemStore) FindAllByItemID(itemID int64) []core.InvoiceItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byItem[itemID]
	out := make([]core.InvoiceItem, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

func (s *InvoiceItemStore) Create(itemID, invoiceID, quantity int64, unitPrice decimal.Decimal) core.InvoiceItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	r := core.InvoiceItem{
		ID:        s.nextID,
		ItemID:    itemID,
		InvoiceID: invoiceID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.append(r)
	return r
}

// InvoiceItemUpdate lists the mutable line-item fields; nil means unchanged.
type InvoiceItemUpdate struct {
	Quantity  *int64
	UnitPrice *decimal.Decimal
}

func (s *InvoiceItemStore) Update(id int64, u InvoiceItemUpdate) (core.InvoiceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.InvoiceItem{}, fmt.Errorf("invoice item %d: %w", id, core.ErrNotFound)
	}
	if u.Quantity != nil {
		s.records[pos].Quantity = *u.Quantity
	}
	if u.UnitPrice != nil {
		s.records[pos].UnitPrice = *u.UnitPrice
	}
	s.records[pos].UpdatedAt = time.Now().UTC()
	return s.records[pos], nil
}
