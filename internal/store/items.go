package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"salesengine/internal/core"
)

// ItemStore holds items with an id index and a merchant_id secondary
// index, so per-merchant lookups avoid a full scan.
type ItemStore struct {
	mu         sync.RWMutex
	records    []core.Item
	byID       map[int64]int
	byMerchant map[int64][]int
	nextID     int64
}

func NewItemStore(records []core.Item) *ItemStore {
	s := &ItemStore{
		byID:       make(map[int64]int, len(records)),
		byMerchant: make(map[int64][]int),
		nextID:     1,
	}
	for _, r := range records {
		s.append(r)
	}
	return s
}

func (s *ItemStore) append(r core.Item) {
	pos := len(s.records)
	s.byID[r.ID] = pos
	s.byMerchant[r.MerchantID] = append(s.byMerchant[r.MerchantID], pos)
	s.records = append(s.records, r)
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}

func (s *ItemStore) All() []core.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Item, len(s.records))
	copy(out, s.records)
	return out
}

func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *ItemStore) FindByID(id int64) (core.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Item{}, fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

// FindAllByMerchantID returns the merchant's items in insertion order.
func (s *ItemStore) FindAllByMerchantID(merchantID int64) []core.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.byMerchant[merchantID]
	out := make([]core.Item, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.records[pos])
	}
	return out
}

// FindAllWithDescription returns items whose description contains the
// given fragment, case-insensitively.
func (s *ItemStore) FindAllWithDescription(fragment string) []core.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Item
	for _, r := range s.records {
		if containsFold(r.Description, fragment) {
			out = append(out, r)
		}
	}
	return out
}

func (s *ItemStore) FindAllByPrice(price decimal.Decimal) []core.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Item
	for _, r := range s.records {
		if r.UnitPrice.Equal(price) {
			out = append(out, r)
		}
	}
	return out
}

// FindAllByPriceInRange returns items priced within [min, max] inclusive.
func (s *ItemStore) FindAllByPriceInRange(min, max decimal.Decimal) []core.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Item
	for _, r := range s.records {
		if r.UnitPrice.GreaterThanOrEqual(min) && r.UnitPrice.LessThanOrEqual(max) {
			out = append(out, r)
		}
	}
	return out
}

func (s *ItemStore) Create(name, description string, unitPrice decimal.Decimal, merchantID int64) core.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	r := core.Item{
		ID:          s.nextID,
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		MerchantID:  merchantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.append(r)
	return r
}

// ItemUpdate lists the mutable item fields; nil means unchanged. The
// merchant foreign key is immutable, which keeps the secondary index valid.
type ItemUpdate struct {
	Name        *string
	Description *string
	UnitPrice   *decimal.Decimal
}

func (s *ItemStore) Update(id int64, u ItemUpdate) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Item{}, fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	if u.Name != nil {
		s.records[pos].Name = *u.Name
	}
	if u.Description != nil {
		s.records[pos].Description = *u.Description
	}
	if u.UnitPrice != nil {
		s.records[pos].UnitPrice = *u.UnitPrice
	}
	s.records[pos].UpdatedAt = time.Now().UTC()
	return s.records[pos], nil
}
