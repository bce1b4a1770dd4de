package store

import (
	"fmt"
	"sync"
	"time"

	"salesengine/internal/core"
)

// MerchantStore is an append-friendly in-memory collection of merchants
// with an id index. Records are returned by value; callers never see the
// backing slice.
type MerchantStore struct {
	mu      sync.RWMutex
	records []core.Merchant
	byID    map[int64]int
	nextID  int64
}

func NewMerchantStore(records []core.Merchant) *MerchantStore {
	s := &MerchantStore{byID: make(map[int64]int, len(records)), nextID: 1}
	for _, r := range records {
		s.append(r)
	}
	return s
}

func (s *MerchantStore) append(r core.Merchant) {
	s.byID[r.ID] = len(s.records)
	s.records = append(s.records, r)
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}

// All returns the full collection in insertion order.
func (s *MerchantStore) All() []core.Merchant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Merchant, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MerchantStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MerchantStore) FindByID(id int64) (core.Merchant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Merchant{}, fmt.Errorf("merchant %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

// FindAllByName returns merchants whose name contains the given fragment,
// case-insensitively.
func (s *MerchantStore) FindAllByName(fragment string) []core.Merchant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Merchant
	for _, r := range s.records {
		if containsFold(r.Name, fragment) {
			out = append(out, r)
		}
	}
	return out
}

// Create appends a new merchant, assigning the next unused id.
func (s *MerchantStore) Create(name string, createdAt time.Time) core.Merchant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	r := core.Merchant{ID: s.nextID, Name: name, CreatedAt: createdAt, UpdatedAt: createdAt}
	s.append(r)
	return r
}

// MerchantUpdate lists the mutable merchant fields; nil means unchanged.
type MerchantUpdate struct {
	Name *string
}

func (s *MerchantStore) Update(id int64, u MerchantUpdate) (core.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Merchant{}, fmt.Errorf("merchant %d: %w", id, core.ErrNotFound)
	}
	if u.Name != nil {
		s.records[pos].Name = *u.Name
	}
	s.records[pos].UpdatedAt = time.Now().UTC()
	return s.records[pos], nil
}
