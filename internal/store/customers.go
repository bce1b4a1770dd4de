package store

import (
	"fmt"
	"strings"
	"sync"

	"salesengine/internal/core"
)

// CustomerStore holds customers with an id index.
type CustomerStore struct {
	mu      sync.RWMutex
	records []core.Customer
	byID    map[int64]int
}

func NewCustomerStore(records []core.Customer) *CustomerStore {
	s := &CustomerStore{byID: make(map[int64]int, len(records))}
	for _, r := range records {
		s.byID[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	return s
}

func (s *CustomerStore) All() []core.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Customer, len(s.records))
	copy(out, s.records)
	return out
}

func (s *CustomerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *CustomerStore) FindByID(id int64) (core.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byID[id]
	if !ok {
		return core.Customer{}, fmt.Errorf("customer %d: %w", id, core.ErrNotFound)
	}
	return s.records[pos], nil
}

// FindAllByLastName returns customers whose last name contains the given
// fragment, case-insensitively.
func (s *CustomerStore) FindAllByLastName(fragment string) []core.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Customer
	for _, r := range s.records {
		if containsFold(r.LastName, fragment) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s, fragment string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(fragment))
}
