package cache

import (
	"sync"
	"time"

	"github.com/smallbiznis/vitrine/internal/catalog/domain"
)

// Snapshot holds the most recently fetched catalog. It is written only by
// the catalog service after a reload; readers always receive a copy.
type Snapshot struct {
	mu       sync.RWMutex
	products []domain.Product
	loadedAt time.Time
}

func New() *Snapshot {
	return &Snapshot{}
}

// Replace swaps the whole catalog. There is no merge with the previous list.
func (s *Snapshot) Replace(products []domain.Product, at time.Time) {
	cloned := append([]domain.Product(nil), products...)
	s.mu.Lock()
	s.products = cloned
	s.loadedAt = at
	s.mu.Unlock()
}

func (s *Snapshot) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// LoadedAt is zero until the first successful reload.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Snapshot) Loaded() bool {
	return !s.LoadedAt().IsZero()
}
