package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"dealsheet/pkg/models"
)

// ErrDealNotFound is returned when no deal exists for the requested ID.
var ErrDealNotFound = errors.New("deal not found")

// MemoryStore is a process-local Storage implementation. Deals live only
// for the lifetime of the process; nothing is written to disk.
type MemoryStore struct {
	mu    sync.RWMutex
	deals map[uuid.UUID]*models.Deal
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{deals: make(map[uuid.UUID]*models.Deal)}
}

// SaveDeal inserts or replaces a deal by its ID.
func (m *MemoryStore) SaveDeal(deal *models.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deals[deal.ID] = deal
	return nil
}

// GetDeal retrieves a deal by its ID.
func (m *MemoryStore) GetDeal(id uuid.UUID) (*models.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	deal, ok := m.deals[id]
	if !ok {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

// ListDeals returns all stored deals ordered by creation time.
func (m *MemoryStore) ListDeals() ([]*models.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	deals := make([]*models.Deal, 0, len(m.deals))
	for _, d := range m.deals {
		deals = append(deals, d)
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].CreatedAt.Before(deals[j].CreatedAt)
	})
	return deals, nil
}

// DeleteDeal removes a deal by its ID.
func (m *MemoryStore) DeleteDeal(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deals[id]; !ok {
		return ErrDealNotFound
	}
	delete(m.deals, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
