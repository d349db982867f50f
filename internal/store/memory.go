package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pixshield/internal/models"
)

// DefaultCapacity bounds the in-memory history.
const DefaultCapacity = 500

// MemoryStore is a bounded in-memory TransactionStore. When full, the oldest
// record is evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string // oldest first
	byID     map[string]*models.TransactionRecord
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		byID:     make(map[string]*models.TransactionRecord),
	}
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx *models.TransactionRecord) error {
	if tx == nil {
		return fmt.Errorf("create transaction: nil record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if _, ok := s.byID[tx.ID]; ok {
		return fmt.Errorf("create transaction %s: %w", tx.ID, ErrDuplicate)
	}
	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, oldest)
	}
	rec := *tx
	s.byID[tx.ID] = &rec
	s.order = append(s.order, tx.ID)
	return nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, id string) (*models.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	out := *rec
	return &out, nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, limit, offset int) ([]*models.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*models.TransactionRecord{}, nil
	}
	items := make([]*models.TransactionRecord, 0, limit)
	for i := len(s.order) - 1 - offset; i >= 0 && len(items) < limit; i-- {
		rec := *s.byID[s.order[i]]
		items = append(items, &rec)
	}
	return items, nil
}

func (s *MemoryStore) CountTransactions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}
