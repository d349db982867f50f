package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixshield/internal/models"
)

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	rec := &models.TransactionRecord{Status: models.OutcomeApproved}
	require.NoError(t, s.CreateTransaction(ctx, rec))
	require.NotEmpty(t, rec.ID)

	got, err := s.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeApproved, got.Status)

	got.Status = "mutated"
	again, _ := s.GetTransaction(ctx, rec.ID)
	assert.Equal(t, models.OutcomeApproved, again.Status)

	_, err = s.GetTransaction(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.CreateTransaction(ctx, &models.TransactionRecord{ID: rec.ID}), ErrDuplicate)
}

func TestMemoryStore_ListNewestFirstAndEvicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.CreateTransaction(ctx, &models.TransactionRecord{ID: fmt.Sprint(i)}))
	}

	n, _ := s.CountTransactions(ctx)
	assert.Equal(t, 3, n)

	items, err := s.ListTransactions(ctx, 10, 0)
	require.NoError(t, err)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"5", "4", "3"}, ids)

	items, _ = s.ListTransactions(ctx, 1, 1)
	require.Len(t, items, 1)
	assert.Equal(t, "4", items[0].ID)

	items, _ = s.ListTransactions(ctx, 5, 7)
	assert.Empty(t, items)

	_, err = s.GetTransaction(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}
