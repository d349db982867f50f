package store

import (
	"context"

	"pixshield/internal/models"
)

// --- Transaction Store ---

// TransactionStore keeps the outcome of every PIX send that reached the
// analysis backend.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx *models.TransactionRecord) error
	GetTransaction(ctx context.Context, id string) (*models.TransactionRecord, error)
	// ListTransactions returns the newest records first.
	ListTransactions(ctx context.Context, limit, offset int) ([]*models.TransactionRecord, error)
	CountTransactions(ctx context.Context) (int, error)
}
