package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pixshield/internal/models"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Analyze(ctx context.Context, req models.TransactionRequest) (*models.Analysis, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

func (m *mockBackend) GeneratePix(ctx context.Context, req models.PixRequest) (*models.PixResponse, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.PixResponse)
	return p, args.Error(1)
}
