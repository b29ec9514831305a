package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperbridge/internal/domain"
)

// MockIngestionAuditRepo is a mock implementation of port.IngestionAuditRepo.
type MockIngestionAuditRepo struct {
	mock.Mock
}

func (m *MockIngestionAuditRepo) Record(ctx context.Context, rec *domain.IngestionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockIngestionAuditRepo) List(ctx context.Context, offset, limit int) ([]domain.IngestionRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IngestionRecord), args.Int(1), args.Error(2)
}

func (m *MockIngestionAuditRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
