package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperbridge/internal/domain"
)

// MockDocumentService is a mock implementation of port.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) FetchSource(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentService) UploadDocument(ctx context.Context, token, filename string, data []byte) (string, error) {
	args := m.Called(ctx, token, filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) GetTask(ctx context.Context, token, taskID string) (*domain.IngestionTask, error) {
	args := m.Called(ctx, token, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionTask), args.Error(1)
}

func (m *MockDocumentService) DownloadDocument(ctx context.Context, token string, documentID int, original bool) ([]byte, error) {
	args := m.Called(ctx, token, documentID, original)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
