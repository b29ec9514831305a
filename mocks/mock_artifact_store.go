package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockArtifactStore is a mock implementation of port.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) SaveOriginal(ctx context.Context, externalID string, data []byte) (string, error) {
	args := m.Called(ctx, externalID, data)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) HasOriginal(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtifactStore) SaveArchive(ctx context.Context, documentID int, data []byte) (string, error) {
	args := m.Called(ctx, documentID, data)
	return args.String(0), args.Error(1)
}
