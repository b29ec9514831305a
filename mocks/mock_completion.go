package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperbridge/internal/port"
)

// MockCompletion is a mock implementation of port.Completion.
type MockCompletion struct {
	mock.Mock
}

func (m *MockCompletion) Suggest(ctx context.Context, text string) (*port.SuggestOutput, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SuggestOutput), args.Error(1)
}
