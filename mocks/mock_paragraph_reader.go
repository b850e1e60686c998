package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockParagraphReader is a mock implementation of port.ParagraphReader.
type MockParagraphReader struct {
	mock.Mock
}

func (m *MockParagraphReader) ReadParagraphs(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockParagraphReader) ReadParagraphsFrom(ctx context.Context, r io.ReaderAt, size int64, name string) ([]string, error) {
	args := m.Called(ctx, r, size, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
