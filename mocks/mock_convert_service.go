package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docvert/internal/domain"
	"docvert/internal/service"
)

// MockConvertService is a mock implementation of service.ConvertService.
type MockConvertService struct {
	mock.Mock
}

func (m *MockConvertService) ConvertParagraphs(source string, paras []string) *domain.ConversionResult {
	args := m.Called(source, paras)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ConversionResult)
}

func (m *MockConvertService) ConvertUpload(ctx context.Context, input service.UploadInput) (*domain.ConversionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConvertService) ConvertFile(ctx context.Context, inputPath, outputPath string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, inputPath, outputPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConvertService) ConvertFolder(ctx context.Context, inputDir, outputDir string) (*domain.BatchResult, error) {
	args := m.Called(ctx, inputDir, outputDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockConvertService) MarshalResult(res *domain.ConversionResult) ([]byte, error) {
	args := m.Called(res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
