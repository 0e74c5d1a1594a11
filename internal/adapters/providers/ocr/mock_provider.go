package ocr

import (
	"context"

	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
)

// MockOCRProvider implements a mock OCR provider for development and
// testing. It returns a fixed plausible bag label.
type MockOCRProvider struct {
	Text       string
	Confidence float64
}

// NewMockOCRProvider creates a new mock OCR provider
func NewMockOCRProvider() *MockOCRProvider {
	return &MockOCRProvider{
		Text:       "Ethiopia Yirgacheffe Washed G1 floral citrus bergamot 1900-2100m",
		Confidence: 0.9,
	}
}

// Recognize returns the configured canned result
func (m *MockOCRProvider) Recognize(ctx context.Context, image []byte) (*providers.OCRResult, error) {
	return &providers.OCRResult{
		Text:       m.Text,
		Confidence: m.Confidence,
	}, nil
}
