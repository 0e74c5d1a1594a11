package ocr

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/pkg/config"
)

// NewProvider creates the OCR provider selected by configuration.
// Unknown provider names fall back to the mock so a misconfigured
// environment still serves requests (with canned recognition).
func NewProvider(ctx context.Context, cfg *config.OCRConfig) (providers.OCRProvider, error) {
	switch cfg.Provider {
	case "google":
		return NewGoogleVisionProvider(ctx, cfg)
	case "mock":
		return NewMockOCRProvider(), nil
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("unknown OCR provider, using mock")
		return NewMockOCRProvider(), nil
	}
}
