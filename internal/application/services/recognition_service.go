package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

// RecognitionService orchestrates label recognition: fingerprint the
// image, consult the recognition cache, fall through to the OCR
// provider, tokenize, match against the catalog, and store the best
// match back in the cache.
type RecognitionService struct {
	ocrProvider providers.OCRProvider
	coffeeRepo  repositories.CoffeeRepository
	cacheRepo   repositories.OCRCacheRepository
	matcher     *CatalogMatcherService
	metrics     *observability.Metrics
}

// NewRecognitionService creates a new recognition service. metrics may
// be nil in tests.
func NewRecognitionService(
	ocrProvider providers.OCRProvider,
	coffeeRepo repositories.CoffeeRepository,
	cacheRepo repositories.OCRCacheRepository,
	matcher *CatalogMatcherService,
	metrics *observability.Metrics,
) *RecognitionService {
	return &RecognitionService{
		ocrProvider: ocrProvider,
		coffeeRepo:  coffeeRepo,
		cacheRepo:   cacheRepo,
		matcher:     matcher,
		metrics:     metrics,
	}
}

// Fingerprint returns the hex digest identifying an image's exact bytes
func (s *RecognitionService) Fingerprint(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// RecognizeAndSearch runs the full recognition flow for an uploaded
// image. OCR provider failures degrade to an empty result rather than
// an error; the user retakes the photo instead of seeing a 5xx. Cache
// read and write failures are logged and treated as misses.
func (s *RecognitionService) RecognizeAndSearch(ctx context.Context, image []byte, useCache bool) (*entities.RecognitionResult, error) {
	logger := observability.LoggerFromContext(ctx)

	if s.metrics != nil {
		s.metrics.RecognitionCount.Add(ctx, 1)
	}

	fingerprint := s.Fingerprint(image)

	if useCache {
		entry, err := s.cacheRepo.GetByHash(ctx, fingerprint)
		switch {
		case err == nil:
			if s.metrics != nil {
				s.metrics.RecognitionCacheHits.Add(ctx, 1)
			}
			return s.resultFromCache(ctx, entry), nil
		case !apperrors.IsNotFound(err):
			logger.Warn().Err(err).Str("image_hash", fingerprint).Msg("recognition cache read failed, treating as miss")
		}
		if s.metrics != nil {
			s.metrics.RecognitionCacheMiss.Add(ctx, 1)
		}
	}

	ocrResult, err := s.ocrProvider.Recognize(ctx, image)
	if err != nil {
		logger.Warn().Err(err).Msg("OCR recognition failed, returning empty result")
		return emptyRecognitionResult(), nil
	}
	if ocrResult.Text == "" {
		return emptyRecognitionResult(), nil
	}

	keywords := Tokenize(ocrResult.Text)
	result := &entities.RecognitionResult{
		Text:     ocrResult.Text,
		Keywords: keywords,
		Results:  []entities.MatchCandidate{},
	}
	if len(keywords) == 0 {
		return result, nil
	}

	catalog, err := s.coffeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matches := s.matcher.Match(keywords, catalog)
	if matches != nil {
		result.Results = matches
	}

	if len(matches) > 0 {
		best := matches[0]
		entry := &entities.OCRCacheEntry{
			ID:             uuid.New().String(),
			ImageHash:      fingerprint,
			RecognizedText: ocrResult.Text,
			MatchedCoffee:  &best.Coffee.ID,
			Confidence:     best.Confidence,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.cacheRepo.Upsert(ctx, entry); err != nil {
			logger.Warn().Err(err).Str("image_hash", fingerprint).Msg("recognition cache write failed")
		}
	}

	return result, nil
}

// SearchByText runs tokenize-and-match over a typed query, the same
// pipeline as image recognition minus the OCR step
func (s *RecognitionService) SearchByText(ctx context.Context, query string) (*entities.RecognitionResult, error) {
	keywords := Tokenize(query)
	result := &entities.RecognitionResult{
		Text:     query,
		Keywords: keywords,
		Results:  []entities.MatchCandidate{},
	}
	if len(keywords) == 0 {
		return result, nil
	}

	catalog, err := s.coffeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if matches := s.matcher.Match(keywords, catalog); matches != nil {
		result.Results = matches
	}
	return result, nil
}

// resultFromCache reconstructs a result from a cache entry. The cached
// coffee may have been deactivated or deleted since the entry was
// written; in that case the hit still serves, with no candidates.
func (s *RecognitionService) resultFromCache(ctx context.Context, entry *entities.OCRCacheEntry) *entities.RecognitionResult {
	result := &entities.RecognitionResult{
		Text:      entry.RecognizedText,
		Keywords:  Tokenize(entry.RecognizedText),
		Results:   []entities.MatchCandidate{},
		FromCache: true,
	}

	if entry.MatchedCoffee == nil {
		return result
	}

	coffee, err := s.coffeeRepo.GetByID(ctx, *entry.MatchedCoffee)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("coffee_id", *entry.MatchedCoffee).
				Msg("failed to load cached match")
		}
		return result
	}

	result.Results = append(result.Results, entities.MatchCandidate{
		Coffee:          coffee,
		Confidence:      entry.Confidence,
		MatchedKeywords: []string{},
	})
	return result
}

func emptyRecognitionResult() *entities.RecognitionResult {
	return &entities.RecognitionResult{
		Keywords: []string{},
		Results:  []entities.MatchCandidate{},
	}
}
