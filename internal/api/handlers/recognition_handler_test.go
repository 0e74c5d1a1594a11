package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafelab/coffee-lab-backend/internal/api/handlers"
	"github.com/kafelab/coffee-lab-backend/internal/application/services"
	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	apperrors "github.com/kafelab/coffee-lab-backend/pkg/errors"
)

type stubOCRProvider struct {
	text string
}

func (s *stubOCRProvider) Recognize(ctx context.Context, image []byte) (*providers.OCRResult, error) {
	return &providers.OCRResult{Text: s.text, Confidence: 0.9}, nil
}

type stubCoffeeRepo struct {
	coffees []*entities.CoffeeBean
}

func (s *stubCoffeeRepo) Create(ctx context.Context, c *entities.CoffeeBean) error { return nil }
func (s *stubCoffeeRepo) Update(ctx context.Context, c *entities.CoffeeBean) error { return nil }

func (s *stubCoffeeRepo) GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error) {
	for _, c := range s.coffees {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("coffee not found")
}

func (s *stubCoffeeRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.CoffeeBean, error) {
	return s.coffees, nil
}

func (s *stubCoffeeRepo) ListActive(ctx context.Context) ([]*entities.CoffeeBean, error) {
	return s.coffees, nil
}

func (s *stubCoffeeRepo) List(ctx context.Context, f repositories.CoffeeFilter) ([]*entities.CoffeeBean, error) {
	return s.coffees, nil
}

type stubOCRCacheRepo struct {
	entries map[string]*entities.OCRCacheEntry
}

func (s *stubOCRCacheRepo) GetByHash(ctx context.Context, hash string) (*entities.OCRCacheEntry, error) {
	if e, ok := s.entries[hash]; ok {
		return e, nil
	}
	return nil, apperrors.NewNotFoundError("cache entry not found")
}

func (s *stubOCRCacheRepo) Upsert(ctx context.Context, e *entities.OCRCacheEntry) error {
	s.entries[e.ImageHash] = e
	return nil
}

func newRecognitionHandler(ocrText string, coffees ...*entities.CoffeeBean) *handlers.RecognitionHandler {
	svc := services.NewRecognitionService(
		&stubOCRProvider{text: ocrText},
		&stubCoffeeRepo{coffees: coffees},
		&stubOCRCacheRepo{entries: make(map[string]*entities.OCRCacheEntry)},
		services.NewCatalogMatcherService(),
		nil,
	)
	return handlers.NewRecognitionHandler(svc)
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "label.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRecognitionHandler_RecognizeImage(t *testing.T) {
	coffee := &entities.CoffeeBean{
		ID:         "coffee-1",
		Name:       "Yirgacheffe G1",
		OriginName: "Ethiopia",
		Process:    entities.ProcessWashed,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	handler := newRecognitionHandler("Ethiopia Yirgacheffe", coffee)

	body, contentType := multipartImage(t, "image", []byte("fake-jpeg-bytes"))
	req := httptest.NewRequest("POST", "/api/recognition", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.RecognizeImage(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entities.RecognitionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, "Ethiopia Yirgacheffe", result.Text)
	assert.False(t, result.FromCache)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "coffee-1", result.Results[0].Coffee.ID)
}

func TestRecognitionHandler_RecognizeImage_MissingFile(t *testing.T) {
	handler := newRecognitionHandler("anything")

	body, contentType := multipartImage(t, "wrong_field", []byte("bytes"))
	req := httptest.NewRequest("POST", "/api/recognition", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.RecognizeImage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecognitionHandler_SearchByText(t *testing.T) {
	coffee := &entities.CoffeeBean{
		ID:       "coffee-1",
		Name:     "Nyeri AA",
		IsActive: true,
	}
	handler := newRecognitionHandler("", coffee)

	req := httptest.NewRequest("GET", "/api/recognition/search?q=nyeri", nil)
	w := httptest.NewRecorder()

	handler.SearchByText(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entities.RecognitionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Len(t, result.Results, 1)
	assert.Equal(t, "coffee-1", result.Results[0].Coffee.ID)
}

func TestRecognitionHandler_SearchByText_MissingQuery(t *testing.T) {
	handler := newRecognitionHandler("")

	req := httptest.NewRequest("GET", "/api/recognition/search", nil)
	w := httptest.NewRecorder()

	handler.SearchByText(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
