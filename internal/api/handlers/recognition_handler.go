package handlers

import (
	"io"
	"net/http"

	"github.com/kafelab/coffee-lab-backend/internal/application/services"
)

// maxImageSize bounds uploaded label photos to 10 MB
const maxImageSize = 10 << 20

// RecognitionHandler handles label recognition requests
type RecognitionHandler struct {
	recognitionService *services.RecognitionService
}

// NewRecognitionHandler creates a new recognition handler
func NewRecognitionHandler(recognitionService *services.RecognitionService) *RecognitionHandler {
	return &RecognitionHandler{recognitionService: recognitionService}
}

// RecognizeImage handles POST /api/recognition
//
// Expects a multipart form with an "image" file. Pass no_cache=true to
// bypass the recognition cache, e.g. after a catalog update.
func (h *RecognitionHandler) RecognizeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	if len(image) == 0 {
		respondWithError(w, http.StatusBadRequest, "image is empty")
		return
	}

	useCache := r.FormValue("no_cache") != "true"

	result, err := h.recognitionService.RecognizeAndSearch(r.Context(), image, useCache)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SearchByText handles GET /api/recognition/search
//
// Runs the same tokenize-and-match pipeline over a typed query instead
// of a photo.
func (h *RecognitionHandler) SearchByText(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	result, err := h.recognitionService.SearchByText(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
