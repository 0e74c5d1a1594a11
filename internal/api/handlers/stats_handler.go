package handlers

import (
	"net/http"
	"strconv"

	"github.com/kafelab/coffee-lab-backend/internal/application/services"
)

// StatsHandler handles stats and recommendation HTTP requests
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetUserStats handles GET /api/users/{id}/stats
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	stats, err := h.statsService.UserStats(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetRecommendations handles GET /api/users/{id}/recommendations
func (h *StatsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}
	limit := parseIntParam(r.URL.Query().Get("limit"), 5)

	recommendations, err := h.statsService.Recommendations(r.Context(), userID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// GetYearlySummary handles GET /api/users/{id}/summary/{year}
func (h *StatsHandler) GetYearlySummary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid year")
		return
	}

	summary, err := h.statsService.YearlySummary(r.Context(), userID, year)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
