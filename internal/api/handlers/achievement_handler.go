package handlers

import (
	"net/http"

	"github.com/kafelab/coffee-lab-backend/internal/application/services"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
)

// AchievementHandler handles achievement HTTP requests
type AchievementHandler struct {
	achievementService *services.AchievementService
	achievementRepo    repositories.AchievementRepository
	unlockRepo         repositories.UserAchievementRepository
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(
	achievementService *services.AchievementService,
	achievementRepo repositories.AchievementRepository,
	unlockRepo repositories.UserAchievementRepository,
) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		achievementRepo:    achievementRepo,
		unlockRepo:         unlockRepo,
	}
}

// ListAchievements handles GET /api/achievements
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.achievementRepo.ListActive(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": achievements,
		"count":        len(achievements),
	})
}

// ListUserAchievements handles GET /api/users/{id}/achievements
func (h *AchievementHandler) ListUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	unlocks, err := h.unlockRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": unlocks,
		"count":        len(unlocks),
	})
}

// CheckAchievements handles POST /api/users/{id}/achievements/check
func (h *AchievementHandler) CheckAchievements(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	newlyUnlocked, err := h.achievementService.CheckAchievements(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"new_achievements": newlyUnlocked,
		"count":            len(newlyUnlocked),
	})
}
