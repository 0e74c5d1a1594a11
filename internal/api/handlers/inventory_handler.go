package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kafelab/coffee-lab-backend/internal/application/services"
	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
)

// InventoryHandler handles inventory HTTP requests
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AddItem handles POST /api/inventory
func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item entities.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.inventoryService.Add(r.Context(), &item)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// ListUserInventory handles GET /api/users/{id}/inventory
func (h *InventoryHandler) ListUserInventory(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	items, err := h.inventoryService.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ConsumeItem handles POST /api/inventory/{id}/consume
func (h *InventoryHandler) ConsumeItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "inventory item ID is required")
		return
	}

	var body struct {
		Grams float64 `json:"grams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.inventoryService.Consume(r.Context(), id, body.Grams)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// UpdateItemStatus handles PATCH /api/inventory/{id}/status
func (h *InventoryHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "inventory item ID is required")
		return
	}

	var body struct {
		Status entities.InventoryStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.inventoryService.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}
