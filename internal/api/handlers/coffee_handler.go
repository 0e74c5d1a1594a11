package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kafelab/coffee-lab-backend/internal/application/services"
	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
)

// CoffeeHandler handles catalog HTTP requests
type CoffeeHandler struct {
	coffeeService *services.CoffeeService
}

// NewCoffeeHandler creates a new coffee handler
func NewCoffeeHandler(coffeeService *services.CoffeeService) *CoffeeHandler {
	return &CoffeeHandler{coffeeService: coffeeService}
}

// ListCoffees handles GET /api/coffees
func (h *CoffeeHandler) ListCoffees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.CoffeeFilter{
		Search:   query.Get("search"),
		OriginID: query.Get("origin_id"),
		Variety:  query.Get("variety"),
		Process:  entities.Process(query.Get("process")),
		Limit:    parseIntParam(query.Get("limit"), 30),
		Offset:   parseIntParam(query.Get("offset"), 0),
	}

	coffees, err := h.coffeeService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coffees": coffees,
		"count":   len(coffees),
	})
}

// GetCoffee handles GET /api/coffees/{id}
func (h *CoffeeHandler) GetCoffee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "coffee ID is required")
		return
	}

	coffee, err := h.coffeeService.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, coffee)
}

// CreateCoffee handles POST /api/coffees
func (h *CoffeeHandler) CreateCoffee(w http.ResponseWriter, r *http.Request) {
	var coffee entities.CoffeeBean
	if err := json.NewDecoder(r.Body).Decode(&coffee); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.coffeeService.Create(r.Context(), &coffee)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// UpdateCoffee handles PUT /api/coffees/{id}
func (h *CoffeeHandler) UpdateCoffee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "coffee ID is required")
		return
	}

	var coffee entities.CoffeeBean
	if err := json.NewDecoder(r.Body).Decode(&coffee); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	coffee.ID = id

	if err := h.coffeeService.Update(r.Context(), &coffee); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, coffee)
}

// SearchCoffees handles GET /api/coffees/search via the free-text index
func (h *CoffeeHandler) SearchCoffees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	limit := parseIntParam(r.URL.Query().Get("limit"), 20)

	coffees, err := h.coffeeService.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coffees": coffees,
		"count":   len(coffees),
	})
}

// ListOrigins handles GET /api/origins
func (h *CoffeeHandler) ListOrigins(w http.ResponseWriter, r *http.Request) {
	origins, err := h.coffeeService.ListOrigins(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"origins": origins,
		"count":   len(origins),
	})
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
