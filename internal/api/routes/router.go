package routes

import (
	"net/http"

	"github.com/kafelab/coffee-lab-backend/internal/api/handlers"
	"github.com/kafelab/coffee-lab-backend/internal/api/middleware"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recognitionHandler *handlers.RecognitionHandler
	coffeeHandler      *handlers.CoffeeHandler
	recordHandler      *handlers.RecordHandler
	achievementHandler *handlers.AchievementHandler
	statsHandler       *handlers.StatsHandler
	inventoryHandler   *handlers.InventoryHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recognitionHandler *handlers.RecognitionHandler,
	coffeeHandler *handlers.CoffeeHandler,
	recordHandler *handlers.RecordHandler,
	achievementHandler *handlers.AchievementHandler,
	statsHandler *handlers.StatsHandler,
	inventoryHandler *handlers.InventoryHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		recognitionHandler: recognitionHandler,
		coffeeHandler:      coffeeHandler,
		recordHandler:      recordHandler,
		achievementHandler: achievementHandler,
		statsHandler:       statsHandler,
		inventoryHandler:   inventoryHandler,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Recognition endpoints
	r.mux.HandleFunc("POST /api/recognition", r.recognitionHandler.RecognizeImage)
	r.mux.HandleFunc("GET /api/recognition/search", r.recognitionHandler.SearchByText)

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/coffees", r.coffeeHandler.ListCoffees)
	r.mux.HandleFunc("GET /api/coffees/search", r.coffeeHandler.SearchCoffees)
	r.mux.HandleFunc("GET /api/coffees/{id}", r.coffeeHandler.GetCoffee)
	r.mux.HandleFunc("POST /api/coffees", r.coffeeHandler.CreateCoffee)
	r.mux.HandleFunc("PUT /api/coffees/{id}", r.coffeeHandler.UpdateCoffee)
	r.mux.HandleFunc("GET /api/origins", r.coffeeHandler.ListOrigins)

	// Record endpoints
	r.mux.HandleFunc("POST /api/records", r.recordHandler.CreateRecord)
	r.mux.HandleFunc("GET /api/records/{id}", r.recordHandler.GetRecord)
	r.mux.HandleFunc("GET /api/users/{id}/records", r.recordHandler.ListUserRecords)

	// Achievement endpoints
	r.mux.HandleFunc("GET /api/achievements", r.achievementHandler.ListAchievements)
	r.mux.HandleFunc("GET /api/users/{id}/achievements", r.achievementHandler.ListUserAchievements)
	r.mux.HandleFunc("POST /api/users/{id}/achievements/check", r.achievementHandler.CheckAchievements)

	// Stats endpoints
	r.mux.HandleFunc("GET /api/users/{id}/stats", r.statsHandler.GetUserStats)
	r.mux.HandleFunc("GET /api/users/{id}/recommendations", r.statsHandler.GetRecommendations)
	r.mux.HandleFunc("GET /api/users/{id}/summary/{year}", r.statsHandler.GetYearlySummary)

	// Inventory endpoints
	r.mux.HandleFunc("POST /api/inventory", r.inventoryHandler.AddItem)
	r.mux.HandleFunc("GET /api/users/{id}/inventory", r.inventoryHandler.ListUserInventory)
	r.mux.HandleFunc("POST /api/inventory/{id}/consume", r.inventoryHandler.ConsumeItem)
	r.mux.HandleFunc("PATCH /api/inventory/{id}/status", r.inventoryHandler.UpdateItemStatus)

	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
