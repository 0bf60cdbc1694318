// Package api serves the revenue intelligence HTTP API over the generated
// traffic dataset.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gotraffic/adapters/llm"
	"gotraffic/internal/config"
	"gotraffic/internal/dataset"
)

// App represents the API application
type App struct {
	router *chi.Mux
	loader *dataset.Loader
	chat   llm.Client
	cfg    *config.Config
}

// NewApp creates a new API application
func NewApp(cfg *config.Config, loader *dataset.Loader, chat llm.Client) *App {
	app := &App{
		router: chi.NewRouter(),
		loader: loader,
		chat:   chat,
		cfg:    cfg,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleHealth)
	a.router.Get("/health", a.handleHealth)
	a.router.Get("/api/pipeline/status", a.handlePipelineStatus)

	a.router.Get("/api/data/stations", a.handleStations)
	a.router.Get("/api/data/revenue-by-daypart", a.handleRevenueByDaypart)
	a.router.Get("/api/data/aur-trends", a.handleAURTrends)
	a.router.Get("/api/data/top-advertisers", a.handleTopAdvertisers)
	a.router.Get("/api/data/sellout-rates", a.handleSelloutRates)
	a.router.Get("/api/data/makegood-summary", a.handleMakegoodSummary)

	a.router.Get("/api/report", a.handleReport)
	a.router.Post("/chat", a.handleChat)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
