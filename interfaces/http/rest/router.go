// Package rest wires the HTTP surface of the catalog: the JSON API, the
// export endpoints, and the server-rendered pages.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"datacloud/application/commands/bus"
	"datacloud/application/ports"
	querybus "datacloud/application/queries/bus"
	"datacloud/infrastructure/config"
	"datacloud/interfaces/http/rest/handlers"
	"datacloud/interfaces/http/rest/middleware"
	"datacloud/interfaces/http/web"
	"datacloud/pkg/auth"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
)

// Router creates and configures the HTTP router.
type Router struct {
	config     *config.Config
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	repo       ports.EntryRepository
	diagram    *diagram.Diagram
	exporter   *export.Exporter
	validator  *auth.TokenValidator
	limiter    auth.RateLimiter
	logger     *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	repo ports.EntryRepository,
	d *diagram.Diagram,
	exporter *export.Exporter,
	validator *auth.TokenValidator,
	limiter auth.RateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		config:     cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		repo:       repo,
		diagram:    d,
		exporter:   exporter,
		validator:  validator,
		limiter:    limiter,
		logger:     logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		graphHandler := handlers.NewGraphHandler(rt.queryBus, rt.repo, rt.diagram, rt.logger)
		r.Get("/graph-data", graphHandler.GetGraphData)
		r.Route("/graph", func(r chi.Router) {
			r.Get("/nodes/{nodeID}/neighbors", graphHandler.HighlightNode)
			r.Get("/nodes/{nodeID}/open", graphHandler.OpenNode)
			r.Delete("/highlight", graphHandler.ClearHighlight)
		})

		r.Get("/search", handlers.NewSearchHandler(rt.queryBus, rt.logger).SearchDatasets)
		r.Get("/dashboard", handlers.NewDashboardHandler(rt.queryBus, rt.logger).GetDashboard)

		exportHandler := handlers.NewExportHandler(rt.repo, rt.diagram, rt.exporter, rt.logger)
		r.Route("/graph/export", func(r chi.Router) {
			r.Get("/svg", exportHandler.ExportSVG)
			r.Get("/png", exportHandler.ExportPNG)
			r.Get("/pdf", exportHandler.ExportPDF)
		})

		// Mutations require a token in production; without a configured
		// secret the middleware passes a development user through.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.limiter, rt.logger))

			datasetHandler := handlers.NewDatasetHandler(rt.commandBus, rt.logger)
			r.Post("/datasets", datasetHandler.CreateDataset)
			r.Delete("/datasets/{datasetID}", datasetHandler.DeleteDataset)
			r.Post("/links", datasetHandler.CreateLink)
		})
	})

	pages := web.NewPages(rt.repo, rt.diagram, rt.exporter, rt.commandBus, rt.queryBus, rt.logger)
	router.Get("/", pages.Cloud)
	router.Get("/fairness", pages.Fairness)
	router.Get("/add-dataset", pages.AddDataset)
	router.Post("/add-dataset", pages.SubmitDataset)
	router.Get("/search", pages.Search)
	router.Get("/dashboard", pages.Dashboard)
	router.Get("/about", pages.About)

	// Unknown paths land on the cloud, matching how the catalog treats
	// every stray URL as a request for the main view.
	router.NotFound(pages.Cloud)

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports whether the catalog can serve a snapshot.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if _, err := rt.repo.Snapshot(req.Context()); err != nil {
		rt.logger.Warn("readiness check failed", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
