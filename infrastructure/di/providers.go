package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"datacloud/application/commands"
	"datacloud/application/commands/bus"
	commandhandlers "datacloud/application/commands/handlers"
	"datacloud/application/ports"
	"datacloud/application/queries"
	querybus "datacloud/application/queries/bus"
	queryhandlers "datacloud/application/queries/handlers"
	"datacloud/infrastructure/config"
	"datacloud/infrastructure/persistence/memory"
	"datacloud/infrastructure/persistence/mongodb"
	"datacloud/pkg/auth"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
	"datacloud/visualization/layout"
)

// Container holds all application dependencies.
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	EntryRepo      ports.EntryRepository
	Diagram        *diagram.Diagram
	Exporter       *export.Exporter
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	TokenValidator *auth.TokenValidator
	RateLimiter    auth.RateLimiter
}

// ProvideLogger creates the service logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideEntryRepository selects the persistence backend: MongoDB when a
// connection string is configured, process memory otherwise.
func ProvideEntryRepository(cfg *config.Config, logger *zap.Logger) ports.EntryRepository {
	if cfg.MongoURI == "" {
		logger.Warn("MONGODB_URI not set, using in-memory repository")
		return memory.NewEntryRepository()
	}
	connector := mongodb.NewConnector(cfg.MongoURI, cfg.MongoDatabase, logger)
	return mongodb.NewEntryRepository(connector, logger)
}

// ProvideDiagram creates the shared graph-cloud diagram.
func ProvideDiagram(cfg *config.Config, logger *zap.Logger) *diagram.Diagram {
	layoutCfg := layout.DefaultConfig()
	layoutCfg.Width = float64(cfg.GraphWidth)
	layoutCfg.Height = float64(cfg.GraphHeight)
	return diagram.New(layoutCfg, logger)
}

// ProvideExporter creates the diagram exporter.
func ProvideExporter(d *diagram.Diagram, logger *zap.Logger) *export.Exporter {
	return export.New(d, logger)
}

// ProvideCommandBus creates the command bus with every handler
// registered.
func ProvideCommandBus(repo ports.EntryRepository, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	logging := bus.LoggingMiddleware(logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{&commands.AddEntryCommand{}, commandhandlers.NewAddEntryHandler(repo, logger)},
		{&commands.DeleteEntryCommand{}, commandhandlers.NewDeleteEntryHandler(repo, logger)},
		{&commands.LinkEntriesCommand{}, commandhandlers.NewLinkEntriesHandler(repo, logger)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, logging(reg.handler)); err != nil {
			return nil, fmt.Errorf("registering command handler: %w", err)
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with every handler registered.
func ProvideQueryBus(repo ports.EntryRepository, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetGraphDataQuery{}, queryhandlers.NewGetGraphDataHandler(repo, logger)},
		{queries.SearchEntriesQuery{}, queryhandlers.NewSearchEntriesHandler(repo, logger)},
		{queries.GetDashboardQuery{}, queryhandlers.NewGetDashboardHandler(repo, logger)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, fmt.Errorf("registering query handler: %w", err)
		}
	}
	return queryBus, nil
}

// ProvideTokenValidator creates the bearer-token validator, or nil when
// no secret is configured and write endpoints stay open.
func ProvideTokenValidator(cfg *config.Config, logger *zap.Logger) (*auth.TokenValidator, error) {
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, write endpoints are unauthenticated")
		return nil, nil
	}
	return auth.NewTokenValidator(cfg.JWTSecret, cfg.JWTIssuer)
}

// ProvideRateLimiter creates the per-IP request limiter.
func ProvideRateLimiter(cfg *config.Config) auth.RateLimiter {
	refill := time.Minute / time.Duration(cfg.RateLimitPerMinute)
	return auth.NewTokenBucketLimiter(cfg.RateLimitPerMinute, refill)
}
