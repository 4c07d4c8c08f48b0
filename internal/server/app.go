// Package server wires the PlantGuard backend together: database and
// migrations, services, the gRPC API, the metrics endpoint and background
// token cleanup.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/dmitrijs2005/plantguard/internal/server/config"
	"github.com/dmitrijs2005/plantguard/internal/server/images"
	"github.com/dmitrijs2005/plantguard/internal/server/metrics"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/plantguard/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/plantguard/internal/server/grpc"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests.
var openDB = sql.Open

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	users    *services.UserService
	catalog  *services.CatalogService
	analyses *services.AnalysisService
	registry *prometheus.Registry
	metrics  *metrics.RPCMetrics
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LoggerBackend)
	if err != nil {
		return nil, err
	}

	db, err := openDB("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	var store images.Store
	if c.S3Enabled() {
		store = images.NewS3Store(images.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	} else {
		logger.Warn(context.Background(), "S3 is not configured, image uploads are disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m, err := metrics.NewRPCMetrics(registry)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		repos:    rm,
		users:    services.NewUserService(db, rm, c),
		catalog:  services.NewCatalogService(db, rm, c.CatalogCacheTTL),
		analyses: services.NewAnalysisService(db, rm, store, logger),
		registry: registry,
		metrics:  m,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run applies migrations and serves until ctx is cancelled, a signal
// arrives or one of the components fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.catalog, app.analyses,
		app.metrics, app.config.SecretKey)
	httpServer := metrics.NewHTTPServer(app.config.MetricsAddr, metrics.NewRouter(app.registry, app.db.PingContext), app.logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return grpcServer.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })
	g.Go(func() error {
		return runTokenCleaner(ctx, app.users, app.config.TokenCleanupInterval, app.logger.With("module", "token_cleaner"))
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}
	return err
}
