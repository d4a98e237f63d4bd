// Package server wires configuration, storage, the identity gate and the
// HTTP, gRPC and metrics listeners into one process and handles graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/rest"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/todokeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	rm       repomanager.RepositoryManager
	registry *prometheus.Registry
	http     *rest.Server
	grpc     *gs.GRPCServer
}

// NewApp validates c and builds the application. Any returned error wraps
// common.ErrConfiguration or a database open failure; the process must exit.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec(c.SecretKey)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager(), codec), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, codec *auth.Codec) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewAuth(reg)

	identities := services.NewIdentityService(db, rm)
	resolver := auth.NewResolver(codec, identities, auth.Public)

	httpServer := rest.NewServer(rest.Options{
		Address:     c.EndpointAddrHTTP,
		Logger:      logger,
		Resolver:    resolver,
		Users:       services.NewUserService(db, rm, codec, c.BcryptCost, m),
		Todos:       services.NewTodoService(db, rm),
		Metrics:     m,
		CORSOrigins: c.CORSAllowedOrigins,
	})

	var grpcServer *gs.GRPCServer
	if c.EndpointAddrGRPC != "" {
		grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, resolver, m)
	}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		rm:       rm,
		registry: reg,
		http:     httpServer,
		grpc:     grpcServer,
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// listenerErr keeps the first listener failure; later ones are only logged.
type listenerErr struct {
	once sync.Once
	err  error
}

func (l *listenerErr) set(name string, err error) {
	l.once.Do(func() { l.err = fmt.Errorf("%s listener: %w", name, err) })
}

// run starts one listener. A failure is recorded and cancels the whole app.
func (app *App) run(ctx context.Context, cancelFunc context.CancelFunc, failed *listenerErr, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "listener failed", "listener", name, "error", err)
		failed.set(name, err)
		cancelFunc()
	}
}

func (app *App) runMetrics(ctx context.Context) error {
	listen, err := net.Listen("tcp", app.config.MetricsAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: metrics.Handler(app.registry), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", listen.Addr().String())
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run migrates the schema and serves until ctx is cancelled or a signal
// arrives. It returns an error if migrations fail or any listener fails to
// start or stops with an error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		failed listenerErr
	)
	start := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.run(ctx, cancelFunc, &failed, name, fn)
		}()
	}

	start("http", app.http.Run)
	if app.grpc != nil {
		start("grpc", app.grpc.Run)
	}
	if app.config.MetricsAddr != "" {
		start("metrics", app.runMetrics)
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return failed.err
}
