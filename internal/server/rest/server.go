// Package rest is the HTTP transport: a gin engine with request logging,
// CORS and the identity gate in front of the user and todo handlers.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	resolver *auth.Resolver
	users    *services.UserService
	todos    *services.TodoService
	metrics  *metrics.Auth
	origins  []string
	engine   *gin.Engine
}

type Options struct {
	Address     string
	Logger      logging.Logger
	Resolver    *auth.Resolver
	Users       *services.UserService
	Todos       *services.TodoService
	Metrics     *metrics.Auth
	CORSOrigins []string
}

func NewServer(o Options) *Server {
	s := &Server{
		address:  o.Address,
		logger:   o.Logger.With("module", "http_server"),
		resolver: o.Resolver,
		users:    o.Users,
		todos:    o.Todos,
		metrics:  o.Metrics,
		origins:  o.CORSOrigins,
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the engine, for tests and for embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
