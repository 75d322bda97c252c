// Package server assembles the HTTP router and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-cicd/internal/config"
	"github.com/janisto/hello-cicd/internal/http/health"
	"github.com/janisto/hello-cicd/internal/http/v1/routes"
	"github.com/janisto/hello-cicd/internal/platform/apiconfig"
	applog "github.com/janisto/hello-cicd/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-cicd/internal/platform/middleware"
	"github.com/janisto/hello-cicd/internal/platform/respond"
)

const maxRequestBodyBytes = 1 << 20

// NewRouter builds the full handler: middleware stack, health probe and API routes.
func NewRouter(cfg config.Config, version string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(apiconfig.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Only safe behind a
		// reverse proxy that overwrites them (Cloud Run, nginx).
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBodyBytes),
		applog.RequestLogger(cfg.ProjectID),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(version))

	api := humachi.New(router, apiconfig.New(version))
	routes.Register(api)

	return router
}

// NewHTTPServer wraps handler in an http.Server with conservative timeouts.
func NewHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// Run serves srv on ln until ctx is cancelled, then shuts down and waits up to
// shutdownTimeout for in-flight requests. A failure to serve is returned as is.
func Run(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()))
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil {
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	}
	applog.LogInfo(shutdownCtx, "server exited")
	return nil
}
