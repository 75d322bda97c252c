package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/janisto/hello-cicd/internal/config"
	applog "github.com/janisto/hello-cicd/internal/platform/logging"
	"github.com/janisto/hello-cicd/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, ".env")
	stop()
	if err != nil {
		applog.LogError(context.Background(), "server failed", err)
	}
	if syncErr := applog.Sync(); syncErr != nil {
		applog.LogError(context.Background(), "logger sync error", syncErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}

	srv := server.NewHTTPServer(cfg, server.NewRouter(cfg, Version))
	applog.LogInfo(ctx, "starting server",
		zap.String("version", Version),
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.Addr()),
	)
	return server.Run(ctx, srv, ln, cfg.ShutdownTimeout)
}
