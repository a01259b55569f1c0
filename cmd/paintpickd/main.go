package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paintpick/internal/colorsvc"
	"paintpick/internal/config"
)

func main() {
	var (
		configPath string
		addr       string
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := colorsvc.NewLogger(os.Stdout, level)

	configSvc := config.NewConfigServiceAt(configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Error("loading config", "path", configSvc.Path(), "err", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	srv := colorsvc.New(cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}
}
