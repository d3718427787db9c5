// Package main is the entry point for the color descriptor server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nm3210/colordescriptors-go/internal/api"
	"github.com/nm3210/colordescriptors-go/internal/config"
	"github.com/nm3210/colordescriptors-go/internal/database"
	"github.com/nm3210/colordescriptors-go/internal/database/repositories"
	"github.com/nm3210/colordescriptors-go/internal/logger"
	"github.com/nm3210/colordescriptors-go/internal/services/palette"
	"github.com/nm3210/colordescriptors-go/internal/services/preview"
	"github.com/nm3210/colordescriptors-go/internal/services/pubsub"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load .env file if present
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Level:         cfg.LogLevel,
		HumanReadable: cfg.HumanReadableLogs(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log configuration: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		log.Debug("no .env file found, using environment variables")
	}

	printBanner(os.Stdout, cfg)

	if err := run(cfg, log); err != nil {
		log.Error(err, "server failed")
		os.Exit(1)
	}
}

// services holds everything the router needs.
type services struct {
	palette *palette.Service
	preview *preview.Service
}

// setup connects the database, seeds presets and builds the services.
func setup(ctx context.Context, cfg *config.Config, log *logger.Logger) (*services, error) {
	db, err := database.Connect(database.Config{
		URL:         cfg.DatabaseURL,
		MaxIdleConn: 5,
		MaxOpenConn: 10,
		Debug:       cfg.IsDevelopment() && cfg.LogLevel == "debug",
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	ps := pubsub.New()
	paletteService := palette.NewService(repositories.NewPresetRepository(db), ps, log, cfg.DefaultInterpolation)

	if cfg.PresetFile != "" {
		file, err := config.LoadPresetFile(cfg.PresetFile)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		if _, _, err := paletteService.Seed(ctx, file); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to seed presets: %w", err)
		}
	}

	return &services{
		palette: paletteService,
		preview: preview.NewService(ps, cfg.PreviewFrameInterval, cfg.PreviewBufferSize, log),
	}, nil
}

func newRouter(cfg *config.Config, svc *services, log *logger.Logger) http.Handler {
	return api.NewRouter(api.Options{
		Palette:           svc.palette,
		Preview:           svc.preview,
		Logger:            log,
		MaxGradientColors: cfg.MaxGradientColors,
		Version:           Version,
		CORSOrigins:       []string{cfg.CORSOrigin},
		Debug:             cfg.IsDevelopment() && cfg.LogLevel == "debug",
	})
}

func run(cfg *config.Config, log *logger.Logger) error {
	svc, err := setup(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, svc, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.With("addr", "http://localhost:"+cfg.Port).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	log.Info("shutting down server")

	svc.preview.Shutdown()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// printBanner prints the startup banner.
func printBanner(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "============================================")
	_, _ = fmt.Fprintln(w, "  Color Descriptor Server")
	_, _ = fmt.Fprintf(w, "  Version: %s\n", Version)
	_, _ = fmt.Fprintf(w, "  Build:   %s\n", BuildTime)
	_, _ = fmt.Fprintf(w, "  Commit:  %s\n", GitCommit)
	_, _ = fmt.Fprintln(w, "============================================")
	_, _ = fmt.Fprintf(w, "  Environment:   %s\n", cfg.Env)
	_, _ = fmt.Fprintf(w, "  Port:          %s\n", cfg.Port)
	_, _ = fmt.Fprintf(w, "  Database:      %s\n", cfg.DatabaseURL)
	_, _ = fmt.Fprintf(w, "  Interpolation: %s\n", cfg.DefaultInterpolation)
	_, _ = fmt.Fprintf(w, "  Frame rate:    %v\n", cfg.PreviewFrameInterval)
	if cfg.PresetFile != "" {
		_, _ = fmt.Fprintf(w, "  Presets:       %s\n", cfg.PresetFile)
	}
	_, _ = fmt.Fprintln(w, "============================================")
}
