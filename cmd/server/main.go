package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/handlers"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		logger.Error.Fatalf("Placement tracker server stopped: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	service, err := app.NewService(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to init service: %w", err)
	}
	defer service.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   service.Config.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", service.Config.Auth.TokenHeader},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              service.Config.Server.Port,
		Handler:           c.Handler(handlers.NewRouter(service)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info.Println("Shutting down placement tracker server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Info.Printf("Starting placement tracker server on %s", service.Config.Server.Port)
	logger.Debug.Printf("Auth enabled: %v", service.AuthEnabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", service.Config.Server.Port, err)
	}
	return nil
}
