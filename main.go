package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/reelreview-be/internal/api"
	"github.com/isdelr/reelreview-be/internal/auth"
	"github.com/isdelr/reelreview-be/internal/config"
	"github.com/isdelr/reelreview-be/internal/logger"
	"github.com/isdelr/reelreview-be/internal/services"
	"github.com/isdelr/reelreview-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())

	// Set up storage
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	st, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(st.Users)
	movieService := services.NewMovieService(st.Movies)
	aggregationService := services.NewAggregationService(st.Movies, st.Reviews)

	// Set up router
	router := api.NewRouter(cfg, tokens, userService, movieService, aggregationService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("store", cfg.StoreDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := st.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	log.Info().Msg("Server exiting")
}
