package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"location-recommender-agent/config"
	"location-recommender-agent/internal/httpserver"
	recommendHTTP "location-recommender-agent/internal/recommend/delivery/http"
	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/internal/recommend/usecase"
	"location-recommender-agent/pkg/flightest"
	"location-recommender-agent/pkg/groq"
	"location-recommender-agent/pkg/log"
	"location-recommender-agent/pkg/nominatim"
	"location-recommender-agent/pkg/openmeteo"
	"location-recommender-agent/pkg/overpass"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Location Recommender Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Tool clients
	llm := groq.New(groq.Config{
		APIKey:  cfg.Groq.APIKey,
		Model:   cfg.Groq.Model,
		BaseURL: cfg.Groq.BaseURL,
	}, logger)
	if cfg.Groq.APIKey == "" {
		logger.Warn(ctx, "GROQ_API_KEY not set, falling back to rule-based parsing and templated summaries")
	}

	geocoder := nominatim.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, logger)
	weather := openmeteo.NewClient(cfg.Weather.BaseURL, logger)
	places := overpass.NewClient(cfg.Places.BaseURL, cfg.Places.BackoffWindow, logger)

	flights, err := flightest.NewEstimator(cfg.Flights.AirportsPath)
	if err != nil {
		logger.Warnf(ctx, "Airports table not loaded, flight estimates disabled: %v", err)
		flights = &flightest.Estimator{}
	}

	// 4. Session store and UseCase
	sessions := session.NewStore(cfg.Session.MaxSessions, cfg.Session.TTL)
	recommendUC := usecase.New(logger, llm, geocoder, weather, places, flights, sessions)

	// 5. HTTP server
	chatHandler := recommendHTTP.New(logger, recommendUC)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
