package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waypilot/config"
	_ "waypilot/docs" // Swagger docs
	"waypilot/internal/agent"
	"waypilot/internal/agent/orchestrator"
	"waypilot/internal/agent/tools"
	anchorMemory "waypilot/internal/anchor/repository/memory"
	anchorUC "waypilot/internal/anchor/usecase"
	"waypilot/internal/httpserver"
	"waypilot/internal/nlu"
	"waypilot/internal/place"
	"waypilot/internal/routing"
	"waypilot/internal/session"
	"waypilot/internal/voice"
	"waypilot/pkg/googlemaps"
	"waypilot/pkg/llmprovider"
	"waypilot/pkg/log"
)

// @title       WayPilot API
// @description Conversational errand-routing assistant with tiered NLU, detour budgets, and Google Maps integration.
// @version     1
// @host        localhost:8080
// @schemes     http
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

	logger.Info(ctx, "Starting WayPilot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM tiers: fast runs every turn, advanced only on escalation.
	var fast, advanced llmprovider.Provider

	if fast, err = llmprovider.NewProvider(cfg.LLM.Fast); err != nil {
		logger.Warnf(ctx, "Fast LLM tier not available: %v", err)
		fast = nil
	}
	if advanced, err = llmprovider.NewProvider(cfg.LLM.Advanced); err != nil {
		logger.Warnf(ctx, "Advanced LLM tier not available: %v", err)
		advanced = nil
	}

	classifier := nlu.New(fast, advanced, logger)

	var loopProviders []llmprovider.Provider
	if fast != nil {
		loopProviders = append(loopProviders, fast)
	}
	if advanced != nil {
		loopProviders = append(loopProviders, advanced)
	}
	llmManager := llmprovider.NewManager(loopProviders, &llmprovider.Config{
		FallbackEnabled: true,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      config.ParseDuration(cfg.LLM.RetryDelay, 500*time.Millisecond),
		MaxTotalTimeout: config.ParseDuration(cfg.LLM.MaxTotalTimeout, 45*time.Second),
	}, logger)

	// 4. Google Maps web services (optional)
	var mapsClient *googlemaps.Client
	if cfg.Maps.APIKey != "" {
		mapsClient, err = googlemaps.New(googlemaps.Config{
			APIKey:  cfg.Maps.APIKey,
			BaseURL: cfg.Maps.BaseURL,
		})
		if err != nil {
			logger.Warnf(ctx, "Google Maps not available: %v", err)
		}
	} else {
		logger.Warn(ctx, "MAPS_APIKEY is missing, place search and routing tools disabled")
	}

	// 5. Session store
	store := session.NewStore(session.Config{
		TTL:              config.ParseDuration(cfg.Session.TTL, 30*time.Minute),
		SweepInterval:    config.ParseDuration(cfg.Session.SweepInterval, 5*time.Minute),
		ClarificationTTL: config.ParseDuration(cfg.Session.ClarificationTTL, 60*time.Second),
	}, logger)
	defer store.Close()

	// 6. Anchor domain
	anchorRepo := anchorMemory.New(logger)

	var geocoder anchorUC.Geocoder
	if mapsClient != nil {
		geocoder = mapsClient
	}
	anchorUsecase := anchorUC.New(anchorRepo, geocoder, logger)

	// 7. Agent tools
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewResolveAnchorTool(anchorUsecase))
	registry.Register(tools.NewAskUserTool())
	registry.Register(tools.NewConfirmActionTool())
	registry.Register(tools.NewStartNavigationTool(store))

	if mapsClient != nil {
		placeProvider := place.NewGoogleProvider(mapsClient, logger)
		routingProvider := routing.NewGoogleProvider(mapsClient, logger)
		registry.Register(tools.NewSearchPlacesTool(placeProvider, store))
		registry.Register(tools.NewComputeRouteTool(routingProvider, store))
	}
	logger.Infof(ctx, "Registered %d agent tools", len(registry.List()))

	// 8. Orchestrator
	orch := orchestrator.New(classifier, llmManager, registry, store, logger)

	// 9. Voice webhook (optional)
	var voiceHandler *voice.Handler
	if cfg.Voice.Enabled {
		voiceHandler = voice.New(logger, orch, voice.SecurityConfig{
			Secret:          cfg.Voice.Secret,
			RateLimitPerMin: cfg.Voice.RateLimitPerMin,
		})
		logger.Info(ctx, "Voice webhook enabled")
	}

	// 10. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		AppConfig:   cfg,

		Orchestrator: orch,
		AnchorUC:     anchorUsecase,
		VoiceHandler: voiceHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
