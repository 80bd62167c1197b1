package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"waypilot/config"
	"waypilot/internal/agent/orchestrator"
	"waypilot/internal/anchor"
	"waypilot/internal/voice"
	"waypilot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	config      *config.Config

	// Conversation core
	orchestrator *orchestrator.Orchestrator

	// Anchor domain
	anchorUC anchor.UseCase

	// Voice webhook (optional)
	voiceHandler *voice.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	AppConfig   *config.Config

	Orchestrator *orchestrator.Orchestrator
	AnchorUC     anchor.UseCase
	VoiceHandler *voice.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.New(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		config:       cfg.AppConfig,
		orchestrator: cfg.Orchestrator,
		anchorUC:     cfg.AnchorUC,
		voiceHandler: cfg.VoiceHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.orchestrator == nil {
		return errors.New("orchestrator is required")
	}
	return nil
}
