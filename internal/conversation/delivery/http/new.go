package http

import (
	"waypilot/internal/agent/orchestrator"
	"waypilot/pkg/log"
)

type handler struct {
	l    log.Logger
	orch *orchestrator.Orchestrator
}

// New creates a new HTTP handler for the conversation surface.
func New(l log.Logger, orch *orchestrator.Orchestrator) *handler {
	return &handler{
		l:    l,
		orch: orch,
	}
}
