package voice

import (
	"waypilot/internal/agent/orchestrator"
	"waypilot/pkg/log"
)

// Handler bridges the voice gateway to the orchestrator.
type Handler struct {
	l        log.Logger
	orch     *orchestrator.Orchestrator
	security *SecurityValidator
}

// New creates a new voice webhook handler.
func New(l log.Logger, orch *orchestrator.Orchestrator, security SecurityConfig) *Handler {
	return &Handler{
		l:        l,
		orch:     orch,
		security: NewSecurityValidator(security),
	}
}
