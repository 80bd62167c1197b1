package http

import (
	"waypilot/internal/anchor"
	"waypilot/pkg/log"
)

type handler struct {
	l  log.Logger
	uc anchor.UseCase
}

// New creates a new HTTP handler for the anchor domain.
func New(l log.Logger, uc anchor.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
