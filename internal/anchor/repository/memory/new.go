package memory

import (
	"sync"

	"waypilot/internal/anchor"
	pkgLog "waypilot/pkg/log"
)

// implRepository is an in-memory anchor store. Anchors are keyed by the
// (user, lowercased name) pair.
type implRepository struct {
	mu      sync.RWMutex
	anchors map[string]anchor.Anchor
	l       pkgLog.Logger
}

// New creates a new in-memory anchor repository.
func New(l pkgLog.Logger) *implRepository {
	return &implRepository{
		anchors: make(map[string]anchor.Anchor),
		l:       l,
	}
}
