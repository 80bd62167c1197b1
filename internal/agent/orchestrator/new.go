package orchestrator

import (
	"waypilot/internal/agent"
	"waypilot/internal/session"
	pkgLog "waypilot/pkg/log"
)

// Orchestrator drives one conversation turn end to end: classification,
// escalation, the tool loop, and session bookkeeping.
type Orchestrator struct {
	classifier Classifier
	llm        Generator
	registry   *agent.ToolRegistry
	store      *session.Store
	l          pkgLog.Logger
}

// New creates a new Orchestrator.
func New(classifier Classifier, llm Generator, registry *agent.ToolRegistry, store *session.Store, l pkgLog.Logger) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		llm:        llm,
		registry:   registry,
		store:      store,
		l:          l,
	}
}
