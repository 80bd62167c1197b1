package session

import (
	"sync"
	"time"

	"waypilot/internal/model"
	"waypilot/internal/nlu"
	"waypilot/pkg/geo"
)

// TurnRole tags who produced a turn.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ToolInvocation records one tool call issued during a turn.
type ToolInvocation struct {
	Name    string
	Params  map[string]interface{}
	Success bool
	Result  interface{}
}

// Turn is one entry in a session's history. Immutable once appended.
type Turn struct {
	Role       TurnRole
	Text       string
	Intent     nlu.Intent
	Confidence float64
	Entities   map[string]string
	ToolCalls  []ToolInvocation
	At         time.Time
}

// PendingClarification is an open question to the user. At most one per
// session; a new one replaces the old; cleared on response or expiry.
type PendingClarification struct {
	Question  string
	Options   []string
	Reason    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AgentState is the classifier-facing state carried between turns.
type AgentState struct {
	LastIntent       nlu.Intent
	LastConfidence   float64
	AwaitingResponse bool
	Escalation       Escalation
}

// Session is one conversation's accumulated state. Owned exclusively by the
// Store and mutated only through its operations while the per-session lock
// is held.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastActivityAt time.Time

	History        []Turn
	ActiveEntities map[string]string
	Agent          AgentState
	CurrentRoute   *model.Route
	Pending        *PendingClarification
	UserLocation   geo.Point
	Preferences    map[string]string

	// Held for the duration of one ProcessRequest and by the sweeper
	// before eviction, so a session is never evicted mid-turn.
	mu sync.Mutex
}
