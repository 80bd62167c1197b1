package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"waypilot/internal/model"
	"waypilot/internal/nlu"
	"waypilot/pkg/geo"
	pkgLog "waypilot/pkg/log"
)

// Config holds store lifecycle settings.
type Config struct {
	TTL              time.Duration
	SweepInterval    time.Duration
	ClarificationTTL time.Duration
}

// Store owns all sessions. Every mutation goes through its operations; the
// caller holds the per-session lock (Lock/Unlock) around a full turn.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl              time.Duration
	sweepInterval    time.Duration
	clarificationTTL time.Duration

	l      pkgLog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewStore creates a session store and starts its background sweep.
func NewStore(cfg Config, l pkgLog.Logger) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.ClarificationTTL <= 0 {
		cfg.ClarificationTTL = DefaultClarificationTTL
	}

	s := &Store{
		sessions:         make(map[string]*Session),
		ttl:              cfg.TTL,
		sweepInterval:    cfg.SweepInterval,
		clarificationTTL: cfg.ClarificationTTL,
		l:                l,
		stopCh:           make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

// Close stops the background sweep.
func (s *Store) Close() {
	close(s.stopCh)
	s.wg.Wait()
}

// GetOrCreate returns the session for id, creating it on first use.
// An empty id gets a generated one.
func (s *Store) GetOrCreate(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	now := time.Now()
	sess := &Session{
		ID:             id,
		CreatedAt:      now,
		LastActivityAt: now,
		ActiveEntities: make(map[string]string),
		Preferences:    make(map[string]string),
		Agent:          AgentState{Escalation: Escalation{Phase: EscalationNormal}},
	}
	s.sessions[id] = sess
	return sess
}

// Get returns the session for id, or nil.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Delete removes a session explicitly.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Lock acquires the per-session lock, creating the session if needed.
// At most one ProcessRequest per session runs at a time.
func (s *Store) Lock(id string) *Session {
	sess := s.GetOrCreate(id)
	sess.mu.Lock()
	return sess
}

// Unlock releases the per-session lock.
func (s *Store) Unlock(id string) {
	if sess := s.Get(id); sess != nil {
		sess.mu.Unlock()
	}
}

// touch updates the activity timestamp. Callers hold the session lock.
func touch(sess *Session) {
	sess.LastActivityAt = time.Now()
}

// RecordUserTurn appends a bare, unclassified user utterance.
func (s *Store) RecordUserTurn(id, text string) {
	sess := s.GetOrCreate(id)
	sess.History = append(sess.History, Turn{
		Role: TurnRoleUser,
		Text: text,
		At:   time.Now(),
	})
	touch(sess)
}

// RecordClassifiedTurn appends a user utterance together with its NLU result
// and folds extracted entities into the session's active set.
func (s *Store) RecordClassifiedTurn(id, text string, result nlu.Result) {
	sess := s.GetOrCreate(id)

	entities := make(map[string]string)
	if result.Destination != "" {
		entities["destination"] = result.Destination
		sess.ActiveEntities["destination"] = result.Destination
	}
	if len(result.Stops) > 0 {
		joined := strings.Join(result.Stops, ", ")
		entities["stops"] = joined
		sess.ActiveEntities["stops"] = joined
	}

	sess.History = append(sess.History, Turn{
		Role:       TurnRoleUser,
		Text:       text,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Entities:   entities,
		At:         time.Now(),
	})
	sess.Agent.LastIntent = result.Intent
	sess.Agent.LastConfidence = result.Confidence
	touch(sess)
}

// RecordAssistantTurn appends an assistant reply with any tool calls it made.
func (s *Store) RecordAssistantTurn(id, text string, toolCalls []ToolInvocation) {
	sess := s.GetOrCreate(id)
	sess.History = append(sess.History, Turn{
		Role:      TurnRoleAssistant,
		Text:      text,
		ToolCalls: toolCalls,
		At:        time.Now(),
	})
	touch(sess)
}

// SetUserLocation updates the session's last known location.
func (s *Store) SetUserLocation(id string, loc geo.Point) {
	sess := s.GetOrCreate(id)
	sess.UserLocation = loc
	touch(sess)
}

// SetCurrentRoute replaces the session's route wholesale.
func (s *Store) SetCurrentRoute(id string, route *model.Route) {
	sess := s.GetOrCreate(id)
	sess.CurrentRoute = route
	touch(sess)
}

// UpdateRouteStatus applies a status transition if legal.
func (s *Store) UpdateRouteStatus(id string, status model.RouteStatus) error {
	sess := s.GetOrCreate(id)
	if sess.CurrentRoute == nil {
		return ErrNoRoute
	}
	if !sess.CurrentRoute.Status.CanTransitionTo(status) {
		return ErrIllegalTransition
	}
	sess.CurrentRoute.Status = status
	touch(sess)
	return nil
}

// AddStop adds a stop to the current route. Idempotent by case-insensitive
// name match: adding a duplicate is a no-op. Any change re-enters planning.
func (s *Store) AddStop(id string, stop model.Stop) bool {
	sess := s.GetOrCreate(id)
	if sess.CurrentRoute == nil {
		return false
	}
	for _, existing := range sess.CurrentRoute.Stops {
		if strings.EqualFold(existing.Name, stop.Name) {
			return false
		}
	}
	sess.CurrentRoute.Stops = append(sess.CurrentRoute.Stops, stop)
	sess.CurrentRoute.Status = model.RouteStatusPlanning
	touch(sess)
	return true
}

// RemoveStop removes a stop by case-insensitive name match.
func (s *Store) RemoveStop(id, name string) bool {
	sess := s.GetOrCreate(id)
	if sess.CurrentRoute == nil {
		return false
	}
	for i, stop := range sess.CurrentRoute.Stops {
		if strings.EqualFold(stop.Name, name) {
			sess.CurrentRoute.Stops = append(sess.CurrentRoute.Stops[:i], sess.CurrentRoute.Stops[i+1:]...)
			sess.CurrentRoute.Status = model.RouteStatusPlanning
			touch(sess)
			return true
		}
	}
	return false
}

// SetPendingClarification replaces any open question with a new one.
func (s *Store) SetPendingClarification(id, question string, options []string, reason string) {
	sess := s.GetOrCreate(id)
	now := time.Now()
	sess.Pending = &PendingClarification{
		Question:  question,
		Options:   options,
		Reason:    reason,
		CreatedAt: now,
		ExpiresAt: now.Add(s.clarificationTTL),
	}
	sess.Agent.AwaitingResponse = true
	touch(sess)
}

// ClearPendingClarification resolves the open question.
func (s *Store) ClearPendingClarification(id string) {
	sess := s.GetOrCreate(id)
	sess.Pending = nil
	sess.Agent.AwaitingResponse = false
	touch(sess)
}

// IsAwaitingClarification reports whether an unexpired question is open.
// A stale question is expired and cleared lazily here rather than waiting
// for a sweep.
func (s *Store) IsAwaitingClarification(id string) bool {
	sess := s.Get(id)
	if sess == nil || sess.Pending == nil {
		return false
	}
	if time.Now().After(sess.Pending.ExpiresAt) {
		sess.Pending = nil
		sess.Agent.AwaitingResponse = false
		return false
	}
	return true
}

// HistorySummary renders the last n turns as plain text for model context.
func (s *Store) HistorySummary(id string, n int) string {
	sess := s.Get(id)
	if sess == nil || len(sess.History) == 0 {
		return ""
	}

	start := len(sess.History) - n
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, turn := range sess.History[start:] {
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func (s *Store) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.stopCh:
			return
		}
	}
}

// sweepOnce evicts every session idle longer than the TTL. Eviction takes
// the per-session lock so an in-flight turn finishes first.
func (s *Store) sweepOnce() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.RLock()
	var stale []*Session
	for _, sess := range s.sessions {
		if sess.LastActivityAt.Before(cutoff) {
			stale = append(stale, sess)
		}
	}
	s.mu.RUnlock()

	if len(stale) == 0 {
		return
	}

	evicted := 0
	for _, sess := range stale {
		sess.mu.Lock()
		s.mu.Lock()
		// Re-check under the lock: the session may have been touched while
		// we waited.
		if sess.LastActivityAt.Before(cutoff) {
			delete(s.sessions, sess.ID)
			evicted++
		}
		s.mu.Unlock()
		sess.mu.Unlock()
	}

	if evicted > 0 {
		s.l.Infof(context.Background(), "%s: evicted %d expired session(s)", LogPrefixSweep, evicted)
	}
}
