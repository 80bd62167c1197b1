package session

import (
	"testing"
	"time"

	"waypilot/internal/model"
	"waypilot/internal/nlu"
	"waypilot/pkg/geo"
	"waypilot/pkg/log"
)

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Hour // keep the background sweep out of the way
	}
	s := NewStore(cfg, log.NewNoop())
	t.Cleanup(s.Close)
	return s
}

func testRoute() *model.Route {
	return &model.Route{
		ID:          "r1",
		Origin:      geo.Point{Lat: 39.73, Lng: -104.98},
		Destination: geo.Point{Lat: 39.65, Lng: -104.90},
		Status:      model.RouteStatusPlanning,
	}
}

func TestGetOrCreate(t *testing.T) {
	s := newTestStore(t, Config{})

	a := s.GetOrCreate("user1")
	b := s.GetOrCreate("user1")
	if a != b {
		t.Error("expected the same session for the same id")
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 session, got %d", s.Count())
	}

	c := s.GetOrCreate("")
	if c.ID == "" {
		t.Error("expected a generated id for blank input")
	}
}

func TestRecordTurns(t *testing.T) {
	s := newTestStore(t, Config{})
	s.GetOrCreate("u")

	s.RecordUserTurn("u", "hello")
	s.RecordClassifiedTurn("u", "take me home via Starbucks", nlu.Result{
		Intent:      nlu.IntentNavigateWithStops,
		Destination: "home",
		Stops:       []string{"Starbucks"},
		Confidence:  0.9,
	})
	s.RecordAssistantTurn("u", "On it.", []ToolInvocation{{Name: "compute_route", Success: true}})

	sess := s.Get("u")
	if len(sess.History) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(sess.History))
	}
	if sess.History[0].Intent != "" {
		t.Error("bare user turn should carry no intent")
	}
	if sess.History[1].Intent != nlu.IntentNavigateWithStops {
		t.Errorf("expected classified intent, got %s", sess.History[1].Intent)
	}
	if sess.ActiveEntities["destination"] != "home" {
		t.Errorf("expected destination entity folded in, got %v", sess.ActiveEntities)
	}
	if sess.Agent.LastConfidence != 0.9 {
		t.Errorf("expected agent state updated, got %+v", sess.Agent)
	}
	if sess.History[2].Role != TurnRoleAssistant || len(sess.History[2].ToolCalls) != 1 {
		t.Errorf("unexpected assistant turn: %+v", sess.History[2])
	}
}

func TestAddStopIdempotent(t *testing.T) {
	s := newTestStore(t, Config{})
	s.GetOrCreate("u")
	s.SetCurrentRoute("u", testRoute())

	if !s.AddStop("u", model.Stop{Name: "Starbucks"}) {
		t.Fatal("first add should succeed")
	}
	if s.AddStop("u", model.Stop{Name: "STARBUCKS"}) {
		t.Error("case-insensitive duplicate add should be a no-op")
	}
	if s.AddStop("u", model.Stop{Name: "starbucks"}) {
		t.Error("lowercase duplicate add should be a no-op")
	}

	sess := s.Get("u")
	if len(sess.CurrentRoute.Stops) != 1 {
		t.Errorf("expected 1 stop, got %d", len(sess.CurrentRoute.Stops))
	}
}

func TestRemoveStop(t *testing.T) {
	s := newTestStore(t, Config{})
	s.GetOrCreate("u")
	s.SetCurrentRoute("u", testRoute())
	s.AddStop("u", model.Stop{Name: "Walmart"})

	if !s.RemoveStop("u", "walmart") {
		t.Error("case-insensitive remove should succeed")
	}
	if s.RemoveStop("u", "walmart") {
		t.Error("second remove should report nothing removed")
	}
}

func TestRouteStatusTransitions(t *testing.T) {
	s := newTestStore(t, Config{})
	s.GetOrCreate("u")

	if err := s.UpdateRouteStatus("u", model.RouteStatusConfirmed); err != ErrNoRoute {
		t.Errorf("expected ErrNoRoute, got %v", err)
	}

	s.SetCurrentRoute("u", testRoute())

	if err := s.UpdateRouteStatus("u", model.RouteStatusActive); err != ErrIllegalTransition {
		t.Errorf("planning -> active must be illegal, got %v", err)
	}
	if err := s.UpdateRouteStatus("u", model.RouteStatusConfirmed); err != nil {
		t.Errorf("planning -> confirmed should be legal: %v", err)
	}
	if err := s.UpdateRouteStatus("u", model.RouteStatusActive); err != nil {
		t.Errorf("confirmed -> active should be legal: %v", err)
	}
	if err := s.UpdateRouteStatus("u", model.RouteStatusPlanning); err != ErrIllegalTransition {
		t.Errorf("active is terminal, got %v", err)
	}

	// Changing the stop set re-enters planning.
	sess := s.Get("u")
	sess.CurrentRoute.Status = model.RouteStatusConfirmed
	s.AddStop("u", model.Stop{Name: "Target"})
	if sess.CurrentRoute.Status != model.RouteStatusPlanning {
		t.Errorf("stop change should re-enter planning, got %s", sess.CurrentRoute.Status)
	}
}

func TestPendingClarificationLifecycle(t *testing.T) {
	s := newTestStore(t, Config{ClarificationTTL: 50 * time.Millisecond})
	s.GetOrCreate("u")

	if s.IsAwaitingClarification("u") {
		t.Error("new session should not be awaiting clarification")
	}

	s.SetPendingClarification("u", "Which Starbucks?", []string{"Main St", "5th Ave"}, "multiple matches")
	if !s.IsAwaitingClarification("u") {
		t.Error("expected awaiting clarification")
	}

	// Replacement keeps only the newest question.
	s.SetPendingClarification("u", "Coffee or groceries first?", nil, "ordering")
	if got := s.Get("u").Pending.Question; got != "Coffee or groceries first?" {
		t.Errorf("expected replacement question, got %q", got)
	}

	// Lazy expiry.
	time.Sleep(60 * time.Millisecond)
	if s.IsAwaitingClarification("u") {
		t.Error("stale clarification should expire lazily")
	}
	if s.Get("u").Pending != nil {
		t.Error("expired clarification should be cleared")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	s := newTestStore(t, Config{TTL: 50 * time.Millisecond})

	s.GetOrCreate("idle")
	s.GetOrCreate("busy")

	time.Sleep(30 * time.Millisecond)
	s.RecordUserTurn("busy", "still here") // touched at "minute 29"

	time.Sleep(30 * time.Millisecond) // idle is now past TTL, busy is not
	s.sweepOnce()

	if s.Get("idle") != nil {
		t.Error("idle session should be evicted")
	}
	if s.Get("busy") == nil {
		t.Error("recently touched session must survive the sweep")
	}
}

func TestEscalationStateMachine(t *testing.T) {
	var e Escalation
	e.Reset()

	if e.RecordLow() {
		t.Error("first LOW must not escalate")
	}
	if e.Phase != EscalationLowRetry {
		t.Errorf("expected LOW_RETRY, got %s", e.Phase)
	}
	if e.RecordLow() {
		t.Error("second LOW must not escalate")
	}
	if !e.RecordLow() {
		t.Error("third consecutive LOW must escalate")
	}
	if !e.Escalating() {
		t.Error("expected ESCALATING phase")
	}

	e.Reset()
	if e.Phase != EscalationNormal || e.LowStreak != 0 {
		t.Errorf("reset should return to NORMAL, got %+v", e)
	}

	e.RequestAdvanced()
	if !e.Escalating() {
		t.Error("requires_advanced must escalate immediately")
	}
}
