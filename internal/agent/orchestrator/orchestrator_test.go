package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"waypilot/internal/agent"
	"waypilot/internal/agent/tools"
	"waypilot/internal/nlu"
	"waypilot/internal/routing"
	"waypilot/internal/session"
	"waypilot/pkg/geo"
	"waypilot/pkg/llmprovider"
	"waypilot/pkg/log"
)

// --- stubs ---

type scriptedClassifier struct {
	results       []nlu.Result
	idx           int
	err           error
	advanced      nlu.Result
	advancedErr   error
	advancedCalls int
}

func (c *scriptedClassifier) Classify(ctx context.Context, utterance, contextSummary string) (nlu.Result, error) {
	if c.err != nil {
		return nlu.Result{}, c.err
	}
	r := c.results[c.idx]
	if c.idx < len(c.results)-1 {
		c.idx++
	}
	return r, nil
}

func (c *scriptedClassifier) ClassifyAdvanced(ctx context.Context, utterance, contextSummary string) (nlu.Result, error) {
	c.advancedCalls++
	return c.advanced, c.advancedErr
}

type scriptedGenerator struct {
	steps []*llmprovider.Response
	idx   int
	err   error
}

func (g *scriptedGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if g.err != nil {
		return nil, g.err
	}
	resp := g.steps[g.idx]
	if g.idx < len(g.steps)-1 {
		g.idx++
	}
	return resp, nil
}

func textResp(text string) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  "model",
		Parts: []llmprovider.Part{{Text: text}},
	}}
}

func callResp(name string, args map[string]interface{}) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  "model",
		Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{Name: name, Args: args}}},
	}}
}

// stubRouting returns a fixed base distance and a fixed extra per stop.
type stubRouting struct {
	baseMeters   float64
	extraPerStop float64
}

func (s *stubRouting) Route(ctx context.Context, origin, dest geo.Point, waypoints []geo.Point) (*routing.Route, error) {
	return &routing.Route{
		DistanceMeters:  s.baseMeters + float64(len(waypoints))*s.extraPerStop,
		DurationSeconds: 600,
		Polyline:        "poly",
	}, nil
}

func (s *stubRouting) InsertionCost(ctx context.Context, origin, dest geo.Point, waypoints []geo.Point, candidate geo.Point) (float64, float64, error) {
	return s.extraPerStop, s.baseMeters + float64(len(waypoints)+1)*s.extraPerStop, nil
}

type fixture struct {
	orch  *Orchestrator
	store *session.Store
}

func newFixture(t *testing.T, classifier Classifier, gen Generator, routingStub routing.Provider) fixture {
	t.Helper()
	store := session.NewStore(session.Config{SweepInterval: time.Hour}, log.NewNoop())
	t.Cleanup(store.Close)

	registry := agent.NewToolRegistry()
	registry.Register(tools.NewAskUserTool())
	registry.Register(tools.NewConfirmActionTool())
	registry.Register(tools.NewStartNavigationTool(store))
	if routingStub != nil {
		registry.Register(tools.NewComputeRouteTool(routingStub, store))
	}

	return fixture{
		orch:  New(classifier, gen, registry, store, log.NewNoop()),
		store: store,
	}
}

var denverLoc = geo.Point{Lat: 39.73, Lng: -104.98}

func highConfidence(intent nlu.Intent, dest string, stops ...string) nlu.Result {
	return nlu.Result{Intent: intent, Destination: dest, Stops: stops, Confidence: 0.92}
}

// --- scenario tests ---

func TestDirectHighConfidenceRoute(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		highConfidence(nlu.IntentNavigateDirect, "home"),
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{
		callResp("compute_route", map[string]interface{}{
			"destination_name": "home",
			"destination_lat":  39.65,
			"destination_lng":  -104.90,
		}),
		textResp("On the way home, about ten minutes."),
	}}
	f := newFixture(t, classifier, gen, &stubRouting{baseMeters: 8000})

	out, err := f.orch.ProcessRequest(context.Background(), "s1", "take me home", denverLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Completed {
		t.Error("expected completed outcome")
	}
	if out.Route == nil || len(out.Route.Stops) != 0 {
		t.Errorf("expected a route with 0 stops, got %+v", out.Route)
	}
	if out.Tier != nlu.TierHigh {
		t.Errorf("expected HIGH tier, got %s", out.Tier)
	}
	if out.Response == "" {
		t.Error("expected a spoken reply")
	}
}

func TestAmbiguousStopAsksUser(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		highConfidence(nlu.IntentNavigateWithStops, "home", "Starbucks"),
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{
		callResp("ask_user", map[string]interface{}{
			"question": "There are two Starbucks on the way. Main St or 5th Ave?",
			"options":  []interface{}{"Main St", "5th Ave"},
		}),
	}}
	f := newFixture(t, classifier, gen, &stubRouting{baseMeters: 8000})

	out, err := f.orch.ProcessRequest(context.Background(), "s1", "home via starbucks", denverLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Completed {
		t.Error("expected an open question, not completion")
	}
	if out.ClarificationQuestion == "" || len(out.ClarificationOptions) != 2 {
		t.Errorf("unexpected clarification: %+v", out)
	}
	if !f.store.IsAwaitingClarification(out.SessionID) {
		t.Error("session should be awaiting clarification")
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		name        string
		confidence  float64
		wantTier    nlu.Tier
		wantPending string
	}{
		{"0.80 acts", 0.80, nlu.TierHigh, ""},
		{"0.79 confirms", 0.79, nlu.TierMedium, ReasonConfirmIntent},
		{"0.60 confirms", 0.60, nlu.TierMedium, ReasonConfirmIntent},
		{"0.59 disambiguates", 0.59, nlu.TierLow, ReasonLowConfidence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classifier := &scriptedClassifier{results: []nlu.Result{
				{Intent: nlu.IntentNavigateDirect, Destination: "home", Confidence: tc.confidence},
			}}
			gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("Done.")}}
			f := newFixture(t, classifier, gen, nil)

			out, err := f.orch.ProcessRequest(context.Background(), "s1", "take me home", denverLoc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Tier != tc.wantTier {
				t.Errorf("expected tier %s, got %s", tc.wantTier, out.Tier)
			}
			sess := f.store.Get(out.SessionID)
			if tc.wantPending == "" {
				if !out.Completed || sess.Pending != nil {
					t.Errorf("expected completed turn, got %+v pending=%+v", out, sess.Pending)
				}
			} else {
				if out.Completed || sess.Pending == nil || sess.Pending.Reason != tc.wantPending {
					t.Errorf("expected pending %s, got completed=%v pending=%+v", tc.wantPending, out.Completed, sess.Pending)
				}
			}
		})
	}
}

func TestEscalatesOnThirdConsecutiveLow(t *testing.T) {
	classifier := &scriptedClassifier{
		results:  []nlu.Result{{Intent: nlu.IntentUnknown, Confidence: 0.3}},
		advanced: highConfidence(nlu.IntentNavigateDirect, "home"),
	}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("Heading home.")}}
	f := newFixture(t, classifier, gen, nil)
	ctx := context.Background()

	for turn := 1; turn <= 2; turn++ {
		out, err := f.orch.ProcessRequest(ctx, "s1", "mumble", denverLoc)
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		if out.Completed {
			t.Errorf("turn %d should ask for a rephrase", turn)
		}
		if classifier.advancedCalls != 0 {
			t.Fatalf("turn %d: advanced model must not run yet", turn)
		}
	}

	out, err := f.orch.ProcessRequest(ctx, "s1", "mumble", denverLoc)
	if err != nil {
		t.Fatalf("third turn: %v", err)
	}
	if classifier.advancedCalls != 1 {
		t.Errorf("expected exactly one escalation, got %d", classifier.advancedCalls)
	}
	if !out.Escalated || !out.Completed {
		t.Errorf("expected an escalated, completed turn, got %+v", out)
	}

	// A fourth low turn starts a fresh streak.
	if _, err := f.orch.ProcessRequest(ctx, "s1", "mumble", denverLoc); err != nil {
		t.Fatalf("fourth turn: %v", err)
	}
	if classifier.advancedCalls != 1 {
		t.Errorf("streak must reset after escalation, advanced ran %d times", classifier.advancedCalls)
	}
}

func TestRequiresAdvancedEscalatesImmediately(t *testing.T) {
	classifier := &scriptedClassifier{
		results:  []nlu.Result{{Intent: nlu.IntentUnknown, Confidence: 0.9, RequiresAdvanced: true}},
		advanced: highConfidence(nlu.IntentNavigateDirect, "home"),
	}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("Heading home.")}}
	f := newFixture(t, classifier, gen, nil)

	out, err := f.orch.ProcessRequest(context.Background(), "s1", "something gnarly", denverLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if classifier.advancedCalls != 1 {
		t.Errorf("expected one advanced call, got %d", classifier.advancedCalls)
	}
	if !out.Escalated {
		t.Error("expected escalated outcome")
	}
}

func TestMediumConfirmThenYes(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		{Intent: nlu.IntentNavigateDirect, Destination: "home", Confidence: 0.7},
		{Intent: nlu.IntentConfirm, Confidence: 0.95},
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("Heading home.")}}
	f := newFixture(t, classifier, gen, nil)
	ctx := context.Background()

	out, err := f.orch.ProcessRequest(ctx, "s1", "take me home", denverLoc)
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}
	classifier.idx = 1
	if out.Completed || out.ClarificationQuestion == "" {
		t.Fatalf("expected confirmation question, got %+v", out)
	}

	out, err = f.orch.ProcessRequest(ctx, "s1", "yes", denverLoc)
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if !out.Completed || out.Response != "Heading home." {
		t.Errorf("expected the loop to run after confirmation, got %+v", out)
	}
}

func TestMediumConfirmThenNo(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		{Intent: nlu.IntentNavigateDirect, Destination: "home", Confidence: 0.7},
		{Intent: nlu.IntentDeny, Confidence: 0.95},
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("unused")}}
	f := newFixture(t, classifier, gen, nil)
	ctx := context.Background()

	if _, err := f.orch.ProcessRequest(ctx, "s1", "take me home", denverLoc); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	classifier.idx = 1

	out, err := f.orch.ProcessRequest(ctx, "s1", "no", denverLoc)
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if !out.Completed || out.Response != MsgCancelled {
		t.Errorf("expected cancellation, got %+v", out)
	}
	if f.store.IsAwaitingClarification(out.SessionID) {
		t.Error("pending question should be cleared")
	}
}

func TestFlaggedStopsConfirmationFlow(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		highConfidence(nlu.IntentNavigateWithStops, "home", "Starbucks"),
		{Intent: nlu.IntentDeny, Confidence: 0.95},
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{
		callResp("compute_route", map[string]interface{}{
			"destination_lat": 39.72,
			"destination_lng": -104.97,
			"stops": []interface{}{
				map[string]interface{}{"name": "Starbucks", "lat": 39.725, "lng": -104.975},
			},
		}),
		textResp("Route ready."),
	}}
	// 1 mile base clamps the budget to 400m; a 900m detour gets flagged.
	f := newFixture(t, classifier, gen, &stubRouting{baseMeters: 1609, extraPerStop: 900})
	ctx := context.Background()

	out, err := f.orch.ProcessRequest(ctx, "s1", "home via starbucks", denverLoc)
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if out.Completed {
		t.Fatal("flagged stops must trigger a confirmation question")
	}
	sess := f.store.Get(out.SessionID)
	if sess.Pending == nil || sess.Pending.Reason != ReasonFlaggedStops {
		t.Fatalf("expected flagged-stops pending, got %+v", sess.Pending)
	}

	classifier.idx = 1
	out, err = f.orch.ProcessRequest(ctx, "s1", "no thanks", denverLoc)
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if !out.Completed {
		t.Errorf("expected resolution, got %+v", out)
	}
	if out.Route == nil || len(out.Route.Stops) != 0 {
		t.Errorf("declined flagged stops should be dropped, got %+v", out.Route)
	}
}

func TestCancelAbandonsRoute(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		{Intent: nlu.IntentCancel, Confidence: 0.95},
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("unused")}}
	f := newFixture(t, classifier, gen, nil)

	out, err := f.orch.ProcessRequest(context.Background(), "s1", "never mind", denverLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Completed || out.Response != MsgCancelled {
		t.Errorf("expected cancellation, got %+v", out)
	}
}

func TestClassifierUnavailable(t *testing.T) {
	classifier := &scriptedClassifier{err: nlu.ErrUnavailable}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{textResp("unused")}}
	f := newFixture(t, classifier, gen, nil)

	_, err := f.orch.ProcessRequest(context.Background(), "s1", "take me home", denverLoc)
	if !errors.Is(err, nlu.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable to escape, got %v", err)
	}
}

func TestToolQuestionAnswerResumesLoop(t *testing.T) {
	classifier := &scriptedClassifier{results: []nlu.Result{
		highConfidence(nlu.IntentNavigateWithStops, "home", "Starbucks"),
		{Intent: nlu.IntentFindPlace, Destination: "", Confidence: 0.9},
	}}
	gen := &scriptedGenerator{steps: []*llmprovider.Response{
		callResp("ask_user", map[string]interface{}{
			"question": "Main St or 5th Ave?",
			"options":  []interface{}{"Main St", "5th Ave"},
		}),
		textResp("Routing via the Main St Starbucks."),
	}}
	f := newFixture(t, classifier, gen, nil)
	ctx := context.Background()

	out, err := f.orch.ProcessRequest(ctx, "s1", "home via starbucks", denverLoc)
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if out.Completed {
		t.Fatal("expected suspension on the tool question")
	}

	classifier.idx = 1
	out, err = f.orch.ProcessRequest(ctx, "s1", "Main St", denverLoc)
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if !out.Completed || out.Response != "Routing via the Main St Starbucks." {
		t.Errorf("expected the loop to resume with the answer, got %+v", out)
	}
}
