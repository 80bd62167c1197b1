package tools

import (
	"context"
	"testing"
	"time"

	"waypilot/internal/agent"
	"waypilot/internal/anchor"
	"waypilot/internal/detour"
	"waypilot/internal/model"
	"waypilot/internal/place"
	"waypilot/internal/routing"
	"waypilot/internal/session"
	"waypilot/pkg/geo"
	"waypilot/pkg/log"
)

// --- stubs ---

type stubAnchorUC struct {
	anchors map[string]anchor.Anchor
}

func (s *stubAnchorUC) Set(ctx context.Context, input anchor.SetInput) (anchor.SetOutput, error) {
	return anchor.SetOutput{}, nil
}

func (s *stubAnchorUC) Resolve(ctx context.Context, input anchor.ResolveInput) (anchor.ResolveOutput, error) {
	a, ok := s.anchors[input.Name]
	if !ok {
		return anchor.ResolveOutput{}, anchor.ErrAnchorNotFound
	}
	return anchor.ResolveOutput{Anchor: a}, nil
}

func (s *stubAnchorUC) List(ctx context.Context, input anchor.ListInput) (anchor.ListOutput, error) {
	return anchor.ListOutput{}, nil
}

func (s *stubAnchorUC) Delete(ctx context.Context, userID, name string) error {
	return nil
}

type stubPlaceProvider struct {
	places []place.Place
	err    error
	gotLoc geo.Point
}

func (s *stubPlaceProvider) Search(ctx context.Context, input place.SearchInput) ([]place.Place, error) {
	s.gotLoc = input.Location
	return s.places, s.err
}

// stubRouting returns a fixed base distance and a fixed extra per inserted
// waypoint.
type stubRouting struct {
	baseMeters     float64
	extraPerStop   float64
	routeErr       error
	insertionCalls int
}

func (s *stubRouting) Route(ctx context.Context, origin, dest geo.Point, waypoints []geo.Point) (*routing.Route, error) {
	if s.routeErr != nil {
		return nil, s.routeErr
	}
	return &routing.Route{
		DistanceMeters:  s.baseMeters + float64(len(waypoints))*s.extraPerStop,
		DurationSeconds: 600,
		Polyline:        "poly",
	}, nil
}

func (s *stubRouting) InsertionCost(ctx context.Context, origin, dest geo.Point, waypoints []geo.Point, candidate geo.Point) (float64, float64, error) {
	s.insertionCalls++
	total := s.baseMeters + float64(len(waypoints)+1)*s.extraPerStop
	return s.extraPerStop, total, nil
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(session.Config{SweepInterval: time.Hour}, log.NewNoop())
	t.Cleanup(s.Close)
	return s
}

// --- tests ---

func TestResolveAnchor(t *testing.T) {
	uc := &stubAnchorUC{anchors: map[string]anchor.Anchor{
		"home": {Name: "home", Location: geo.Point{Lat: 39.65, Lng: -104.90}},
	}}
	tool := NewResolveAnchorTool(uc)

	result := tool.Execute(context.Background(), map[string]interface{}{"name": "home"})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	data := result.Data.(map[string]interface{})
	if data["lat"] != 39.65 {
		t.Errorf("unexpected data: %v", data)
	}

	result = tool.Execute(context.Background(), map[string]interface{}{"name": "cabin"})
	if result.Success || result.Err.Kind != agent.ErrorKindTerminal {
		t.Errorf("unknown anchor should fail terminally, got %+v", result)
	}

	result = tool.Execute(context.Background(), map[string]interface{}{})
	if result.Success {
		t.Error("missing name must fail")
	}
}

func TestSearchPlacesFallsBackToSessionLocation(t *testing.T) {
	store := newSessionStore(t)
	store.GetOrCreate("s1")
	store.SetUserLocation("s1", geo.Point{Lat: 39.73, Lng: -104.98})

	provider := &stubPlaceProvider{places: []place.Place{{Name: "Starbucks"}}}
	tool := NewSearchPlacesTool(provider, store)

	ctx := agent.WithSessionID(context.Background(), "s1")
	result := tool.Execute(ctx, map[string]interface{}{"keyword": "coffee"})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if provider.gotLoc.IsZero() {
		t.Error("expected the session location to be used as search center")
	}

	// No session and no coordinates: nothing to search around.
	result = tool.Execute(context.Background(), map[string]interface{}{"keyword": "coffee"})
	if result.Success {
		t.Error("expected failure without any location")
	}
}

func TestSearchPlacesTruncatesResults(t *testing.T) {
	provider := &stubPlaceProvider{}
	for i := 0; i < 10; i++ {
		provider.places = append(provider.places, place.Place{Name: "P"})
	}
	tool := NewSearchPlacesTool(provider, newSessionStore(t))

	result := tool.Execute(context.Background(), map[string]interface{}{
		"keyword": "coffee",
		"lat":     39.73,
		"lng":     -104.98,
	})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	data := result.Data.(map[string]interface{})
	if data["count"] != maxSearchResults {
		t.Errorf("expected %d results, got %v", maxSearchResults, data["count"])
	}
}

func TestComputeRouteStoresRoute(t *testing.T) {
	store := newSessionStore(t)
	store.GetOrCreate("s1")
	store.SetUserLocation("s1", geo.Point{Lat: 39.73, Lng: -104.98})

	// 8000m base, 300m per stop: well inside the 7% medium-tier budget.
	r := &stubRouting{baseMeters: 8000, extraPerStop: 300}
	tool := NewComputeRouteTool(r, store)

	ctx := agent.WithSessionID(context.Background(), "s1")
	result := tool.Execute(ctx, map[string]interface{}{
		"destination_name": "home",
		"destination_lat":  39.65,
		"destination_lng":  -104.90,
		"stops": []interface{}{
			map[string]interface{}{"name": "Starbucks", "lat": 39.70, "lng": -104.95},
			map[string]interface{}{"name": "Walmart", "lat": 39.68, "lng": -104.93},
		},
	})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	sess := store.Get("s1")
	if sess.CurrentRoute == nil {
		t.Fatal("expected route stored on session")
	}
	if len(sess.CurrentRoute.Stops) != 2 {
		t.Errorf("expected 2 stops, got %d", len(sess.CurrentRoute.Stops))
	}
	if sess.CurrentRoute.Status != model.RouteStatusPlanning {
		t.Errorf("new route must start in planning, got %s", sess.CurrentRoute.Status)
	}
	for _, s := range sess.CurrentRoute.Stops {
		if s.Flagged {
			t.Errorf("stop %s should fit the budget", s.Name)
		}
	}
}

func TestComputeRouteFlagsInfeasibleStops(t *testing.T) {
	store := newSessionStore(t)
	store.GetOrCreate("s1")
	store.SetUserLocation("s1", geo.Point{Lat: 39.73, Lng: -104.98})

	// 1 mile base clamps the budget to 400m; a 900m detour cannot fit.
	r := &stubRouting{baseMeters: 1609, extraPerStop: 900}
	tool := NewComputeRouteTool(r, store)

	ctx := agent.WithSessionID(context.Background(), "s1")
	result := tool.Execute(ctx, map[string]interface{}{
		"destination_lat": 39.72,
		"destination_lng": -104.97,
		"stops": []interface{}{
			map[string]interface{}{"name": "Starbucks", "lat": 39.725, "lng": -104.975},
		},
	})
	if !result.Success {
		t.Fatalf("expected success with flags, got %+v", result)
	}

	data := result.Data.(map[string]interface{})
	if data["infeasible"] != true {
		t.Error("expected infeasible=true")
	}
	sess := store.Get("s1")
	if len(sess.CurrentRoute.Stops) != 1 || !sess.CurrentRoute.Stops[0].Flagged {
		t.Errorf("over-budget stop must be retained and flagged: %+v", sess.CurrentRoute.Stops)
	}
	if sess.CurrentRoute.Stops[0].Classification != detour.ClassificationNotRecommended {
		t.Errorf("unexpected classification: %s", sess.CurrentRoute.Stops[0].Classification)
	}
}

func TestComputeRouteRequiresLocation(t *testing.T) {
	store := newSessionStore(t)
	store.GetOrCreate("s1")

	tool := NewComputeRouteTool(&stubRouting{baseMeters: 8000}, store)
	ctx := agent.WithSessionID(context.Background(), "s1")
	result := tool.Execute(ctx, map[string]interface{}{
		"destination_lat": 39.65,
		"destination_lng": -104.90,
	})
	if result.Success {
		t.Error("expected failure without a user location")
	}
}

func TestAskUserAndConfirm(t *testing.T) {
	ask := NewAskUserTool()
	result := ask.Execute(context.Background(), map[string]interface{}{
		"question": "Which Starbucks?",
		"options":  []interface{}{"Main St", "5th Ave"},
	})
	if !result.NeedsUserInput || len(result.Options) != 2 {
		t.Errorf("unexpected ask result: %+v", result)
	}

	confirm := NewConfirmActionTool()
	result = confirm.Execute(context.Background(), map[string]interface{}{
		"question": "Start this route?",
	})
	if !result.NeedsUserInput || len(result.Options) != 2 || result.Options[0] != "yes" {
		t.Errorf("unexpected confirm result: %+v", result)
	}
}

func TestStartNavigation(t *testing.T) {
	store := newSessionStore(t)
	store.GetOrCreate("s1")
	tool := NewStartNavigationTool(store)
	ctx := agent.WithSessionID(context.Background(), "s1")

	// No route yet.
	result := tool.Execute(ctx, nil)
	if result.Success {
		t.Error("expected failure without a route")
	}

	store.SetCurrentRoute("s1", &model.Route{ID: "r1", Status: model.RouteStatusPlanning})
	result = tool.Execute(ctx, nil)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if store.Get("s1").CurrentRoute.Status != model.RouteStatusActive {
		t.Errorf("route should be active, got %s", store.Get("s1").CurrentRoute.Status)
	}

	// Already active: active is terminal.
	result = tool.Execute(ctx, nil)
	if result.Success {
		t.Error("starting an active route again must fail")
	}
}
