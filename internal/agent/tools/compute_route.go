package tools

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"waypilot/internal/agent"
	"waypilot/internal/detour"
	"waypilot/internal/model"
	"waypilot/internal/routing"
	"waypilot/internal/session"
	"waypilot/pkg/geo"
)

// ComputeRouteTool builds the full route: base leg, detour budget, greedy
// stop ordering, and stores the result on the session.
type ComputeRouteTool struct {
	routing routing.Provider
	store   *session.Store
}

// NewComputeRouteTool creates a new compute route tool.
func NewComputeRouteTool(r routing.Provider, store *session.Store) agent.Tool {
	return &ComputeRouteTool{routing: r, store: store}
}

func (t *ComputeRouteTool) Name() string {
	return "compute_route"
}

func (t *ComputeRouteTool) Description() string {
	return "Compute a route from the user's location to a destination, ordering any stops within the detour budget."
}

func (t *ComputeRouteTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"destination_name": map[string]interface{}{
				"type":        "string",
				"description": "Human-readable destination name",
			},
			"destination_lat": map[string]interface{}{
				"type":        "number",
				"description": "Destination latitude",
			},
			"destination_lng": map[string]interface{}{
				"type":        "number",
				"description": "Destination longitude",
			},
			"stops": map[string]interface{}{
				"type":        "array",
				"description": "Candidate stops to visit on the way",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":     map[string]interface{}{"type": "string"},
						"category": map[string]interface{}{"type": "string"},
						"lat":      map[string]interface{}{"type": "number"},
						"lng":      map[string]interface{}{"type": "number"},
					},
					"required": []string{"name", "lat", "lng"},
				},
			},
		},
		"required": []string{"destination_lat", "destination_lng"},
	}
}

func (t *ComputeRouteTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	destLat, ok := params["destination_lat"].(float64)
	if !ok {
		return agent.Fail(agent.MissingParamError("destination_lat"))
	}
	destLng, ok := params["destination_lng"].(float64)
	if !ok {
		return agent.Fail(agent.MissingParamError("destination_lng"))
	}
	destName, _ := params["destination_name"].(string)
	dest := geo.Point{Lat: destLat, Lng: destLng}

	sessionID, ok := agent.SessionIDFromContext(ctx)
	if !ok {
		return agent.Fail(agent.NewTerminalError("no session available", nil))
	}
	sess := t.store.Get(sessionID)
	if sess == nil || sess.UserLocation.IsZero() {
		return agent.Fail(agent.NewTerminalError("user location unknown", nil))
	}
	origin := sess.UserLocation

	candidates, toolErr := parseStops(params["stops"])
	if toolErr != nil {
		return agent.Fail(toolErr)
	}

	base, err := t.routing.Route(ctx, origin, dest, nil)
	if err != nil {
		if errors.Is(err, routing.ErrNoRoute) {
			return agent.Fail(agent.NewTerminalError("no route to destination", err))
		}
		return agent.Fail(agent.NewRetryableError("route computation failed", err))
	}

	costFn := func(ctx context.Context, via []geo.Point, candidate geo.Point) (float64, float64, error) {
		return t.routing.InsertionCost(ctx, origin, dest, via, candidate)
	}

	ordered, orderErr := detour.OrderStops(ctx, base.DistanceMeters, candidates, costFn)
	if orderErr != nil && !errors.Is(orderErr, detour.ErrRouteInfeasible) {
		return agent.Fail(agent.NewRetryableError("stop ordering failed", orderErr))
	}

	route := t.assembleRoute(ctx, origin, dest, destName, base, ordered)
	t.store.SetCurrentRoute(sessionID, route)

	data := map[string]interface{}{
		"route_id":              route.ID,
		"total_distance_meters": route.TotalDistanceMeters,
		"total_duration_sec":    route.TotalDurationSeconds,
		"stops":                 stopsForModel(route.Stops),
		"infeasible":            errors.Is(orderErr, detour.ErrRouteInfeasible),
	}
	if flagged := flaggedNames(route.Stops); len(flagged) > 0 {
		data["flagged_stops"] = flagged
	}
	return agent.Succeed(data)
}

// assembleRoute recomputes the final route through the accepted stops and
// packs everything into the session's route model.
func (t *ComputeRouteTool) assembleRoute(ctx context.Context, origin, dest geo.Point, destName string, base *routing.Route, ordered []detour.Candidate) *model.Route {
	stops := make([]model.Stop, 0, len(ordered))
	var via []geo.Point
	for _, cand := range ordered {
		stops = append(stops, model.Stop{
			ID:             uuid.NewString(),
			Name:           cand.Name,
			Category:       cand.Category,
			Location:       cand.Location,
			ExtraMeters:    cand.ExtraMeters,
			Classification: cand.Classification,
			Flagged:        cand.Flagged,
		})
		if !cand.Flagged {
			via = append(via, cand.Location)
		}
	}

	final := base
	if len(via) > 0 {
		if recomputed, err := t.routing.Route(ctx, origin, dest, via); err == nil {
			final = recomputed
		}
	}

	return &model.Route{
		ID:                   uuid.NewString(),
		Origin:               origin,
		Destination:          dest,
		DestinationName:      destName,
		Stops:                stops,
		TotalDistanceMeters:  final.DistanceMeters,
		TotalDurationSeconds: final.DurationSeconds,
		Polyline:             final.Polyline,
		Status:               model.RouteStatusPlanning,
	}
}

func parseStops(raw interface{}) ([]detour.Candidate, *agent.ToolError) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, agent.NewTerminalError("stops must be an array", nil)
	}

	candidates := make([]detour.Candidate, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, agent.NewTerminalError("each stop must be an object", nil)
		}
		name, _ := m["name"].(string)
		lat, latOK := m["lat"].(float64)
		lng, lngOK := m["lng"].(float64)
		if name == "" || !latOK || !lngOK {
			return nil, agent.NewTerminalError("each stop needs name, lat and lng", nil)
		}
		category, _ := m["category"].(string)
		candidates = append(candidates, detour.Candidate{
			Name:     name,
			Category: category,
			Location: geo.Point{Lat: lat, Lng: lng},
		})
	}
	return candidates, nil
}

func stopsForModel(stops []model.Stop) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(stops))
	for _, s := range stops {
		out = append(out, map[string]interface{}{
			"name":           s.Name,
			"extra_meters":   s.ExtraMeters,
			"classification": string(s.Classification),
			"flagged":        s.Flagged,
		})
	}
	return out
}

func flaggedNames(stops []model.Stop) []string {
	var names []string
	for _, s := range stops {
		if s.Flagged {
			names = append(names, s.Name)
		}
	}
	return names
}
