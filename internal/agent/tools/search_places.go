package tools

import (
	"context"
	"errors"

	"waypilot/internal/agent"
	"waypilot/internal/place"
	"waypilot/internal/session"
	"waypilot/pkg/geo"
)

const maxSearchResults = 5

// SearchPlacesTool finds candidate stops near a location.
type SearchPlacesTool struct {
	provider place.Provider
	store    *session.Store
}

// NewSearchPlacesTool creates a new search places tool.
func NewSearchPlacesTool(provider place.Provider, store *session.Store) agent.Tool {
	return &SearchPlacesTool{provider: provider, store: store}
}

func (t *SearchPlacesTool) Name() string {
	return "search_places"
}

func (t *SearchPlacesTool) Description() string {
	return "Search for places near a location by keyword or category. Defaults to the user's current location."
}

func (t *SearchPlacesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"keyword": map[string]interface{}{
				"type":        "string",
				"description": "Search keyword, e.g. 'starbucks' or 'grocery store'",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Place category, e.g. 'cafe', 'supermarket'",
			},
			"lat": map[string]interface{}{
				"type":        "number",
				"description": "Search center latitude (defaults to user location)",
			},
			"lng": map[string]interface{}{
				"type":        "number",
				"description": "Search center longitude (defaults to user location)",
			},
			"radius_meters": map[string]interface{}{
				"type":        "integer",
				"description": "Search radius in meters (default 2000)",
			},
		},
		"required": []string{"keyword"},
	}
}

func (t *SearchPlacesTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	keyword, ok := params["keyword"].(string)
	if !ok || keyword == "" {
		return agent.Fail(agent.MissingParamError("keyword"))
	}

	loc := geo.Point{}
	if lat, ok := params["lat"].(float64); ok {
		if lng, ok := params["lng"].(float64); ok {
			loc = geo.Point{Lat: lat, Lng: lng}
		}
	}
	if loc.IsZero() {
		if sessionID, ok := agent.SessionIDFromContext(ctx); ok {
			if sess := t.store.Get(sessionID); sess != nil {
				loc = sess.UserLocation
			}
		}
	}
	if loc.IsZero() {
		return agent.Fail(agent.NewTerminalError("no search location available", nil))
	}

	radius := 0
	if r, ok := params["radius_meters"].(float64); ok {
		radius = int(r)
	}
	category, _ := params["category"].(string)

	places, err := t.provider.Search(ctx, place.SearchInput{
		Location:     loc,
		Keyword:      keyword,
		Category:     category,
		RadiusMeters: radius,
	})
	if err != nil {
		if errors.Is(err, place.ErrNoResults) {
			return agent.Fail(agent.NewTerminalError("no places found for "+keyword, err))
		}
		return agent.Fail(agent.NewRetryableError("place search failed", err))
	}

	if len(places) > maxSearchResults {
		places = places[:maxSearchResults]
	}

	results := make([]map[string]interface{}, 0, len(places))
	for _, p := range places {
		results = append(results, map[string]interface{}{
			"place_id": p.ID,
			"name":     p.Name,
			"address":  p.Address,
			"lat":      p.Location.Lat,
			"lng":      p.Location.Lng,
			"rating":   p.Rating,
		})
	}

	return agent.Succeed(map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}
