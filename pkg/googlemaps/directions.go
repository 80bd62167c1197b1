package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"waypilot/pkg/geo"
)

// Directions computes a driving route through the request's waypoints in the
// given order. Distance and duration are summed across legs.
func (c *Client) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResult, error) {
	params := url.Values{}
	params.Set("origin", formatPoint(req.Origin))
	params.Set("destination", formatPoint(req.Destination))
	if len(req.Waypoints) > 0 {
		points := make([]string, len(req.Waypoints))
		for i, wp := range req.Waypoints {
			points[i] = formatPoint(wp)
		}
		params.Set("waypoints", strings.Join(points, "|"))
	}

	var resp directionsResponse
	if err := c.get(ctx, "directions", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("directions", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	result := &DirectionsResult{Routes: make([]Route, 0, len(resp.Routes))}
	for _, r := range resp.Routes {
		route := Route{Polyline: r.OverviewPolyline.Points}
		for _, leg := range r.Legs {
			route.DistanceMeters += leg.Distance.Value
			route.DurationSeconds += leg.Duration.Value
		}
		result.Routes = append(result.Routes, route)
	}

	return result, nil
}

func formatPoint(p geo.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
