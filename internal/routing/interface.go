package routing

import (
	"context"

	"waypilot/pkg/geo"
)

// Provider computes routes and insertion costs.
//
//go:generate mockery --name Provider
type Provider interface {
	// Route computes a route from origin to destination through the given
	// waypoints, in order.
	Route(ctx context.Context, origin, destination geo.Point, waypoints []geo.Point) (*Route, error)

	// InsertionCost reports how much adding candidate to the end of the
	// waypoint list costs: the extra meters over the base route and the
	// resulting total.
	InsertionCost(ctx context.Context, origin, destination geo.Point, waypoints []geo.Point, candidate geo.Point) (extraMeters, totalMeters float64, err error)
}

// Route is a computed route.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Polyline        string
}
