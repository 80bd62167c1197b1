package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"waypilot/pkg/geo"
	"waypilot/pkg/googlemaps"
	"waypilot/pkg/log"
)

const (
	cacheSize = 200
	cacheTTL  = 2 * time.Minute
)

// googleProvider implements Provider on top of the Google Directions API.
// Base routes are cached briefly because the greedy stop ordering probes the
// same leg sets repeatedly.
type googleProvider struct {
	client *googlemaps.Client
	cache  *expirable.LRU[string, *Route]
	l      log.Logger
}

// NewGoogleProvider creates a Directions-backed provider.
func NewGoogleProvider(client *googlemaps.Client, l log.Logger) Provider {
	return &googleProvider{
		client: client,
		cache:  expirable.NewLRU[string, *Route](cacheSize, nil, cacheTTL),
		l:      l,
	}
}

func routeKey(origin, destination geo.Point, waypoints []geo.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.5f,%.5f|%.5f,%.5f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	for _, wp := range waypoints {
		fmt.Fprintf(&b, "|%.5f,%.5f", wp.Lat, wp.Lng)
	}
	return b.String()
}

func (p *googleProvider) Route(ctx context.Context, origin, destination geo.Point, waypoints []geo.Point) (*Route, error) {
	key := routeKey(origin, destination, waypoints)
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	result, err := p.client.Directions(ctx, googlemaps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
	})
	if err != nil {
		if errors.Is(err, googlemaps.ErrZeroResults) {
			return nil, ErrNoRoute
		}
		p.l.Errorf(ctx, "routing.Route Directions: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(result.Routes) == 0 {
		return nil, ErrNoRoute
	}

	best := result.Routes[0]
	route := &Route{
		DistanceMeters:  best.DistanceMeters,
		DurationSeconds: best.DurationSeconds,
		Polyline:        best.Polyline,
	}

	p.cache.Add(key, route)
	return route, nil
}

func (p *googleProvider) InsertionCost(ctx context.Context, origin, destination geo.Point, waypoints []geo.Point, candidate geo.Point) (float64, float64, error) {
	base, err := p.Route(ctx, origin, destination, waypoints)
	if err != nil {
		return 0, 0, err
	}

	extended := make([]geo.Point, 0, len(waypoints)+1)
	extended = append(extended, waypoints...)
	extended = append(extended, candidate)

	with, err := p.Route(ctx, origin, destination, extended)
	if err != nil {
		return 0, 0, err
	}

	extra := with.DistanceMeters - base.DistanceMeters
	if extra < 0 {
		extra = 0
	}
	return extra, with.DistanceMeters, nil
}
