package place

import (
	"context"

	"waypilot/pkg/geo"
)

// Provider finds candidate places near a location.
//
//go:generate mockery --name Provider
type Provider interface {
	Search(ctx context.Context, input SearchInput) ([]Place, error)
}

// SearchInput is one place query.
type SearchInput struct {
	Location     geo.Point
	Keyword      string
	Category     string
	RadiusMeters int
}

// Place is a candidate stop.
type Place struct {
	ID       string
	Name     string
	Address  string
	Location geo.Point
	Rating   float64
}
