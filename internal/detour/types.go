package detour

import "waypilot/pkg/geo"

// Classification buckets a candidate stop's insertion cost against the
// current detour budget.
type Classification string

const (
	ClassificationNoDetour       Classification = "NO_DETOUR"
	ClassificationMinimal        Classification = "MINIMAL"
	ClassificationAcceptable     Classification = "ACCEPTABLE"
	ClassificationNotRecommended Classification = "NOT_RECOMMENDED"
)

// Budget is the maximum extra travel a route may absorb for added stops.
// It is a pure function of the current base route length and is never cached
// across different base routes.
type Budget struct {
	BaseMeters         float64
	AllowedExtraMeters float64
}

// Candidate is a stop under consideration for insertion into a route.
type Candidate struct {
	Name     string
	Category string
	Location geo.Point

	// Derived during ordering
	ExtraMeters    float64
	Classification Classification
	Flagged        bool
}
