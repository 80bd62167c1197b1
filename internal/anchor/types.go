package anchor

import (
	"time"

	"waypilot/pkg/geo"
)

// Anchor is a user-named saved location ("home", "work").
type Anchor struct {
	ID        string
	UserID    string
	Name      string
	Address   string
	Location  geo.Point
	CreatedAt time.Time
	UpdatedAt time.Time
}

// --- UseCase Inputs ---

// SetInput creates or replaces an anchor. Either Location or Address must be
// provided; a bare address is geocoded.
type SetInput struct {
	UserID   string
	Name     string
	Address  string
	Location geo.Point
}

type ResolveInput struct {
	UserID string
	Name   string
}

type ListInput struct {
	UserID string
}

// --- UseCase Outputs ---

type SetOutput struct {
	Anchor Anchor
}

type ResolveOutput struct {
	Anchor Anchor
}

type ListOutput struct {
	Anchors []Anchor
}
