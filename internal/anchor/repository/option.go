package repository

import "waypilot/pkg/geo"

// UpsertAnchorOptions holds parameters for creating or replacing an anchor.
// The (UserID, Name) pair is the natural key.
type UpsertAnchorOptions struct {
	UserID   string
	Name     string
	Address  string
	Location geo.Point
}

// GetOneAnchorOptions holds filter parameters for fetching a single anchor.
type GetOneAnchorOptions struct {
	UserID string
	Name   string
}

// ListAnchorsOptions holds filter parameters for listing anchors.
type ListAnchorsOptions struct {
	UserID string
}
