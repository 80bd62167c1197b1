package model

import (
	"waypilot/internal/detour"
	"waypilot/pkg/geo"
)

// RouteStatus is the lifecycle state of a route. Transitions are
// one-directional (planning -> confirmed -> active/cancelled) except that
// planning is re-entered whenever the stop set changes.
type RouteStatus string

const (
	RouteStatusPlanning  RouteStatus = "planning"
	RouteStatusConfirmed RouteStatus = "confirmed"
	RouteStatusActive    RouteStatus = "active"
	RouteStatusCancelled RouteStatus = "cancelled"
)

// Stop is a waypoint on a route. Classification is derived from the detour
// budget that produced it and must be recomputed whenever the base route
// changes; it is never authoritative on its own.
type Stop struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Category       string                `json:"category,omitempty"`
	Location       geo.Point             `json:"location"`
	Confirmed      bool                  `json:"confirmed"`
	ExtraMeters    float64               `json:"extra_meters"`
	Classification detour.Classification `json:"classification,omitempty"`
	Flagged        bool                  `json:"flagged,omitempty"`
}

// Route is the in-progress or active route owned by a session. It is
// replaced wholesale on re-optimization and mutated incrementally on
// add/remove stop.
type Route struct {
	ID                   string      `json:"id"`
	Origin               geo.Point   `json:"origin"`
	Destination          geo.Point   `json:"destination"`
	DestinationName      string      `json:"destination_name,omitempty"`
	Stops                []Stop      `json:"stops"`
	TotalDistanceMeters  float64     `json:"total_distance_meters"`
	TotalDurationSeconds float64     `json:"total_duration_seconds"`
	Polyline             string      `json:"polyline,omitempty"`
	Status               RouteStatus `json:"status"`
}

// CanTransitionTo reports whether the status change is legal.
func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	switch s {
	case RouteStatusPlanning:
		return next == RouteStatusConfirmed || next == RouteStatusCancelled
	case RouteStatusConfirmed:
		return next == RouteStatusActive || next == RouteStatusCancelled || next == RouteStatusPlanning
	case RouteStatusActive, RouteStatusCancelled:
		return false
	default:
		return false
	}
}
