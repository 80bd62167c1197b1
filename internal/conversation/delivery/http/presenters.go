package http

import (
	"waypilot/internal/agent/orchestrator"
	"waypilot/internal/model"
	"waypilot/pkg/geo"
)

// --- Request DTOs ---

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type postMessageReq struct {
	SessionID string       `json:"session_id"`
	Message   string       `json:"message" binding:"required,min=1,max=1000"`
	Location  *locationReq `json:"location"`
}

func (r postMessageReq) validate() error { return nil }

func (r postMessageReq) location() geo.Point {
	if r.Location == nil {
		return geo.Point{}
	}
	return geo.Point{Lat: r.Location.Lat, Lng: r.Location.Lng}
}

// --- Response DTOs ---

type stopResp struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category,omitempty"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ExtraMeters    float64 `json:"extra_meters"`
	Classification string  `json:"classification"`
	Flagged        bool    `json:"flagged"`
}

type routeResp struct {
	ID                   string     `json:"id"`
	DestinationName      string     `json:"destination_name,omitempty"`
	DestinationLat       float64    `json:"destination_lat"`
	DestinationLng       float64    `json:"destination_lng"`
	Stops                []stopResp `json:"stops"`
	TotalDistanceMeters  float64    `json:"total_distance_meters"`
	TotalDurationSeconds float64    `json:"total_duration_seconds"`
	Polyline             string     `json:"polyline,omitempty"`
	Status               string     `json:"status"`
}

func newRouteResp(route *model.Route) *routeResp {
	if route == nil {
		return nil
	}
	stops := make([]stopResp, len(route.Stops))
	for i, s := range route.Stops {
		stops[i] = stopResp{
			ID:             s.ID,
			Name:           s.Name,
			Category:       s.Category,
			Lat:            s.Location.Lat,
			Lng:            s.Location.Lng,
			ExtraMeters:    s.ExtraMeters,
			Classification: string(s.Classification),
			Flagged:        s.Flagged,
		}
	}
	return &routeResp{
		ID:                   route.ID,
		DestinationName:      route.DestinationName,
		DestinationLat:       route.Destination.Lat,
		DestinationLng:       route.Destination.Lng,
		Stops:                stops,
		TotalDistanceMeters:  route.TotalDistanceMeters,
		TotalDurationSeconds: route.TotalDurationSeconds,
		Polyline:             route.Polyline,
		Status:               string(route.Status),
	}
}

type postMessageResp struct {
	SessionID             string     `json:"session_id"`
	Completed             bool       `json:"completed"`
	Response              string     `json:"response"`
	ClarificationQuestion string     `json:"clarification_question,omitempty"`
	ClarificationOptions  []string   `json:"clarification_options,omitempty"`
	Route                 *routeResp `json:"route,omitempty"`
	Intent                string     `json:"intent"`
	Confidence            float64    `json:"confidence"`
	Escalated             bool       `json:"escalated"`
}

func (h *handler) newPostMessageResp(out orchestrator.Outcome) postMessageResp {
	return postMessageResp{
		SessionID:             out.SessionID,
		Completed:             out.Completed,
		Response:              out.Response,
		ClarificationQuestion: out.ClarificationQuestion,
		ClarificationOptions:  out.ClarificationOptions,
		Route:                 newRouteResp(out.Route),
		Intent:                string(out.Intent),
		Confidence:            out.Confidence,
		Escalated:             out.Escalated,
	}
}
