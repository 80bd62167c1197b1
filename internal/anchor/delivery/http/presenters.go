package http

import (
	"time"

	"waypilot/internal/anchor"
	"waypilot/pkg/geo"
)

// --- Request DTOs ---

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r *locationReq) toPoint() geo.Point {
	if r == nil {
		return geo.Point{}
	}
	return geo.Point{Lat: r.Lat, Lng: r.Lng}
}

type setReq struct {
	UserID   string       `json:"user_id" binding:"required"`
	Name     string       `json:"name"    binding:"required,min=1,max=64"`
	Address  string       `json:"address" binding:"max=512"`
	Location *locationReq `json:"location"`
}

func (r setReq) validate() error { return nil }

func (r setReq) toInput() anchor.SetInput {
	return anchor.SetInput{
		UserID:   r.UserID,
		Name:     r.Name,
		Address:  r.Address,
		Location: r.Location.toPoint(),
	}
}

// --- Response DTOs ---

type anchorResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newAnchorResp(a anchor.Anchor) anchorResp {
	return anchorResp{
		ID:        a.ID,
		Name:      a.Name,
		Address:   a.Address,
		Lat:       a.Location.Lat,
		Lng:       a.Location.Lng,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type setResp struct {
	Anchor anchorResp `json:"anchor"`
}

func (h *handler) newSetResp(out anchor.SetOutput) setResp {
	return setResp{Anchor: newAnchorResp(out.Anchor)}
}

type resolveResp struct {
	Anchor anchorResp `json:"anchor"`
}

func (h *handler) newResolveResp(out anchor.ResolveOutput) resolveResp {
	return resolveResp{Anchor: newAnchorResp(out.Anchor)}
}

type listResp struct {
	Anchors []anchorResp `json:"anchors"`
}

func (h *handler) newListResp(out anchor.ListOutput) listResp {
	anchors := make([]anchorResp, len(out.Anchors))
	for i, a := range out.Anchors {
		anchors[i] = newAnchorResp(a)
	}
	return listResp{Anchors: anchors}
}
