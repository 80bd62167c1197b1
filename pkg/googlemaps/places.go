package googlemaps

import (
	"context"
	"net/url"
	"strconv"

	"waypilot/pkg/geo"
)

// NearbySearch finds places around a location by keyword and/or category.
func (c *Client) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]Place, error) {
	params := url.Values{}
	params.Set("location", formatPoint(req.Location))
	radius := req.RadiusMeters
	if radius <= 0 {
		radius = 2000
	}
	params.Set("radius", strconv.Itoa(radius))
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.Category != "" {
		params.Set("type", req.Category)
	}

	var resp placesResponse
	if err := c.get(ctx, "place/nearbysearch", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("places", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.Vicinity,
			Location: geo.Point{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Types:  r.Types,
			Rating: r.Rating,
		})
	}

	return places, nil
}
