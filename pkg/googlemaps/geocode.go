package googlemaps

import (
	"context"
	"net/url"

	"waypilot/pkg/geo"
)

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "geocode", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("geocode", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrZeroResults
	}

	first := resp.Results[0]
	return &GeocodeResult{
		FormattedAddress: first.FormattedAddress,
		Location: geo.Point{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, nil
}
