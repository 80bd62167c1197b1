package googlemaps

import (
	"errors"
	"net/http"
	"time"

	"waypilot/pkg/geo"
)

const (
	// DefaultBaseURL is the Google Maps web services endpoint
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 15 * time.Second
)

// Config holds Maps client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("googlemaps: API key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// DirectionsRequest asks for a route from origin to destination through
// the given waypoints, in order.
type DirectionsRequest struct {
	Origin      geo.Point
	Destination geo.Point
	Waypoints   []geo.Point
}

// Route is a single computed route.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Polyline        string
}

// DirectionsResult is the decoded directions response.
type DirectionsResult struct {
	Routes []Route
}

// NearbySearchRequest searches for places around a location.
type NearbySearchRequest struct {
	Location     geo.Point
	RadiusMeters int
	Keyword      string
	Category     string // Places API type, e.g. "cafe"
}

// Place is a single place search result.
type Place struct {
	PlaceID  string
	Name     string
	Address  string
	Location geo.Point
	Types    []string
	Rating   float64
}

// GeocodeResult is a resolved address.
type GeocodeResult struct {
	FormattedAddress string
	Location         geo.Point
}

// --- wire formats ---

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
	ErrorMessage string `json:"error_message"`
}

type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types  []string `json:"types"`
		Rating float64  `json:"rating"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}
