package place

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"waypilot/pkg/googlemaps"
	"waypilot/pkg/log"
)

const (
	cacheSize = 500
	cacheTTL  = 5 * time.Minute

	// cellSize coarsens cache keys to ~1km so nearby searches share entries.
	cellSize = 0.01
)

// googleProvider implements Provider on top of the Google Places API with a
// short-lived result cache.
type googleProvider struct {
	client *googlemaps.Client
	cache  *expirable.LRU[string, []Place]
	l      log.Logger
}

// NewGoogleProvider creates a Places-backed provider.
func NewGoogleProvider(client *googlemaps.Client, l log.Logger) Provider {
	return &googleProvider{
		client: client,
		cache:  expirable.NewLRU[string, []Place](cacheSize, nil, cacheTTL),
		l:      l,
	}
}

// cacheKey buckets the location into a grid cell so small movements reuse
// cached results.
func cacheKey(input SearchInput) string {
	cellLat := int(input.Location.Lat / cellSize)
	cellLng := int(input.Location.Lng / cellSize)
	return fmt.Sprintf("%s|%s|%d|%d|%d", input.Keyword, input.Category, input.RadiusMeters, cellLat, cellLng)
}

func (p *googleProvider) Search(ctx context.Context, input SearchInput) ([]Place, error) {
	key := cacheKey(input)
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	results, err := p.client.NearbySearch(ctx, googlemaps.NearbySearchRequest{
		Location:     input.Location,
		RadiusMeters: input.RadiusMeters,
		Keyword:      input.Keyword,
		Category:     input.Category,
	})
	if err != nil {
		if errors.Is(err, googlemaps.ErrZeroResults) {
			return nil, ErrNoResults
		}
		p.l.Errorf(ctx, "place.Search NearbySearch: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	places := make([]Place, len(results))
	for i, r := range results {
		places[i] = Place{
			ID:       r.PlaceID,
			Name:     r.Name,
			Address:  r.Address,
			Location: r.Location,
			Rating:   r.Rating,
		}
	}

	p.cache.Add(key, places)
	return places, nil
}
