package usecase

import (
	"context"

	"waypilot/internal/anchor/repository"
	"waypilot/pkg/googlemaps"
	"waypilot/pkg/log"
)

// Geocoder resolves a raw address to coordinates. Satisfied by
// *googlemaps.Client.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*googlemaps.GeocodeResult, error)
}

// implUseCase is the private implementation of anchor.UseCase.
type implUseCase struct {
	repo     repository.Repository
	geocoder Geocoder
	l        log.Logger
}

// New creates a new anchor UseCase implementation. geocoder may be nil when
// no Maps key is configured; Set then requires explicit coordinates.
func New(repo repository.Repository, geocoder Geocoder, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:     repo,
		geocoder: geocoder,
		l:        l,
	}
}
