package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"waypilot/internal/anchor"
	repo "waypilot/internal/anchor/repository"
)

// Set creates or replaces a named anchor. A bare address is geocoded first.
func (uc *implUseCase) Set(ctx context.Context, input anchor.SetInput) (anchor.SetOutput, error) {
	name := strings.TrimSpace(input.Name)
	if input.UserID == "" || name == "" {
		return anchor.SetOutput{}, anchor.ErrInvalidPayload
	}

	loc := input.Location
	address := input.Address
	if loc.IsZero() {
		if address == "" {
			return anchor.SetOutput{}, anchor.ErrInvalidPayload
		}
		if uc.geocoder == nil {
			return anchor.SetOutput{}, anchor.ErrUnresolvable
		}
		result, err := uc.geocoder.Geocode(ctx, address)
		if err != nil {
			uc.l.Errorf(ctx, "uc.Set Geocode: %v", err)
			return anchor.SetOutput{}, fmt.Errorf("%w: %v", anchor.ErrUnresolvable, err)
		}
		loc = result.Location
		address = result.FormattedAddress
	}

	a, err := uc.repo.UpsertAnchor(ctx, repo.UpsertAnchorOptions{
		UserID:   input.UserID,
		Name:     name,
		Address:  address,
		Location: loc,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Set UpsertAnchor: %v", err)
		return anchor.SetOutput{}, err
	}

	return anchor.SetOutput{Anchor: a}, nil
}

// Resolve looks up an anchor by name for a user.
func (uc *implUseCase) Resolve(ctx context.Context, input anchor.ResolveInput) (anchor.ResolveOutput, error) {
	a, err := uc.repo.GetOneAnchor(ctx, repo.GetOneAnchorOptions{
		UserID: input.UserID,
		Name:   strings.TrimSpace(input.Name),
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return anchor.ResolveOutput{}, anchor.ErrAnchorNotFound
		}
		uc.l.Errorf(ctx, "uc.Resolve GetOneAnchor: %v", err)
		return anchor.ResolveOutput{}, err
	}
	return anchor.ResolveOutput{Anchor: a}, nil
}

// List returns all of a user's anchors.
func (uc *implUseCase) List(ctx context.Context, input anchor.ListInput) (anchor.ListOutput, error) {
	anchors, err := uc.repo.ListAnchors(ctx, repo.ListAnchorsOptions{UserID: input.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListAnchors: %v", err)
		return anchor.ListOutput{}, err
	}
	return anchor.ListOutput{Anchors: anchors}, nil
}

// Delete removes an anchor by name.
func (uc *implUseCase) Delete(ctx context.Context, userID, name string) error {
	if err := uc.repo.DeleteAnchor(ctx, userID, strings.TrimSpace(name)); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteAnchor: %v", err)
		return err
	}
	return nil
}
