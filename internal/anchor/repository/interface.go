package repository

import (
	"context"

	"waypilot/internal/anchor"
)

// Repository is the composed interface for the anchor data store.
type Repository interface {
	AnchorRepository
}

// AnchorRepository defines all data access methods for the Anchor entity.
type AnchorRepository interface {
	UpsertAnchor(ctx context.Context, opt UpsertAnchorOptions) (anchor.Anchor, error)
	GetOneAnchor(ctx context.Context, opt GetOneAnchorOptions) (anchor.Anchor, error)
	ListAnchors(ctx context.Context, opt ListAnchorsOptions) ([]anchor.Anchor, error)
	DeleteAnchor(ctx context.Context, userID, name string) error
}
