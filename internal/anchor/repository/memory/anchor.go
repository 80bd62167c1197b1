package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"waypilot/internal/anchor"
	"waypilot/internal/anchor/repository"
)

func key(userID, name string) string {
	return userID + "/" + strings.ToLower(name)
}

// UpsertAnchor creates or replaces the anchor named (UserID, Name).
func (r *implRepository) UpsertAnchor(ctx context.Context, opt repository.UpsertAnchorOptions) (anchor.Anchor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	k := key(opt.UserID, opt.Name)

	a, ok := r.anchors[k]
	if !ok {
		a = anchor.Anchor{
			ID:        uuid.NewString(),
			UserID:    opt.UserID,
			CreatedAt: now,
		}
	}
	a.Name = opt.Name
	a.Address = opt.Address
	a.Location = opt.Location
	a.UpdatedAt = now

	r.anchors[k] = a
	return a, nil
}

// GetOneAnchor fetches by the (UserID, Name) natural key, case-insensitive
// on the name.
func (r *implRepository) GetOneAnchor(ctx context.Context, opt repository.GetOneAnchorOptions) (anchor.Anchor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.anchors[key(opt.UserID, opt.Name)]
	if !ok {
		return anchor.Anchor{}, repository.ErrNotFound
	}
	return a, nil
}

// ListAnchors returns a user's anchors sorted by name.
func (r *implRepository) ListAnchors(ctx context.Context, opt repository.ListAnchorsOptions) ([]anchor.Anchor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []anchor.Anchor
	for _, a := range r.anchors {
		if a.UserID == opt.UserID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteAnchor removes an anchor. Deleting a missing anchor is not an error.
func (r *implRepository) DeleteAnchor(ctx context.Context, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.anchors, key(userID, name))
	return nil
}
