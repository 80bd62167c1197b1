package detour

import (
	"context"
	"fmt"

	"waypilot/pkg/geo"
)

// CostFunc probes the routing provider for the marginal cost of adding
// candidate to the route that already visits via (in order). It returns the
// extra meters relative to the current route and the new total route length.
type CostFunc func(ctx context.Context, via []geo.Point, candidate geo.Point) (extraMeters, totalMeters float64, err error)

// OrderStops produces a visiting order for the candidates that approximately
// minimizes total added travel: stops are inserted greedily in order of
// increasing marginal cost, and the budget is recomputed after every
// acceptance because the base distance grows with each accepted stop.
//
// A candidate whose marginal cost classifies NOT_RECOMMENDED at the moment of
// its turn is kept in the result with Flagged set; exclusion is the
// confirmation flow's decision, never this function's. When no candidate at
// all fits the budget the full flagged set is returned together with
// ErrRouteInfeasible.
func OrderStops(ctx context.Context, baseMeters float64, candidates []Candidate, costFn CostFunc) ([]Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ordered := make([]Candidate, 0, len(candidates))
	remaining := make([]Candidate, len(candidates))
	copy(remaining, candidates)

	base := baseMeters
	var via []geo.Point
	accepted := 0

	for len(remaining) > 0 {
		budget := ComputeBudget(base)

		// Probe the marginal cost of every remaining candidate against the
		// current route and pick the cheapest.
		bestIdx := -1
		var bestExtra, bestTotal float64
		for i, cand := range remaining {
			extra, total, err := costFn(ctx, via, cand.Location)
			if err != nil {
				return nil, fmt.Errorf("insertion cost probe for %q: %w", cand.Name, err)
			}
			remaining[i].ExtraMeters = extra
			remaining[i].Classification = ClassifyExtra(extra, budget.AllowedExtraMeters)
			if bestIdx == -1 || extra < bestExtra {
				bestIdx, bestExtra, bestTotal = i, extra, total
			}
		}

		best := remaining[bestIdx]
		if best.Classification == ClassificationNotRecommended {
			// The cheapest remaining stop is already over budget; everything
			// left is flagged with its current classification and retained.
			for _, cand := range remaining {
				cand.Flagged = true
				ordered = append(ordered, cand)
			}
			break
		}

		via = append(via, best.Location)
		base = bestTotal
		ordered = append(ordered, best)
		accepted++
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	if accepted == 0 {
		return ordered, ErrRouteInfeasible
	}
	return ordered, nil
}
