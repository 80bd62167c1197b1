package detour

import "waypilot/pkg/geo"

// Budget tiers: shorter base routes tolerate a larger relative detour.
const (
	TierShortMaxMeters  = 2 * geo.MetersPerMile  // <= 2 miles
	TierMediumMaxMeters = 10 * geo.MetersPerMile // 2-10 miles

	TierShortPercent  = 0.10
	TierMediumPercent = 0.07
	TierLongPercent   = 0.05

	// Absolute bounds on the allowance regardless of tier.
	AllowanceFloorMeters   = 400.0
	AllowanceCeilingMeters = 1600.0

	// NoDetourMaxMeters is measurement noise, not a real detour.
	NoDetourMaxMeters = 50.0

	// MinimalFraction of the allowance still counts as a minimal detour.
	MinimalFraction = 0.25
)

// ComputeBudget derives the detour allowance from the base route length.
func ComputeBudget(baseMeters float64) Budget {
	var percent float64
	switch {
	case baseMeters <= TierShortMaxMeters:
		percent = TierShortPercent
	case baseMeters <= TierMediumMaxMeters:
		percent = TierMediumPercent
	default:
		percent = TierLongPercent
	}

	allowed := baseMeters * percent
	if allowed < AllowanceFloorMeters {
		allowed = AllowanceFloorMeters
	}
	if allowed > AllowanceCeilingMeters {
		allowed = AllowanceCeilingMeters
	}

	return Budget{
		BaseMeters:         baseMeters,
		AllowedExtraMeters: allowed,
	}
}

// ClassifyExtra buckets an insertion cost against an allowance.
// The result is a non-decreasing step function of extraMeters.
func ClassifyExtra(extraMeters, allowedExtraMeters float64) Classification {
	switch {
	case extraMeters <= NoDetourMaxMeters:
		return ClassificationNoDetour
	case extraMeters <= allowedExtraMeters*MinimalFraction:
		return ClassificationMinimal
	case extraMeters <= allowedExtraMeters:
		return ClassificationAcceptable
	default:
		return ClassificationNotRecommended
	}
}
