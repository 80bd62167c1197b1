package nlu

// Intent is the closed set of user intentions the classifier can produce.
type Intent string

const (
	IntentNavigateWithStops Intent = "navigate_with_stops"
	IntentNavigateDirect    Intent = "navigate_direct"
	IntentFindPlace         Intent = "find_place"
	IntentAddStop           Intent = "add_stop"
	IntentRemoveStop        Intent = "remove_stop"
	IntentModifyRoute       Intent = "modify_route"
	IntentGetSuggestions    Intent = "get_suggestions"
	IntentSetAnchor         Intent = "set_anchor"
	IntentConfirm           Intent = "confirm"
	IntentDeny              Intent = "deny"
	IntentCancel            Intent = "cancel"
	IntentUnknown           Intent = "unknown"
)

var validIntents = map[Intent]bool{
	IntentNavigateWithStops: true,
	IntentNavigateDirect:    true,
	IntentFindPlace:         true,
	IntentAddStop:           true,
	IntentRemoveStop:        true,
	IntentModifyRoute:       true,
	IntentGetSuggestions:    true,
	IntentSetAnchor:         true,
	IntentConfirm:           true,
	IntentDeny:              true,
	IntentCancel:            true,
	IntentUnknown:           true,
}

// Result is the classifier output for one utterance. Ephemeral: produced per
// utterance, folded into the session turn, never persisted on its own.
type Result struct {
	Intent           Intent   `json:"intent"`
	Destination      string   `json:"destination,omitempty"`
	Stops            []string `json:"stops,omitempty"`
	Confidence       float64  `json:"confidence"`
	RequiresAdvanced bool     `json:"requires_advanced"`
}

// Tier buckets a confidence value into the policy the orchestrator applies.
type Tier string

const (
	TierHigh   Tier = "HIGH"   // act immediately
	TierMedium Tier = "MEDIUM" // confirm before acting
	TierLow    Tier = "LOW"    // disambiguate
)

// Tier thresholds.
const (
	HighConfidenceMin   = 0.80
	MediumConfidenceMin = 0.60
)

// TierFor maps a confidence value to its tier.
func TierFor(confidence float64) Tier {
	switch {
	case confidence >= HighConfidenceMin:
		return TierHigh
	case confidence >= MediumConfidenceMin:
		return TierMedium
	default:
		return TierLow
	}
}
