package orchestrator

// Log prefixes
const (
	LogPrefixProcessRequest = "internal.agent.orchestrator.ProcessRequest"
	LogPrefixToolLoop       = "internal.agent.orchestrator.toolLoop"
)

// Configuration
const (
	// MaxToolCalls bounds one turn's execution loop.
	MaxToolCalls = 8

	// MaxHistoryTurns is how many past turns are summarized into the prompt.
	MaxHistoryTurns = 10

	// LoopTemperature keeps tool selection deterministic-ish.
	LoopTemperature = 0.2
)

// System prompt
const (
	SystemPromptAgent = `You are an in-car errand assistant. The user describes where they want to go and what they want to pick up on the way; you plan the route for them.

Rules:
1. Resolve named places like "home" or "work" with resolve_anchor before routing.
2. Find concrete stop locations with search_places before adding them to a route.
3. Build the route with compute_route once the destination and stops have coordinates. It orders the stops and checks each against the detour budget.
4. If anything is ambiguous (which Starbucks, which destination), ask with ask_user instead of guessing.
5. Never call start_navigation unless the user has approved the route.
6. When the route is done, answer with one short spoken-style sentence summarizing it. Mention any stop the route computation flagged as a large detour.`
)

// Clarification reasons
const (
	ReasonLowConfidence = "low_confidence"
	ReasonConfirmIntent = "confirm_intent"
	ReasonToolQuestion  = "tool_question"
	ReasonFlaggedStops  = "flagged_stops"
)

// Canned user-facing messages
const (
	MsgLowConfidenceRetry = "Sorry, I didn't quite catch that. Could you say it another way?"
	MsgStillUnclear       = "I'm still not sure what you need. Try telling me the destination first, like \"take me home\"."
	MsgCancelled          = "Okay, never mind."
	MsgRouteInfeasible    = "None of those stops fit on this route without a big detour. Want to go direct, or pick a different stop?"
	MsgMaxToolCalls       = "That took more steps than I can handle in one go. Could you break it into smaller requests?"
)

// Error messages
const (
	ErrMsgLoopLLM       = "tool loop model error at step %d"
	ErrMsgEmptyResponse = "empty model response"
)
