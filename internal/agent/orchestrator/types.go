package orchestrator

import (
	"context"

	"waypilot/internal/model"
	"waypilot/internal/nlu"
	"waypilot/pkg/llmprovider"
)

// Classifier is the NLU surface the orchestrator consumes. Satisfied by
// *nlu.Classifier.
type Classifier interface {
	Classify(ctx context.Context, utterance, contextSummary string) (nlu.Result, error)
	ClassifyAdvanced(ctx context.Context, utterance, contextSummary string) (nlu.Result, error)
}

// Generator is the conversational model driving the tool loop. Satisfied by
// *llmprovider.Manager.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Outcome is the result of one processed turn. A turn that ends with an open
// question to the user is not completed.
type Outcome struct {
	SessionID string
	Completed bool
	Response  string

	ClarificationQuestion string
	ClarificationOptions  []string

	Route *model.Route

	Intent     nlu.Intent
	Confidence float64
	Tier       nlu.Tier
	Escalated  bool
}
