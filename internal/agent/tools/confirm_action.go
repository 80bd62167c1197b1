package tools

import (
	"context"

	"waypilot/internal/agent"
)

// ConfirmActionTool suspends the execution loop with a yes/no question.
type ConfirmActionTool struct{}

// NewConfirmActionTool creates a new confirm action tool.
func NewConfirmActionTool() agent.Tool {
	return &ConfirmActionTool{}
}

func (t *ConfirmActionTool) Name() string {
	return "confirm_action"
}

func (t *ConfirmActionTool) Description() string {
	return "Ask the user to confirm an action before executing it. Use before committing to a route the user has not approved."
}

func (t *ConfirmActionTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "What to confirm, phrased as a yes/no question",
			},
		},
		"required": []string{"question"},
	}
}

func (t *ConfirmActionTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	question, ok := params["question"].(string)
	if !ok || question == "" {
		return agent.Fail(agent.MissingParamError("question"))
	}

	return agent.AskUser(question, []string{"yes", "no"})
}
