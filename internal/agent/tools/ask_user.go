package tools

import (
	"context"

	"waypilot/internal/agent"
)

// AskUserTool suspends the execution loop with a clarification question.
type AskUserTool struct{}

// NewAskUserTool creates a new ask user tool.
func NewAskUserTool() agent.Tool {
	return &AskUserTool{}
}

func (t *AskUserTool) Name() string {
	return "ask_user"
}

func (t *AskUserTool) Description() string {
	return "Ask the user a clarifying question, optionally with a short list of choices. Use when the request is ambiguous."
}

func (t *AskUserTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "The question to ask",
			},
			"options": map[string]interface{}{
				"type":        "array",
				"description": "Optional choices to present",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"question"},
	}
}

func (t *AskUserTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	question, ok := params["question"].(string)
	if !ok || question == "" {
		return agent.Fail(agent.MissingParamError("question"))
	}

	var options []string
	if raw, ok := params["options"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				options = append(options, s)
			}
		}
	}

	return agent.AskUser(question, options)
}
