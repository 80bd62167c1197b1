package agent

import (
	"context"

	"waypilot/pkg/llmprovider"
)

// Tool represents an agent capability that can be called by the LLM.
type Tool interface {
	// Name returns the tool name (used in function calling).
	Name() string

	// Description returns what the tool does (for the LLM).
	Description() string

	// Parameters returns a JSON schema for the tool parameters.
	Parameters() map[string]interface{}

	// Execute runs the tool with the given parameters. Faults are reported
	// through the result, never as a Go error: the loop always continues.
	Execute(ctx context.Context, params map[string]interface{}) ToolResult
}

// ToolResult is the uniform outcome of one tool call.
type ToolResult struct {
	Success bool
	Data    interface{}
	Err     *ToolError

	// NeedsUserInput suspends the execution loop: the question (and any
	// options) go to the user and the turn ends awaiting a reply.
	NeedsUserInput bool
	Question       string
	Options        []string
}

// Succeed wraps data in a successful result.
func Succeed(data interface{}) ToolResult {
	return ToolResult{Success: true, Data: data}
}

// Fail wraps an error in a failed result.
func Fail(err *ToolError) ToolResult {
	return ToolResult{Err: err}
}

// AskUser produces a suspended result carrying a question for the user.
func AskUser(question string, options []string) ToolResult {
	return ToolResult{
		Success:        true,
		NeedsUserInput: true,
		Question:       question,
		Options:        options,
	}
}

// ForModel renders the result as a payload the model can reason over.
func (r ToolResult) ForModel() map[string]interface{} {
	out := map[string]interface{}{
		"success": r.Success,
	}
	if r.Data != nil {
		out["data"] = r.Data
	}
	if r.Err != nil {
		out["error"] = r.Err.Message
		out["error_kind"] = string(r.Err.Kind)
	}
	return out
}

// ToFunctionDefinition converts one tool to the LLM function calling format.
func ToFunctionDefinition(t Tool) llmprovider.Tool {
	return llmprovider.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}
