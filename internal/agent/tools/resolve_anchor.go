package tools

import (
	"context"
	"errors"

	"waypilot/internal/agent"
	"waypilot/internal/anchor"
)

// ResolveAnchorTool resolves a user-named saved location to coordinates.
type ResolveAnchorTool struct {
	uc anchor.UseCase
}

// NewResolveAnchorTool creates a new resolve anchor tool.
func NewResolveAnchorTool(uc anchor.UseCase) agent.Tool {
	return &ResolveAnchorTool{uc: uc}
}

func (t *ResolveAnchorTool) Name() string {
	return "resolve_anchor"
}

func (t *ResolveAnchorTool) Description() string {
	return "Resolve a saved named location like 'home' or 'work' to coordinates."
}

func (t *ResolveAnchorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Anchor name, e.g. 'home'",
			},
		},
		"required": []string{"name"},
	}
}

func (t *ResolveAnchorTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return agent.Fail(agent.MissingParamError("name"))
	}

	userID, _ := agent.SessionIDFromContext(ctx)

	output, err := t.uc.Resolve(ctx, anchor.ResolveInput{UserID: userID, Name: name})
	if err != nil {
		if errors.Is(err, anchor.ErrAnchorNotFound) {
			return agent.Fail(agent.NewTerminalError("no saved location named "+name, err))
		}
		return agent.Fail(agent.NewRetryableError("anchor lookup failed", err))
	}

	a := output.Anchor
	return agent.Succeed(map[string]interface{}{
		"name":    a.Name,
		"address": a.Address,
		"lat":     a.Location.Lat,
		"lng":     a.Location.Lng,
	})
}
