package tools

import (
	"context"
	"errors"

	"waypilot/internal/agent"
	"waypilot/internal/model"
	"waypilot/internal/session"
)

// StartNavigationTool activates the session's current route.
type StartNavigationTool struct {
	store *session.Store
}

// NewStartNavigationTool creates a new start navigation tool.
func NewStartNavigationTool(store *session.Store) agent.Tool {
	return &StartNavigationTool{store: store}
}

func (t *StartNavigationTool) Name() string {
	return "start_navigation"
}

func (t *StartNavigationTool) Description() string {
	return "Start turn-by-turn navigation on the current route. Only call after the user has approved the route."
}

func (t *StartNavigationTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *StartNavigationTool) Execute(ctx context.Context, params map[string]interface{}) agent.ToolResult {
	sessionID, ok := agent.SessionIDFromContext(ctx)
	if !ok {
		return agent.Fail(agent.NewTerminalError("no session available", nil))
	}

	sess := t.store.Get(sessionID)
	if sess == nil || sess.CurrentRoute == nil {
		return agent.Fail(agent.NewTerminalError("no route to navigate", session.ErrNoRoute))
	}

	// A still-planning route is confirmed implicitly: reaching this tool
	// means the user approved it in conversation.
	if sess.CurrentRoute.Status == model.RouteStatusPlanning {
		if err := t.store.UpdateRouteStatus(sessionID, model.RouteStatusConfirmed); err != nil {
			return agent.Fail(agent.NewTerminalError("route cannot be confirmed", err))
		}
	}

	if err := t.store.UpdateRouteStatus(sessionID, model.RouteStatusActive); err != nil {
		if errors.Is(err, session.ErrIllegalTransition) {
			return agent.Fail(agent.NewTerminalError("route is not in a startable state", err))
		}
		return agent.Fail(agent.NewTerminalError("navigation could not start", err))
	}

	return agent.Succeed(map[string]interface{}{
		"route_id": sess.CurrentRoute.ID,
		"status":   string(model.RouteStatusActive),
	})
}
