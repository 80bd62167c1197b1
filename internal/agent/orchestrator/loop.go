package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"waypilot/internal/model"
	"waypilot/internal/session"
	"waypilot/pkg/llmprovider"
)

// runToolLoop drives the reason/act/observe loop for one turn until the model
// produces a final reply, a tool asks the user something, or the step budget
// runs out.
func (o *Orchestrator) runToolLoop(ctx context.Context, sess *session.Session, base Outcome, userMessage string) (Outcome, error) {
	id := sess.ID

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: o.systemPrompt(sess)}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: userMessage}}},
		},
		Tools:       o.registry.ToFunctionDefinitions(),
		Temperature: LoopTemperature,
	}

	var toolCalls []session.ToolInvocation

	for step := 0; step < MaxToolCalls; step++ {
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return Outcome{}, fmt.Errorf(ErrMsgLoopLLM+": %w", step, err)
		}

		fc := firstFunctionCall(resp)
		if fc == nil {
			text := firstText(resp)
			if text == "" {
				return Outcome{}, errors.New(ErrMsgEmptyResponse)
			}
			return o.finishTurn(ctx, sess, base, text, toolCalls), nil
		}

		o.l.Infof(ctx, "%s: step %d calling %s", LogPrefixToolLoop, step+1, fc.Name)
		result := o.registry.Execute(ctx, fc.Name, fc.Args)
		toolCalls = append(toolCalls, session.ToolInvocation{
			Name:    fc.Name,
			Params:  fc.Args,
			Success: result.Success,
			Result:  result.Data,
		})

		if result.NeedsUserInput {
			o.store.SetPendingClarification(id, result.Question, result.Options, ReasonToolQuestion)
			o.store.RecordAssistantTurn(id, result.Question, toolCalls)

			base.Completed = false
			base.Response = result.Question
			base.ClarificationQuestion = result.Question
			base.ClarificationOptions = result.Options
			base.Route = sess.CurrentRoute
			return base, nil
		}

		req.Messages = append(req.Messages,
			llmprovider.Message{
				Role:  "model",
				Parts: []llmprovider.Part{{FunctionCall: fc}},
			},
			llmprovider.Message{
				Role: "function",
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					Name:     fc.Name,
					Response: result.ForModel(),
				}}},
			},
		)
	}

	o.l.Warnf(ctx, "%s: exceeded %d tool calls", LogPrefixToolLoop, MaxToolCalls)
	return o.finishTurn(ctx, sess, base, MsgMaxToolCalls, toolCalls), nil
}

// finishTurn closes the loop with the model's final reply. A freshly planned
// route with flagged stops intercepts the reply with a confirmation question.
func (o *Orchestrator) finishTurn(ctx context.Context, sess *session.Session, base Outcome, text string, toolCalls []session.ToolInvocation) Outcome {
	id := sess.ID
	route := sess.CurrentRoute

	if route != nil && routeNeedsFlagConfirmation(route) {
		question := flaggedStopsQuestion(route)
		o.store.SetPendingClarification(id, question, []string{"yes", "no"}, ReasonFlaggedStops)
		o.store.RecordAssistantTurn(id, question, toolCalls)

		base.Completed = false
		base.Response = question
		base.ClarificationQuestion = question
		base.ClarificationOptions = []string{"yes", "no"}
		base.Route = route
		return base
	}

	o.store.RecordAssistantTurn(id, text, toolCalls)
	base.Completed = true
	base.Response = text
	base.Route = route
	return base
}

func (o *Orchestrator) systemPrompt(sess *session.Session) string {
	var b strings.Builder
	b.WriteString(SystemPromptAgent)
	b.WriteString("\n\nAvailable tools:\n")
	b.WriteString(o.registry.PromptDescriptions())

	if !sess.UserLocation.IsZero() {
		fmt.Fprintf(&b, "\n\nUser location: %.5f,%.5f", sess.UserLocation.Lat, sess.UserLocation.Lng)
	}
	if len(sess.ActiveEntities) > 0 {
		b.WriteString("\nKnown context:")
		for k, v := range sess.ActiveEntities {
			fmt.Fprintf(&b, " %s=%s;", k, v)
		}
	}
	if summary := historyTail(sess); summary != "" {
		b.WriteString("\n\nRecent conversation:\n")
		b.WriteString(summary)
	}
	return b.String()
}

func historyTail(sess *session.Session) string {
	n := len(sess.History)
	if n == 0 {
		return ""
	}
	start := n - MaxHistoryTurns
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, turn := range sess.History[start:] {
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func firstFunctionCall(resp *llmprovider.Response) *llmprovider.FunctionCall {
	for _, part := range resp.Content.Parts {
		if part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return strings.TrimSpace(part.Text)
		}
	}
	return ""
}

// routeNeedsFlagConfirmation reports whether the route still carries
// unapproved over-budget stops.
func routeNeedsFlagConfirmation(route *model.Route) bool {
	if route.Status != model.RouteStatusPlanning {
		return false
	}
	for _, s := range route.Stops {
		if s.Flagged {
			return true
		}
	}
	return false
}

// flaggedStopsQuestion phrases the over-budget confirmation. When every stop
// is flagged the route is infeasible as asked.
func flaggedStopsQuestion(route *model.Route) string {
	var flagged []string
	allFlagged := true
	for _, s := range route.Stops {
		if s.Flagged {
			flagged = append(flagged, s.Name)
		} else {
			allFlagged = false
		}
	}
	if allFlagged {
		return MsgRouteInfeasible
	}
	return fmt.Sprintf("Heads up: %s would add a big detour. Keep it anyway?", strings.Join(flagged, " and "))
}
