package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"waypilot/internal/agent"
	"waypilot/internal/model"
	"waypilot/internal/nlu"
	"waypilot/internal/session"
	"waypilot/pkg/geo"
)

// ProcessRequest runs one conversation turn. The per-session lock is held for
// the whole turn, so turns for the same session serialize.
//
// Everything the user can recover from in conversation resolves to an
// Outcome; only classifier unavailability and internal faults return errors.
func (o *Orchestrator) ProcessRequest(ctx context.Context, sessionID, utterance string, location geo.Point) (Outcome, error) {
	sess := o.store.Lock(sessionID)
	id := sess.ID
	defer o.store.Unlock(id)

	ctx = agent.WithSessionID(ctx, id)
	if !location.IsZero() {
		o.store.SetUserLocation(id, location)
	}

	// A stale clarification is expired here and the turn processed fresh.
	if o.store.IsAwaitingClarification(id) {
		return o.resumeClarification(ctx, sess, utterance)
	}

	result, err := o.classifier.Classify(ctx, utterance, o.store.HistorySummary(id, MaxHistoryTurns))
	if err != nil {
		return Outcome{}, fmt.Errorf("classify: %w", err)
	}
	return o.dispatch(ctx, sess, utterance, result)
}

// dispatch applies the escalation machine and the tier policy to a
// classified utterance.
func (o *Orchestrator) dispatch(ctx context.Context, sess *session.Session, utterance string, result nlu.Result) (Outcome, error) {
	id := sess.ID
	esc := &sess.Agent.Escalation
	escalated := false

	if result.RequiresAdvanced {
		esc.RequestAdvanced()
	}

	tier := nlu.TierFor(result.Confidence)
	if tier == nlu.TierLow && !esc.Escalating() {
		esc.RecordLow()
	}

	if esc.Escalating() {
		advanced, err := o.classifier.ClassifyAdvanced(ctx, utterance, o.store.HistorySummary(id, MaxHistoryTurns))
		if err != nil {
			return Outcome{}, fmt.Errorf("classify advanced: %w", err)
		}
		o.l.Infof(ctx, "%s: escalated, advanced intent=%s confidence=%.2f", LogPrefixProcessRequest, advanced.Intent, advanced.Confidence)
		esc.Reset()
		result = advanced
		tier = nlu.TierFor(result.Confidence)
		escalated = true
	}

	o.store.RecordClassifiedTurn(id, utterance, result)

	base := Outcome{
		SessionID:  id,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Tier:       tier,
		Escalated:  escalated,
	}

	switch tier {
	case nlu.TierLow:
		if escalated {
			// Even the advanced model is unsure; stop retrying.
			return o.suspend(base, MsgStillUnclear, nil, ReasonLowConfidence), nil
		}
		return o.suspend(base, MsgLowConfidenceRetry, nil, ReasonLowConfidence), nil

	case nlu.TierMedium:
		esc.Reset()
		question := confirmQuestion(result)
		return o.suspend(base, question, []string{"yes", "no"}, ReasonConfirmIntent), nil
	}

	// HIGH: act immediately.
	esc.Reset()
	return o.act(ctx, sess, base, utterance, result)
}

// act executes a high-confidence intent. Conversation-control intents are
// handled directly; everything else goes through the tool loop.
func (o *Orchestrator) act(ctx context.Context, sess *session.Session, base Outcome, utterance string, result nlu.Result) (Outcome, error) {
	id := sess.ID

	switch result.Intent {
	case nlu.IntentCancel:
		return o.cancel(ctx, sess, base), nil
	case nlu.IntentConfirm, nlu.IntentDeny:
		// Nothing is pending; acknowledge and move on.
		base.Completed = true
		base.Response = "Nothing to confirm right now. Where would you like to go?"
		o.store.RecordAssistantTurn(id, base.Response, nil)
		return base, nil
	}

	return o.runToolLoop(ctx, sess, base, utterance)
}

// cancel abandons the pending question and the current route.
func (o *Orchestrator) cancel(ctx context.Context, sess *session.Session, base Outcome) Outcome {
	id := sess.ID
	o.store.ClearPendingClarification(id)
	if sess.CurrentRoute != nil && sess.CurrentRoute.Status.CanTransitionTo(model.RouteStatusCancelled) {
		if err := o.store.UpdateRouteStatus(id, model.RouteStatusCancelled); err != nil {
			o.l.Warnf(ctx, "%s: cancel route: %v", LogPrefixProcessRequest, err)
		}
	}
	sess.Agent.Escalation.Reset()

	base.Completed = true
	base.Response = MsgCancelled
	o.store.RecordAssistantTurn(id, base.Response, nil)
	return base
}

// resumeClarification folds the user's reply into the open question.
func (o *Orchestrator) resumeClarification(ctx context.Context, sess *session.Session, utterance string) (Outcome, error) {
	id := sess.ID
	pending := sess.Pending
	reason := pending.Reason

	result, err := o.classifier.Classify(ctx, utterance, o.store.HistorySummary(id, MaxHistoryTurns))
	if err != nil {
		return Outcome{}, fmt.Errorf("classify reply: %w", err)
	}

	base := Outcome{
		SessionID:  id,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Tier:       nlu.TierFor(result.Confidence),
	}

	switch reason {
	case ReasonLowConfidence:
		// The reply is a rephrasing; process it as a fresh turn but keep the
		// low-confidence streak so repeated failures still escalate.
		o.store.ClearPendingClarification(id)
		return o.dispatch(ctx, sess, utterance, result)

	case ReasonConfirmIntent:
		o.store.ClearPendingClarification(id)
		switch result.Intent {
		case nlu.IntentConfirm:
			sess.Agent.Escalation.Reset()
			o.store.RecordClassifiedTurn(id, utterance, result)
			return o.runToolLoop(ctx, sess, base, confirmedRequest(sess))
		case nlu.IntentDeny, nlu.IntentCancel:
			o.store.RecordClassifiedTurn(id, utterance, result)
			return o.cancel(ctx, sess, base), nil
		default:
			// The user changed course; treat the reply as a new request.
			return o.dispatch(ctx, sess, utterance, result)
		}

	case ReasonFlaggedStops:
		o.store.ClearPendingClarification(id)
		switch result.Intent {
		case nlu.IntentConfirm:
			o.store.RecordClassifiedTurn(id, utterance, result)
			return o.acceptFlaggedStops(ctx, sess, base), nil
		case nlu.IntentDeny, nlu.IntentCancel:
			o.store.RecordClassifiedTurn(id, utterance, result)
			return o.dropFlaggedStops(ctx, sess, base), nil
		default:
			return o.dispatch(ctx, sess, utterance, result)
		}

	default: // ReasonToolQuestion
		switch result.Intent {
		case nlu.IntentDeny, nlu.IntentCancel:
			o.store.ClearPendingClarification(id)
			o.store.RecordClassifiedTurn(id, utterance, result)
			return o.cancel(ctx, sess, base), nil
		}
		// A selection: feed the question and the answer back to the loop.
		o.store.ClearPendingClarification(id)
		o.store.RecordClassifiedTurn(id, utterance, result)
		sess.Agent.Escalation.Reset()
		followup := fmt.Sprintf("Earlier you asked: %q. The user answered: %q. Continue from there.", pending.Question, utterance)
		return o.runToolLoop(ctx, sess, base, followup)
	}
}

// acceptFlaggedStops keeps the over-budget stops the user approved.
func (o *Orchestrator) acceptFlaggedStops(ctx context.Context, sess *session.Session, base Outcome) Outcome {
	id := sess.ID
	route := sess.CurrentRoute
	if route != nil {
		for i := range route.Stops {
			route.Stops[i].Flagged = false
		}
	}

	base.Completed = true
	base.Route = route
	base.Response = "Okay, keeping every stop. Ready to go when you are."
	o.store.RecordAssistantTurn(id, base.Response, nil)
	return base
}

// dropFlaggedStops removes the over-budget stops the user declined.
func (o *Orchestrator) dropFlaggedStops(ctx context.Context, sess *session.Session, base Outcome) Outcome {
	id := sess.ID
	route := sess.CurrentRoute
	if route != nil {
		kept := route.Stops[:0]
		for _, s := range route.Stops {
			if !s.Flagged {
				kept = append(kept, s)
			}
		}
		route.Stops = kept
	}

	base.Completed = true
	base.Route = route
	if route != nil && len(route.Stops) == 0 {
		base.Response = "Dropped them. Heading straight to your destination."
	} else {
		base.Response = "Dropped the long detours and kept the rest."
	}
	o.store.RecordAssistantTurn(id, base.Response, nil)
	return base
}

// suspend stores the open question and ends the turn awaiting a reply.
func (o *Orchestrator) suspend(base Outcome, question string, options []string, reason string) Outcome {
	o.store.SetPendingClarification(base.SessionID, question, options, reason)
	o.store.RecordAssistantTurn(base.SessionID, question, nil)

	base.Completed = false
	base.Response = question
	base.ClarificationQuestion = question
	base.ClarificationOptions = options
	return base
}

// confirmQuestion paraphrases a medium-confidence parse back to the user.
func confirmQuestion(result nlu.Result) string {
	var b strings.Builder
	b.WriteString("Just to check: ")
	switch result.Intent {
	case nlu.IntentNavigateDirect:
		b.WriteString("you want to go to ")
		b.WriteString(orPlaceholder(result.Destination, "that destination"))
	case nlu.IntentNavigateWithStops:
		b.WriteString("you want to go to ")
		b.WriteString(orPlaceholder(result.Destination, "that destination"))
		if len(result.Stops) > 0 {
			b.WriteString(" stopping at ")
			b.WriteString(strings.Join(result.Stops, " and "))
		}
	case nlu.IntentAddStop:
		b.WriteString("you want to add ")
		b.WriteString(orPlaceholder(strings.Join(result.Stops, " and "), "a stop"))
		b.WriteString(" to the route")
	case nlu.IntentRemoveStop:
		b.WriteString("you want to remove ")
		b.WriteString(orPlaceholder(strings.Join(result.Stops, " and "), "a stop"))
	case nlu.IntentSetAnchor:
		b.WriteString("you want to save ")
		b.WriteString(orPlaceholder(result.Destination, "this place"))
		b.WriteString(" as a favorite")
	default:
		b.WriteString("you want help with ")
		b.WriteString(strings.ReplaceAll(string(result.Intent), "_", " "))
	}
	b.WriteString("?")
	return b.String()
}

func orPlaceholder(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// confirmedRequest reconstructs the confirmed request from the session's
// active entities for the tool loop.
func confirmedRequest(sess *session.Session) string {
	var b strings.Builder
	b.WriteString("The user confirmed the request.")
	if dest := sess.ActiveEntities["destination"]; dest != "" {
		b.WriteString(" Destination: ")
		b.WriteString(dest)
		b.WriteString(".")
	}
	if stops := sess.ActiveEntities["stops"]; stops != "" {
		b.WriteString(" Stops: ")
		b.WriteString(stops)
		b.WriteString(".")
	}
	b.WriteString(" Build the route.")
	return b.String()
}
