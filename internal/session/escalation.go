package session

// EscalationPhase enumerates the escalation state machine:
// NORMAL -> LOW_RETRY(n) -> ESCALATING -> NORMAL.
type EscalationPhase string

const (
	EscalationNormal     EscalationPhase = "NORMAL"
	EscalationLowRetry   EscalationPhase = "LOW_RETRY"
	EscalationEscalating EscalationPhase = "ESCALATING"
)

// LowResultsBeforeEscalation is how many consecutive LOW classifications
// (the original plus two retries) trigger the advanced model.
const LowResultsBeforeEscalation = 3

// Escalation tracks repeated low-confidence results for one session.
// Two independent triggers feed the same machine: a third consecutive LOW
// result, or the fast model explicitly requesting advanced reasoning.
type Escalation struct {
	Phase     EscalationPhase
	LowStreak int
}

// RecordLow registers a LOW-confidence result and reports whether this one
// crossed the escalation threshold.
func (e *Escalation) RecordLow() bool {
	e.LowStreak++
	if e.LowStreak >= LowResultsBeforeEscalation {
		e.Phase = EscalationEscalating
		return true
	}
	e.Phase = EscalationLowRetry
	return false
}

// RequestAdvanced moves straight to ESCALATING on the fast model's
// requires_advanced signal.
func (e *Escalation) RequestAdvanced() {
	e.Phase = EscalationEscalating
}

// Escalating reports whether the next classification should use the
// advanced model.
func (e *Escalation) Escalating() bool {
	return e.Phase == EscalationEscalating
}

// Reset returns to NORMAL. Called as soon as a non-LOW result is produced
// or the user provides a selection.
func (e *Escalation) Reset() {
	e.Phase = EscalationNormal
	e.LowStreak = 0
}
