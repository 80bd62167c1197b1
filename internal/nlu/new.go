package nlu

import (
	"waypilot/pkg/llmprovider"
	pkgLog "waypilot/pkg/log"
)

// Classifier extracts intent and entities from utterances. The fast provider
// runs on every turn; the advanced provider is used only on escalation.
type Classifier struct {
	fast     llmprovider.Provider
	advanced llmprovider.Provider
	l        pkgLog.Logger
}

// New creates a new Classifier. Either provider may be nil when its
// credentials are absent; calls against a nil provider fail with
// ErrUnavailable instead of guessing.
func New(fast, advanced llmprovider.Provider, l pkgLog.Logger) *Classifier {
	return &Classifier{
		fast:     fast,
		advanced: advanced,
		l:        l,
	}
}
