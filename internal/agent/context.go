package agent

import "context"

type contextKey int

const sessionIDKey contextKey = iota

// WithSessionID attaches the active session id to the context so tools can
// scope their work without the model having to pass identity around.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the active session id, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}
