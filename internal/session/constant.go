package session

import "time"

// Defaults for the store lifecycle.
const (
	DefaultTTL              = 30 * time.Minute
	DefaultSweepInterval    = 5 * time.Minute
	DefaultClarificationTTL = 60 * time.Second
)

// Log prefixes
const (
	LogPrefixSweep = "internal.session.sweep"
)
