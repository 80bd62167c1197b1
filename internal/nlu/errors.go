package nlu

import "errors"

// ErrUnavailable indicates the classifier cannot run at all: missing
// credentials or a transport/auth failure. This is a configuration problem,
// not an ambiguous utterance, and must never be downgraded to an unknown
// intent.
var ErrUnavailable = errors.New("classifier unavailable")
