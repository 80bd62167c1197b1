package place

import "errors"

var (
	ErrNoResults   = errors.New("no places found")
	ErrUnavailable = errors.New("place provider unavailable")
)
