package routing

import "errors"

var (
	ErrNoRoute     = errors.New("no route found")
	ErrUnavailable = errors.New("routing provider unavailable")
)
