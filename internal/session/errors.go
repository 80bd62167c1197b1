package session

import "errors"

var (
	// ErrNoRoute indicates an operation needed a current route and none exists.
	ErrNoRoute = errors.New("session has no current route")

	// ErrIllegalTransition indicates a route status change that is not allowed.
	ErrIllegalTransition = errors.New("illegal route status transition")
)
