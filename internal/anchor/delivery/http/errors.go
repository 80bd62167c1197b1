package http

import (
	"errors"

	"waypilot/internal/anchor"
	pkgErrors "waypilot/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, anchor.ErrAnchorNotFound):
		return pkgErrors.NewHTTPError(404, "anchor not found")
	case errors.Is(err, anchor.ErrInvalidPayload):
		return pkgErrors.NewHTTPError(400, "invalid payload")
	case errors.Is(err, anchor.ErrUnresolvable):
		return pkgErrors.NewHTTPError(422, "address could not be resolved")
	default:
		return pkgErrors.NewHTTPError(500, "internal server error")
	}
}
