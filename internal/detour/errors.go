package detour

import "errors"

// ErrRouteInfeasible indicates every candidate stop exceeded the detour
// budget. Recoverable: callers should suggest removing a stop rather than
// failing the turn.
var ErrRouteInfeasible = errors.New("no candidate stop fits the detour budget")
