package anchor

import "errors"

var (
	ErrAnchorNotFound = errors.New("anchor not found")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrUnresolvable   = errors.New("address could not be geocoded")
)
