package apiclient

import (
	"errors"
	"fmt"
)

// SuccessMarker is the only response body the website sends on success.
const SuccessMarker = "OK"

// TransportError means the request never produced a readable response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not post to remote api %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the website answered with something other than OK.
type ProtocolError struct {
	UUID       string
	Action     string
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed for handin(%s): %s", e.Action, e.UUID, e.Body)
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// AsProtocol returns the *ProtocolError in err's chain, if any.
func AsProtocol(err error) (*ProtocolError, bool) {
	var p *ProtocolError
	ok := errors.As(err, &p)
	return p, ok
}
