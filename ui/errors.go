package ui

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedEvent   = errors.New("unsupported event")
	ErrUnsupportedRequest = errors.New("unsupported request")
)

// UnsupportedError is returned for gui events and requests this side
// doesn't know. It matches ErrUnsupportedEvent or ErrUnsupportedRequest
// under errors.Is.
type UnsupportedError struct {
	Request bool
	Method  string
	Args    []any
}

func (e *UnsupportedError) Error() string {
	kind := "event"
	if e.Request {
		kind = "request"
	}
	return fmt.Sprintf("Unsupported %s %s(%v)", kind, e.Method, e.Args)
}

func (e *UnsupportedError) Is(target error) bool {
	if e.Request {
		return target == ErrUnsupportedRequest
	}
	return target == ErrUnsupportedEvent
}
