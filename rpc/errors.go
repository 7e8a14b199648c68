package rpc

import "fmt"

// ParseError reports an event whose arguments could not be coerced to
// the types the event requires. Arg is the offending argument index, or
// -1 when the failure is not tied to one argument.
type ParseError struct {
	Event string
	Arg   int
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Arg < 0 {
		return fmt.Sprintf("%s: %s", e.Event, e.Msg)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Event, e.Arg, e.Msg)
}
