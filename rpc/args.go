package rpc

// Args gives typed access to the positional arguments of one event.
// Every accessor fails with a *ParseError naming the event and index.
type Args struct {
	event  string
	values []any
}

func NewArgs(event string, values []any) *Args {
	return &Args{event: event, values: values}
}

func (a *Args) Event() string { return a.event }

func (a *Args) Len() int { return len(a.values) }

// Value returns the raw argument at i.
func (a *Args) Value(i int) (any, error) {
	if i < 0 || i >= len(a.values) {
		return nil, a.fail(i, "No such argument for "+a.event)
	}
	return a.values[i], nil
}

func (a *Args) Uint(i int) (uint64, error) {
	v, err := a.Value(i)
	if err != nil {
		return 0, err
	}
	n, ok := AsUint(v)
	if !ok {
		return 0, a.fail(i, "Can't convert argument to u64")
	}
	return n, nil
}

func (a *Args) Int(i int) (int64, error) {
	v, err := a.Value(i)
	if err != nil {
		return 0, err
	}
	n, ok := AsInt(v)
	if !ok {
		return 0, a.fail(i, "Can't convert argument to int")
	}
	return n, nil
}

func (a *Args) Bool(i int) (bool, error) {
	v, err := a.Value(i)
	if err != nil {
		return false, err
	}
	b, ok := AsBool(v)
	if !ok {
		return false, a.fail(i, "Can't convert argument to bool")
	}
	return b, nil
}

func (a *Args) Float(i int) (float64, error) {
	v, err := a.Value(i)
	if err != nil {
		return 0, err
	}
	f, ok := AsFloat(v)
	if !ok {
		return 0, a.fail(i, "Can't convert argument to float")
	}
	return f, nil
}

func (a *Args) String(i int) (string, error) {
	v, err := a.Value(i)
	if err != nil {
		return "", err
	}
	s, ok := AsString(v)
	if !ok {
		return "", a.fail(i, "Can't convert to string")
	}
	return s, nil
}

func (a *Args) Array(i int) ([]any, error) {
	v, err := a.Value(i)
	if err != nil {
		return nil, err
	}
	arr, ok := AsArray(v)
	if !ok {
		return nil, a.fail(i, "Can't convert argument to array")
	}
	return arr, nil
}

func (a *Args) Map(i int) (Map, error) {
	v, err := a.Value(i)
	if err != nil {
		return nil, err
	}
	m, ok := AsMap(v)
	if !ok {
		return nil, a.fail(i, "Can't convert argument to map")
	}
	return m, nil
}

func (a *Args) fail(i int, msg string) *ParseError {
	return &ParseError{Event: a.event, Arg: i, Msg: msg}
}
