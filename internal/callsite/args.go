package callsite

import (
	"context"
	"fmt"
)

// Func is the uniform shape of every interceptable operation. A returned
// error is the operation's failure and must reach the caller unchanged.
type Func func(ctx context.Context, args Args) (any, error)

// Args carries the positional and named arguments of one invocation. For
// methods, Positional[0] is the receiver.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional builds Args from positional values only.
func Positional(values ...any) Args {
	return Args{Positional: values}
}

// With returns a copy of the Args with an additional named argument.
func (a Args) With(name string, value any) Args {
	named := make(map[string]any, len(a.Named)+1)
	for k, v := range a.Named {
		named[k] = v
	}
	named[name] = value
	return Args{Positional: a.Positional, Named: named}
}

// Len returns the number of positional arguments.
func (a Args) Len() int {
	return len(a.Positional)
}

// At returns the positional argument at index i, or nil if out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Receiver returns the first positional argument, which is the bound
// receiver for method call-sites.
func (a Args) Receiver() any {
	return a.At(0)
}

// Lookup returns a named argument.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.Named[name]
	return v, ok
}

// Int returns the positional argument at index i as an int.
func (a Args) Int(i int) (int, error) {
	switch v := a.At(i).(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	default:
		return 0, fmt.Errorf("argument %d: expected int, got %T", i, a.At(i))
	}
}

// Values returns every positional argument followed by the named ones, in
// the order they were given. Intended for logging.
func (a Args) Values() []any {
	out := make([]any, 0, len(a.Positional)+len(a.Named))
	out = append(out, a.Positional...)
	for k, v := range a.Named {
		out = append(out, fmt.Sprintf("%s=%v", k, v))
	}
	return out
}
