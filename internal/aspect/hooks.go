package aspect

// Hooks holds the advice of a Kind. Every hook is optional.
type Hooks struct {
	// Before runs before the call proceeds. It may replace the context the
	// rest of the chain sees with JoinPoint.SetContext.
	Before func(jp *JoinPoint)
	// After runs when the call returned without error.
	After func(jp *JoinPoint, result any)
	// AfterError runs when the call returned an error. The error is
	// returned to the caller unchanged afterwards.
	AfterError func(jp *JoinPoint, err error)
}

// Merge combines two hook sets, running the receiver first.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		Before:     chainBefore(h.Before, other.Before),
		After:      chainAfter(h.After, other.After),
		AfterError: chainAfterError(h.AfterError, other.AfterError),
	}
}

func chainBefore(first, second func(*JoinPoint)) func(*JoinPoint) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(jp *JoinPoint) {
			first(jp)
			second(jp)
		}
	}
}

func chainAfter(first, second func(*JoinPoint, any)) func(*JoinPoint, any) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(jp *JoinPoint, result any) {
			first(jp, result)
			second(jp, result)
		}
	}
}

func chainAfterError(first, second func(*JoinPoint, error)) func(*JoinPoint, error) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(jp *JoinPoint, err error) {
			first(jp, err)
			second(jp, err)
		}
	}
}

func (h Hooks) before(jp *JoinPoint) {
	if h.Before != nil {
		h.Before(jp)
	}
}

func (h Hooks) after(jp *JoinPoint, result any) {
	if h.After != nil {
		h.After(jp, result)
	}
}

func (h Hooks) afterError(jp *JoinPoint, err error) {
	if h.AfterError != nil {
		h.AfterError(jp, err)
	}
}
