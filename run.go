package ectotx

// Run executes an effect against the given context and returns its outcome.
// Dispatch is exhaustive over the closed set of effect shapes.
func Run[A any](tc Context, e Effect[A]) Outcome[A] {
	switch e.kind {
	case kindOutcome:
		return e.out
	case kindFunc, kindSaga, kindList:
		return e.fn(tc)
	default:
		panic(NewFault(&UnrunnableError{Value: e}))
	}
}

// RunValue is the dynamic counterpart of Run, used by desugared sequences
// and other any-typed callers. It accepts an Effect[any], a literal
// Outcome[any] marker, an external *Saga, or a list of effects, and
// preserves each target's exact short-circuit and ordering semantics.
// Any other shape is a programming error and faults.
func RunValue(tc Context, v any) Outcome[any] {
	switch x := v.(type) {
	case Effect[any]:
		return Run(tc, x)
	case Outcome[any]:
		return x
	case *Saga:
		return generalize(Run(tc, FromSaga(x)))
	case []Effect[any]:
		return generalize(Run(tc, ConcatAll(x)))
	case []any:
		values := make([]any, 0, len(x))
		for _, item := range x {
			o := RunValue(tc, item)
			if o.IsFailure() {
				return o
			}
			values = append(values, o.Value())
		}
		return Success[any](values)
	default:
		panic(NewFault(&UnrunnableError{Value: v}))
	}
}
