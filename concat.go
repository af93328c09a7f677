package ectotx

// Concat runs a then b sequentially against one context. a's failure
// short-circuits (b never runs); otherwise b's failure propagates; otherwise
// the result is Success of the pair. Execution order is an observable
// contract: side effects of a are complete before b starts.
func Concat[A, B any](a Effect[A], b Effect[B]) Effect[Pair[A, B]] {
	return New(func(tc Context) Outcome[Pair[A, B]] {
		oa := Run(tc, a)
		if oa.IsFailure() {
			return Failure[Pair[A, B]](oa.Payload())
		}
		ob := Run(tc, b)
		if ob.IsFailure() {
			return Failure[Pair[A, B]](ob.Payload())
		}
		return Success(Pair[A, B]{First: oa.Value(), Second: ob.Value()})
	})
}

// ConcatAll generalizes Concat to a list. The empty list yields Success of
// an empty slice. Elements run strictly in order; the first failure
// short-circuits, and later elements never run. Output order matches input
// order.
func ConcatAll[A any](effects []Effect[A]) Effect[[]A] {
	e := Effect[[]A]{kind: kindList}
	e.fn = func(tc Context) Outcome[[]A] {
		values := make([]A, 0, len(effects))
		for _, item := range effects {
			o := Run(tc, item)
			if o.IsFailure() {
				return Failure[[]A](o.Payload())
			}
			values = append(values, o.Value())
		}
		return Success(values)
	}
	return e
}
