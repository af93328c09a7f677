package ectotx

// ToSaga converts an effect into a one-step saga. The step ignores prior
// results, runs the effect through the driver with rollback-on-failure
// disabled (so a failure surfaces as a step failure for the enclosing
// runner, instead of aborting mid-saga), and records the full success
// Outcome under name.
func ToSaga[A any](e Effect[A], name StepName) *Saga {
	saga := NewSaga(name.String())
	// AddStep on a fresh saga with no dependencies cannot fail.
	_ = saga.AddStep(name, func(tc Context, _ *Results) Outcome[any] {
		out := Execute(e, tc, WithRollbackOnFailure(false))
		if out.IsFailure() {
			return Failure[any](out.Payload())
		}
		return Success[any](generalize(out))
	})
	return saga
}

// FromSaga treats an external named saga as an effect. Running it delegates
// to the context's own saga-runner: Success yields the name-to-result
// mapping for all steps, a step failure surfaces the first failing step's
// payload per the runner's own ordering.
func FromSaga(saga *Saga) Effect[*Results] {
	e := Effect[*Results]{kind: kindSaga, saga: saga}
	e.fn = func(tc Context) Outcome[*Results] {
		res := tc.RunSaga(saga)
		if res.IsCommitted() {
			return specialize[*Results](res.Outcome())
		}
		return Failure[*Results](res.Payload())
	}
	return e
}
