package ectotx

// EnableRollbackOnFailure wraps an effect so that a Failure outcome invokes
// Context.Abort with the failure payload instead of being returned. Success
// passes through untouched.
//
// Rollback wrappers are attached once, at the outermost level, by the
// execution driver, never nested per sub-effect, so a whole composed unit
// shares one rollback decision.
func EnableRollbackOnFailure[A any](e Effect[A]) Effect[A] {
	return New(func(tc Context) Outcome[A] {
		o := Run(tc, e)
		if o.IsFailure() {
			tc.Abort(o.Payload())
			// Abort never returns; reaching here means the context broke
			// its contract.
			panic(NewFault("context.Abort returned"))
		}
		return o
	})
}

// DisableRollbackOnException wraps an effect so that a fault raised while
// running it is converted into Failure carrying the *FaultError, suppressing
// the automatic abort. Abort unwinding (AbortSignal) is not a fault and is
// re-raised.
func DisableRollbackOnException[A any](e Effect[A]) Effect[A] {
	return New(func(tc Context) (out Outcome[A]) {
		defer func() {
			if r := recover(); r != nil {
				if sig, ok := r.(AbortSignal); ok {
					panic(sig)
				}
				if fault, ok := r.(*FaultError); ok {
					out = Failure[A](fault)
					return
				}
				out = Failure[A](NewFault(r))
			}
		}()
		return Run(tc, e)
	})
}
