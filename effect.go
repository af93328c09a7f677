package ectotx

// effectKind enumerates the closed set of shapes an Effect can take. Run
// dispatches over this set exhaustively; there is no open subtyping.
type effectKind int

const (
	kindInvalid effectKind = iota
	kindFunc               // deferred function of the transactional context
	kindOutcome            // literal already-known outcome
	kindSaga               // external named saga (see FromSaga)
	kindList               // ordered list of effects (see ConcatAll)
)

// Effect is a deferred, possibly-failing computation parameterized over its
// result type. Effects are immutable values: combinators never mutate their
// inputs, they return new Effects. An Effect carries no resources and has no
// identity beyond the description of future work.
//
// Running the same Effect twice against equivalent contexts yields the same
// outcome class, though external side effects may differ.
type Effect[A any] struct {
	kind effectKind
	fn   func(Context) Outcome[A]
	out  Outcome[A]
	saga *Saga
}

// New wraps a function of the transactional context as an Effect. The
// function is not invoked until the effect is run.
func New[A any](fn func(Context) Outcome[A]) Effect[A] {
	return Effect[A]{kind: kindFunc, fn: fn}
}

// Pure yields Success(v) without touching the context.
func Pure[A any](v A) Effect[A] {
	return Effect[A]{kind: kindOutcome, out: Success(v)}
}

// NewError always yields Failure(payload). It is the zero of the fallback
// algebra: OrElse(NewError(e), f) behaves as f(e), and OrElse(Pure(a), f)
// behaves as Pure(a).
func NewError[A any](payload any) Effect[A] {
	return Effect[A]{kind: kindOutcome, out: Failure[A](payload)}
}

// Lift makes a literal Outcome composable as an Effect. Literal markers are
// always composable; running the lifted effect returns the outcome as-is.
func Lift[A any](o Outcome[A]) Effect[A] {
	return Effect[A]{kind: kindOutcome, out: o}
}

// Map transforms the success value with fn. On Failure the payload passes
// through unchanged and fn is never invoked. fn must be total and
// effect-free.
func Map[A, B any](e Effect[A], fn func(A) B) Effect[B] {
	return New(func(tc Context) Outcome[B] {
		o := Run(tc, e)
		if o.IsFailure() {
			return Failure[B](o.Payload())
		}
		return Success(fn(o.Value()))
	})
}

// AndThen sequences e with fn (monadic bind). On Success(a) it runs fn(a)
// against the same context and returns its outcome; on Failure it
// short-circuits without invoking fn. All other combinators derive from
// AndThen plus Pure; Map and OrElse are kept as direct definitions to avoid
// intermediate closures.
func AndThen[A, B any](e Effect[A], fn func(A) Effect[B]) Effect[B] {
	return New(func(tc Context) Outcome[B] {
		o := Run(tc, e)
		if o.IsFailure() {
			return Failure[B](o.Payload())
		}
		return Run(tc, fn(o.Value()))
	})
}

// OrElse recovers from failure: Success passes through untouched, Failure
// replaces the computation with recoverWith(payload) run against the same
// context.
func OrElse[A any](e Effect[A], recoverWith func(payload any) Effect[A]) Effect[A] {
	return New(func(tc Context) Outcome[A] {
		o := Run(tc, e)
		if o.IsSuccess() {
			return o
		}
		return Run(tc, recoverWith(o.Payload()))
	})
}

// Optional converts failure into Success of the zero value. The returned
// effect never fails.
func Optional[A any](e Effect[A]) Effect[A] {
	return OrElse(e, func(any) Effect[A] {
		var zero A
		return Pure(zero)
	})
}
