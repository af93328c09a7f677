package ectotx

import "fmt"

// TxOptions is the open passthrough option set forwarded verbatim to the
// context's transaction primitive. The core attaches recognized execution
// options (rollback policy) separately and never interprets these.
type TxOptions map[string]any

// Body is the closure a transaction runs: it receives the context and
// returns a raw outcome.
type Body func(Context) Outcome[any]

// Context is the opaque, externally-owned transactional capability. The
// core never constructs, clones, or caches one past an Execute call; it is
// passed by reference through every effect invocation within one call.
//
// Implementations that unwind Abort via panic must panic with an
// AbortSignal so DisableRollbackOnException can tell the unwinding apart
// from an ordinary fault.
type Context interface {
	// RunTransaction runs body inside one transaction. On normal return the
	// transaction commits and the result is Committed(outcome), the body's
	// outcome one level deeper. On Abort the transaction discards all
	// changes and the result is an abort marker carrying the payload,
	// distinguishable from a Failure outcome returned by body.
	RunTransaction(body Body, opts TxOptions) TxResult

	// Abort discards the transaction and unwinds directly to the enclosing
	// RunTransaction call. It never returns.
	Abort(payload any)

	// RunSaga executes an external ordered named-step saga, yielding
	// Committed(Success(results)) or a failure marker naming the first
	// failing step and its payload.
	RunSaga(saga *Saga) TxResult
}

// AbortSignal is the panic value a Context uses to unwind Abort to its
// RunTransaction frame.
type AbortSignal struct {
	Payload any
}

type txResultKind int

const (
	txCommitted txResultKind = iota
	txAborted
	txStepFailed
)

// TxResult is the raw, shape-varying report of a transaction primitive:
// a committed body outcome, an abort marker, or a step-failure marker. The
// execution driver normalizes it into one flat Outcome.
type TxResult struct {
	kind    txResultKind
	outcome Outcome[any]
	step    StepName
	payload any
}

// Committed reports a transaction that committed with the body's outcome
// nested inside.
func Committed(outcome Outcome[any]) TxResult {
	return TxResult{kind: txCommitted, outcome: outcome}
}

// Aborted reports a transaction discarded via Abort, carrying the abort
// payload.
func Aborted(payload any) TxResult {
	return TxResult{kind: txAborted, payload: payload}
}

// StepFailed reports a saga run that stopped at the named step, carrying
// that step's failure payload.
func StepFailed(step StepName, payload any) TxResult {
	return TxResult{kind: txStepFailed, step: step, payload: payload}
}

// IsCommitted reports whether the transaction committed.
func (r TxResult) IsCommitted() bool { return r.kind == txCommitted }

// Outcome returns the committed body outcome.
func (r TxResult) Outcome() Outcome[any] { return r.outcome }

// FailedStep returns the name of the failing saga step, if any.
func (r TxResult) FailedStep() StepName { return r.step }

// Payload returns the abort or step-failure payload.
func (r TxResult) Payload() any { return r.payload }

// String implements fmt.Stringer.
func (r TxResult) String() string {
	switch r.kind {
	case txCommitted:
		return fmt.Sprintf("Committed(%v)", r.outcome)
	case txAborted:
		return fmt.Sprintf("Aborted(%v)", r.payload)
	default:
		return fmt.Sprintf("StepFailed(%s, %v)", r.step, r.payload)
	}
}
