package ectotx

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trace event kinds recorded by MemContext.
const (
	TraceBegin      = "begin"
	TraceCommit     = "commit"
	TraceAbort      = "abort"
	TraceStep       = "step"
	TraceStepFailed = "step_failed"
)

// TraceEvent records one observable action taken by MemContext: transaction
// begin/commit/abort and per-step saga execution. Tests use the trace as an
// execution-order side channel.
type TraceEvent struct {
	Kind    string
	TxID    string
	Step    StepName
	Payload any
	At      time.Time
}

// MemContext is an in-memory Context implementation for tests and examples.
// It keeps a small key/value store with snapshot semantics: changes made
// inside a transaction are discarded on abort, including nested transactions
// (each nesting level acts as a savepoint).
//
// MemContext is not safe for concurrent use; the core's contract is a single
// context driven from a single goroutine per Execute call.
type MemContext struct {
	log *zap.Logger

	data      map[string]any
	snapshots []map[string]any
	txIDs     []string

	trace   []TraceEvent
	commits int
	aborts  []any

	lastOptions TxOptions
}

// NewMemContext creates an in-memory context. A nil logger defaults to
// zap.NewNop().
func NewMemContext(log *zap.Logger) *MemContext {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemContext{
		log:  log,
		data: make(map[string]any),
	}
}

// RunTransaction implements Context. On normal return the body's outcome is
// committed one level deeper; an Abort discards all changes made at this
// level and deeper. A fault also discards the changes, then propagates.
func (m *MemContext) RunTransaction(body Body, opts TxOptions) (res TxResult) {
	txID := uuid.NewString()
	m.begin(txID)
	m.lastOptions = opts

	defer func() {
		if r := recover(); r != nil {
			m.rollbackTo(txID)
			if sig, ok := r.(AbortSignal); ok {
				m.record(TraceEvent{Kind: TraceAbort, TxID: txID, Payload: sig.Payload})
				m.aborts = append(m.aborts, sig.Payload)
				m.log.Debug("transaction aborted", zap.String("tx", txID))
				res = Aborted(sig.Payload)
				return
			}
			m.record(TraceEvent{Kind: TraceAbort, TxID: txID, Payload: r})
			m.log.Debug("transaction faulted", zap.String("tx", txID))
			panic(r)
		}
	}()

	out := body(m)
	m.commit(txID)
	m.record(TraceEvent{Kind: TraceCommit, TxID: txID})
	m.commits++
	m.log.Debug("transaction committed", zap.String("tx", txID))
	return Committed(out)
}

// Abort implements Context: it unwinds directly to the enclosing
// RunTransaction frame and never returns.
func (m *MemContext) Abort(payload any) {
	panic(AbortSignal{Payload: payload})
}

// RunSaga implements Context: it runs the saga's steps with this context in
// deterministic dependency order, recording each step's result under its
// name. The first failing step stops the run; later steps never execute.
func (m *MemContext) RunSaga(saga *Saga) TxResult {
	order, err := saga.ExecutionOrder()
	if err != nil {
		// A saga that cannot be ordered is malformed; that is a programming
		// error, not a step failure.
		panic(NewFault(err))
	}

	results := NewResults()
	for _, step := range order {
		m.record(TraceEvent{Kind: TraceStep, Step: step.Name()})
		out := step.Run(m, results)
		if out.IsFailure() {
			m.record(TraceEvent{Kind: TraceStepFailed, Step: step.Name(), Payload: out.Payload()})
			m.log.Debug("saga step failed",
				zap.String("saga", saga.Name()),
				zap.String("step", step.Name().String()),
			)
			return StepFailed(step.Name(), out.Payload())
		}
		results.Set(step.Name(), out.Value())
	}
	return Committed(Success[any](results))
}

// Put stores a value. Inside a transaction the write is journaled and
// discarded on abort.
func (m *MemContext) Put(key string, value any) {
	m.data[key] = value
}

// Get retrieves a stored value.
func (m *MemContext) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Trace returns a copy of the recorded events.
func (m *MemContext) Trace() []TraceEvent {
	trace := make([]TraceEvent, len(m.trace))
	copy(trace, m.trace)
	return trace
}

// StepOrder returns the names of saga steps in the order they started.
func (m *MemContext) StepOrder() []StepName {
	var order []StepName
	for _, ev := range m.trace {
		if ev.Kind == TraceStep {
			order = append(order, ev.Step)
		}
	}
	return order
}

// Commits returns the number of committed transactions.
func (m *MemContext) Commits() int { return m.commits }

// Aborts returns the payloads of aborted transactions.
func (m *MemContext) Aborts() []any {
	aborts := make([]any, len(m.aborts))
	copy(aborts, m.aborts)
	return aborts
}

// LastOptions returns the passthrough options of the most recent
// transaction.
func (m *MemContext) LastOptions() TxOptions { return m.lastOptions }

func (m *MemContext) begin(txID string) {
	snapshot := make(map[string]any, len(m.data))
	for k, v := range m.data {
		snapshot[k] = v
	}
	m.snapshots = append(m.snapshots, snapshot)
	m.txIDs = append(m.txIDs, txID)
	m.record(TraceEvent{Kind: TraceBegin, TxID: txID})
}

func (m *MemContext) commit(txID string) {
	m.pop(txID)
}

func (m *MemContext) rollbackTo(txID string) {
	m.data = m.pop(txID)
}

// pop discards savepoint frames down to and including txID and returns that
// frame's snapshot. Abort may unwind through remembered nested frames, so
// matching by id rather than depth keeps the stack consistent.
func (m *MemContext) pop(txID string) map[string]any {
	for i := len(m.txIDs) - 1; i >= 0; i-- {
		if m.txIDs[i] == txID {
			snapshot := m.snapshots[i]
			m.snapshots = m.snapshots[:i]
			m.txIDs = m.txIDs[:i]
			return snapshot
		}
	}
	panic(NewFault("unbalanced transaction frames"))
}

func (m *MemContext) record(ev TraceEvent) {
	ev.At = time.Now()
	m.trace = append(m.trace, ev)
}
