package ectotx

import "go.uber.org/zap"

// Default rollback policy. The policy is an explicit value threaded through
// Execute, never implicit global state.
const (
	DefaultRollbackOnFailure   = true
	DefaultRollbackOnException = true
)

// Policy controls how Execute reacts to failures and faults. It is attached
// at Execute time and never stored on an Effect.
type Policy struct {
	RollbackOnFailure   bool
	RollbackOnException bool
}

// DefaultPolicy returns the default rollback policy.
func DefaultPolicy() Policy {
	return Policy{
		RollbackOnFailure:   DefaultRollbackOnFailure,
		RollbackOnException: DefaultRollbackOnException,
	}
}

type executeConfig struct {
	policy      Policy
	passthrough TxOptions
	log         *zap.Logger
}

// ExecuteOption configures a single Execute call.
type ExecuteOption func(*executeConfig)

// WithRollbackOnFailure overrides whether a Failure outcome aborts the
// transaction.
func WithRollbackOnFailure(enabled bool) ExecuteOption {
	return func(c *executeConfig) { c.policy.RollbackOnFailure = enabled }
}

// WithRollbackOnException overrides whether a fault aborts the transaction.
// When disabled, faults are downgraded to Failure(*FaultError).
func WithRollbackOnException(enabled bool) ExecuteOption {
	return func(c *executeConfig) { c.policy.RollbackOnException = enabled }
}

// WithPolicy replaces the whole rollback policy.
func WithPolicy(p Policy) ExecuteOption {
	return func(c *executeConfig) { c.policy = p }
}

// WithTxOption forwards one key/value pair verbatim to the context's
// transaction primitive.
func WithTxOption(key string, value any) ExecuteOption {
	return func(c *executeConfig) {
		if c.passthrough == nil {
			c.passthrough = TxOptions{}
		}
		c.passthrough[key] = value
	}
}

// WithTxOptions merges a passthrough option set.
func WithTxOptions(opts TxOptions) ExecuteOption {
	return func(c *executeConfig) {
		if c.passthrough == nil {
			c.passthrough = TxOptions{}
		}
		for k, v := range opts {
			c.passthrough[k] = v
		}
	}
}

// WithLogger sets the logger for this Execute call. Defaults to a no-op
// logger.
func WithLogger(log *zap.Logger) ExecuteOption {
	return func(c *executeConfig) { c.log = log }
}

// Execute runs an effect inside one transaction on tc and normalizes the
// primitive's raw report into one flat Outcome.
//
// The rollback wrappers are applied here, at the outermost level: with
// RollbackOnFailure a Failure aborts the transaction; with
// RollbackOnException disabled, faults become Failure(*FaultError). A fault
// not intercepted that way propagates out of Execute unhandled, fatal to
// the caller.
func Execute[A any](e Effect[A], tc Context, opts ...ExecuteOption) Outcome[A] {
	cfg := executeConfig{policy: DefaultPolicy(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	wrapped := e
	if cfg.policy.RollbackOnFailure {
		wrapped = EnableRollbackOnFailure(wrapped)
	}
	// Fault interception goes outside the failure wrapper so that a fault
	// bypasses the abort-on-failure path entirely, while an Abort raised by
	// the inner wrapper still unwinds to the transaction primitive.
	if !cfg.policy.RollbackOnException {
		wrapped = DisableRollbackOnException(wrapped)
	}

	cfg.log.Debug("executing effect",
		zap.Bool("rollback_on_failure", cfg.policy.RollbackOnFailure),
		zap.Bool("rollback_on_exception", cfg.policy.RollbackOnException),
	)

	res := tc.RunTransaction(func(tc Context) Outcome[any] {
		return generalize(Run(tc, wrapped))
	}, cfg.passthrough)

	return normalize[A](cfg.log, res)
}

// normalize flattens the transaction primitive's report (committed body
// outcome, abort marker, or step-failure marker) into one Outcome.
func normalize[A any](log *zap.Logger, res TxResult) Outcome[A] {
	if res.IsCommitted() {
		return specialize[A](res.Outcome())
	}
	if step := res.FailedStep(); step != "" {
		log.Debug("saga step failed", zap.String("step", step.String()))
	}
	return Failure[A](res.Payload())
}
