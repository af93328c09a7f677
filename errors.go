package ectotx

import "fmt"

// FaultError represents abnormal termination captured while running an
// effect: a panic, not a Failure value. DisableRollbackOnException converts
// faults into Failure outcomes carrying the *FaultError as payload.
type FaultError struct {
	Recovered any
}

// NewFault wraps a recovered panic value.
func NewFault(recovered any) *FaultError {
	return &FaultError{Recovered: recovered}
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("fault: %v", e.Recovered)
}

// Unwrap exposes a wrapped error, if the recovered value was one.
func (e *FaultError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// UnrunnableError indicates that RunValue was handed a value of a shape it
// does not know how to run.
type UnrunnableError struct {
	Value any
}

func (e *UnrunnableError) Error() string {
	return fmt.Sprintf("value of type %T cannot be run as an effect", e.Value)
}

// RegistryError represents an error returned from Registry lookups.
type RegistryError struct {
	error
}

// NotFoundError indicates that no saga with the given name was registered.
func NotFoundError(name string) error {
	return &RegistryError{fmt.Errorf("saga %q not registered", name)}
}

// DuplicateError indicates that a saga with the given name already exists.
func DuplicateError(name string) error {
	return &RegistryError{fmt.Errorf("saga %q already registered", name)}
}

// SagaError represents a structural problem with a named saga.
type SagaError struct {
	error
}

// DuplicateStepError indicates a step name that is already taken.
func DuplicateStepError(name StepName) error {
	return &SagaError{fmt.Errorf("step with name %q already exists", name)}
}

// UnknownStepError indicates a dependency on a step that was never added.
func UnknownStepError(name StepName) error {
	return &SagaError{fmt.Errorf("dependency on unknown step %q", name)}
}

// CyclicSagaError indicates that step dependencies form a cycle.
func CyclicSagaError(err error) error {
	return &SagaError{fmt.Errorf("saga steps are not orderable: %w", err)}
}
