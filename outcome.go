package ectotx

import "fmt"

// Outcome is the tagged result of running an effect: either Success carrying
// a value of type A, or Failure carrying an opaque payload. Combinators
// inspect only the tag, never the payload shape.
type Outcome[A any] struct {
	ok      bool
	value   A
	payload any
}

// Success constructs a successful Outcome carrying v.
func Success[A any](v A) Outcome[A] {
	return Outcome[A]{ok: true, value: v}
}

// Failure constructs a failed Outcome carrying an opaque payload.
func Failure[A any](payload any) Outcome[A] {
	return Outcome[A]{ok: false, payload: payload}
}

// IsSuccess reports whether the Outcome carries a value.
func (o Outcome[A]) IsSuccess() bool { return o.ok }

// IsFailure reports whether the Outcome carries a failure payload.
func (o Outcome[A]) IsFailure() bool { return !o.ok }

// Value returns the success value, or the zero value for a failure.
func (o Outcome[A]) Value() A { return o.value }

// Payload returns the failure payload, or nil for a success.
func (o Outcome[A]) Payload() any { return o.payload }

// String implements fmt.Stringer.
func (o Outcome[A]) String() string {
	if o.ok {
		return fmt.Sprintf("Success(%v)", o.value)
	}
	return fmt.Sprintf("Failure(%v)", o.payload)
}

// Pair holds the ordered results of two sequentially-run effects.
type Pair[A, B any] struct {
	First  A
	Second B
}

// generalize erases the value type so outcomes can cross the dynamic
// dispatch surface (RunValue, transaction bodies, saga steps).
func generalize[A any](o Outcome[A]) Outcome[any] {
	if o.ok {
		return Success[any](o.value)
	}
	return Failure[any](o.payload)
}

// specialize recovers the static value type on the way back out of the
// dynamic surface. A value of the wrong type is a programming error, not a
// data failure, so it surfaces as a fault.
func specialize[A any](o Outcome[any]) Outcome[A] {
	if !o.ok {
		return Failure[A](o.payload)
	}
	if o.value == nil {
		var zero A
		return Success(zero)
	}
	v, ok := o.value.(A)
	if !ok {
		panic(NewFault(fmt.Errorf("outcome value %T does not have the expected type", o.value)))
	}
	return Success(v)
}
