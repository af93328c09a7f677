// Package ectotx provides composable effects for sequencing dependent
// operations that must execute atomically against a transactional resource.
//
// Overview
//
// 1. Build effects from combinators:
//   - Pure lifts a value, NewError lifts a failure payload, New wraps a
//     function of the transactional context, Lift makes a literal Outcome
//     composable.
//   - Map, AndThen, OrElse, Optional, Concat and ConcatAll compose effects;
//     composition always yields a new immutable Effect.
//
// 2. Supply a transactional context:
//   - Implement the Context capability (RunTransaction, Abort, RunSaga), or
//     use MemContext for tests and examples.
//
// 3. Execute:
//   - Execute(effect, context, opts...) runs the effect inside one
//     transaction and returns a flat Outcome. The rollback policy defaults
//     to rolling back on both failures and faults; override per call with
//     WithRollbackOnFailure / WithRollbackOnException.
//
// 4. Bridge to named sagas:
//   - ToSaga wraps an effect as a one-step named saga; FromSaga runs a saga
//     as an effect yielding the name-to-result mapping.
//
// Direct-style sequences:
//
// The seq subpackage desugars a linear sequence of bind statements into the
// nested composition above, so dependent steps can be written as one flat
// block and expanded deterministically.
//
// Composition is single-threaded: every combinator that runs more than one
// sub-effect does so strictly in order against the one shared context.
package ectotx
