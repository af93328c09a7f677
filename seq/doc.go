// Package seq desugars direct-style bind sequences into the nested effect
// composition of the parent package.
//
// A sequence reads as one flat block of statements:
//
//   - a bind statement (Bind) runs its expression as an effect against the
//     ambient transactional context and matches the outcome against a
//     pattern; a failure or non-matching shape short-circuits the whole
//     sequence,
//   - a plain binding (Let) is an ordinary immediate computation, not routed
//     through the context,
//   - the final expression is the sequence's result,
//   - optional else-clauses handle non-success shapes from the bind chain.
//
// Desugar is a pure, deterministic transform over this statement
// representation. It produces an expression tree, Effect(ctx -> ...) with
// every effectful position routed through run(ctx, ...), that Build turns
// into an executable Effect. The transform and the expression tree are
// plain data: they can be inspected, printed, and compared structurally.
package seq
