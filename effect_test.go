package ectotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// outcomes are compared extensionally: two effects are equal when they
// produce the same outcome against the same context.
func runBoth[A any](t *testing.T, left, right Effect[A]) (Outcome[A], Outcome[A]) {
	t.Helper()
	return Run(NewMemContext(nil), left), Run(NewMemContext(nil), right)
}

func TestMonadLeftIdentity(t *testing.T) {
	// AndThen(Pure(a), f) == f(a)
	f := func(a int) Effect[int] { return Pure(a * 2) }

	l, r := runBoth(t, AndThen(Pure(21), f), f(21))
	assert.Equal(t, l, r)
	assert.Equal(t, 42, l.Value())
}

func TestMonadRightIdentity(t *testing.T) {
	// AndThen(e, Pure) == e
	e := New(func(Context) Outcome[string] { return Success("v") })

	l, r := runBoth(t, AndThen(e, Pure[string]), e)
	assert.Equal(t, l, r)

	failing := NewError[string]("broken")
	l, r = runBoth(t, AndThen(failing, Pure[string]), failing)
	assert.Equal(t, l, r)
}

func TestMonadAssociativity(t *testing.T) {
	e := Pure(3)
	f := func(a int) Effect[int] { return Pure(a + 1) }
	g := func(a int) Effect[int] { return Pure(a * 10) }

	l, r := runBoth(t,
		AndThen(AndThen(e, f), g),
		AndThen(e, func(a int) Effect[int] { return AndThen(f(a), g) }),
	)
	assert.Equal(t, l, r)
	assert.Equal(t, 40, l.Value())
}

func TestAndThenShortCircuits(t *testing.T) {
	invoked := false
	e := AndThen(NewError[int]("first failure"), func(int) Effect[int] {
		invoked = true
		return Pure(0)
	})

	out := Run(NewMemContext(nil), e)
	assert.True(t, out.IsFailure())
	assert.Equal(t, "first failure", out.Payload())
	assert.False(t, invoked, "continuation must never run after a failure")
}

func TestMapSkipsFnOnFailure(t *testing.T) {
	invoked := false
	e := Map(NewError[int]("nope"), func(a int) int {
		invoked = true
		return a
	})

	out := Run(NewMemContext(nil), e)
	assert.True(t, out.IsFailure())
	assert.Equal(t, "nope", out.Payload())
	assert.False(t, invoked)
}

func TestMapTransformsSuccess(t *testing.T) {
	out := Run(NewMemContext(nil), Map(Pure(5), func(a int) int { return a * a }))
	assert.Equal(t, Success(25), out)
}

func TestOrElseLaws(t *testing.T) {
	// OrElse(NewError(e), f) == f(e)
	f := func(payload any) Effect[string] { return Pure("recovered:" + payload.(string)) }
	l, r := runBoth(t, OrElse(NewError[string]("why"), f), f("why"))
	assert.Equal(t, l, r)
	assert.Equal(t, "recovered:why", l.Value())

	// OrElse(Pure(a), f) == Pure(a)
	invoked := false
	out := Run(NewMemContext(nil), OrElse(Pure("fine"), func(any) Effect[string] {
		invoked = true
		return Pure("unused")
	}))
	assert.Equal(t, Success("fine"), out)
	assert.False(t, invoked)
}

func TestOptionalNeverFails(t *testing.T) {
	out := Run(NewMemContext(nil), Optional(NewError[int]("gone")))
	assert.True(t, out.IsSuccess())
	assert.Equal(t, 0, out.Value())

	kept := Run(NewMemContext(nil), Optional(Pure(9)))
	assert.Equal(t, Success(9), kept)
}

func TestLiftMakesOutcomesComposable(t *testing.T) {
	// Literal markers are always composable effects.
	l := Run(NewMemContext(nil), AndThen(Lift(Success(2)), func(a int) Effect[int] {
		return Lift(Success(a + 1))
	}))
	assert.Equal(t, Success(3), l)

	f := Run(NewMemContext(nil), Lift(Failure[int]("marker")))
	assert.Equal(t, "marker", f.Payload())
}

func TestRunZeroEffectFaults(t *testing.T) {
	assert.Panics(t, func() {
		Run(NewMemContext(nil), Effect[int]{})
	})
}
