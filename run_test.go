package ectotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValueEffect(t *testing.T) {
	out := RunValue(NewMemContext(nil), Pure[any]("v"))
	assert.Equal(t, Success[any]("v"), out)
}

func TestRunValueLiteralOutcome(t *testing.T) {
	out := RunValue(NewMemContext(nil), Failure[any]("marker"))
	assert.Equal(t, Failure[any]("marker"), out)
}

func TestRunValueSaga(t *testing.T) {
	saga := NewSaga("one")
	require.NoError(t, saga.AddStep("only", func(Context, *Results) Outcome[any] {
		return Success[any](123)
	}))

	out := RunValue(NewMemContext(nil), saga)
	require.True(t, out.IsSuccess())
	results, ok := out.Value().(*Results)
	require.True(t, ok)
	v, found := results.Get("only")
	assert.True(t, found)
	assert.Equal(t, 123, v)
}

func TestRunValueEffectList(t *testing.T) {
	list := []Effect[any]{Pure[any](1), Pure[any](2)}
	out := RunValue(NewMemContext(nil), list)
	assert.Equal(t, Success[any]([]any{1, 2}), out)
}

func TestRunValueAnyListShortCircuits(t *testing.T) {
	ran := false
	list := []any{
		Success[any](1),
		Failure[any]("stop"),
		New(func(Context) Outcome[any] {
			ran = true
			return Success[any](3)
		}),
	}

	out := RunValue(NewMemContext(nil), list)
	assert.Equal(t, Failure[any]("stop"), out)
	assert.False(t, ran, "elements after the failure must never run")
}

func TestRunValueUnknownShapeFaults(t *testing.T) {
	assert.Panics(t, func() {
		RunValue(NewMemContext(nil), 42)
	})
}
