package ectotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeTags(t *testing.T) {
	ok := Success(42)
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsFailure())
	assert.Equal(t, 42, ok.Value())
	assert.Nil(t, ok.Payload())
	assert.Equal(t, "Success(42)", ok.String())

	bad := Failure[int]("boom")
	assert.True(t, bad.IsFailure())
	assert.False(t, bad.IsSuccess())
	assert.Equal(t, 0, bad.Value())
	assert.Equal(t, "boom", bad.Payload())
	assert.Equal(t, "Failure(boom)", bad.String())
}

func TestGeneralizeSpecializeRoundTrip(t *testing.T) {
	o := specialize[int](generalize(Success(7)))
	assert.True(t, o.IsSuccess())
	assert.Equal(t, 7, o.Value())

	f := specialize[int](generalize(Failure[int]("nope")))
	assert.True(t, f.IsFailure())
	assert.Equal(t, "nope", f.Payload())
}

func TestSpecializeNilValue(t *testing.T) {
	// A success carrying nil specializes to the zero value instead of
	// tripping over a nil type assertion.
	o := specialize[any](Success[any](nil))
	assert.True(t, o.IsSuccess())
	assert.Nil(t, o.Value())
}

func TestSpecializeWrongTypeFaults(t *testing.T) {
	assert.Panics(t, func() {
		specialize[int](Success[any]("not an int"))
	})
}
