package ectotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(out Outcome[any]) StepFunc {
	return func(Context, *Results) Outcome[any] { return out }
}

func TestSagaRejectsDuplicateStepNames(t *testing.T) {
	saga := NewSaga("dup")
	require.NoError(t, saga.AddStep("a", step(Success[any](1))))
	err := saga.AddStep("a", step(Success[any](2)))
	assert.ErrorContains(t, err, `step with name "a" already exists`)
	assert.Equal(t, 1, saga.Len())
}

func TestSagaRejectsUnknownDependency(t *testing.T) {
	saga := NewSaga("deps")
	err := saga.AddStep("b", step(Success[any](1)), "missing")
	assert.ErrorContains(t, err, `dependency on unknown step "missing"`)
	assert.Equal(t, 0, saga.Len())
}

func TestExecutionOrderIsInsertionOrderWithoutDeps(t *testing.T) {
	saga := NewSaga("plain")
	for _, name := range []StepName{"first", "second", "third"} {
		require.NoError(t, saga.AddStep(name, step(Success[any](nil))))
	}

	order, err := saga.ExecutionOrder()
	require.NoError(t, err)

	names := make([]StepName, len(order))
	for i, s := range order {
		names[i] = s.Name()
	}
	assert.Equal(t, []StepName{"first", "second", "third"}, names)
}

func TestExecutionOrderRespectsDependencies(t *testing.T) {
	saga := NewSaga("ordered")
	require.NoError(t, saga.AddStep("load", step(Success[any](nil))))
	require.NoError(t, saga.AddStep("audit", step(Success[any](nil))))
	require.NoError(t, saga.AddStep("write", step(Success[any](nil)), "load"))
	require.NoError(t, saga.AddStep("notify", step(Success[any](nil)), "write", "audit"))

	order, err := saga.ExecutionOrder()
	require.NoError(t, err)

	pos := map[StepName]int{}
	for i, s := range order {
		pos[s.Name()] = i
	}
	assert.Less(t, pos["load"], pos["write"])
	assert.Less(t, pos["write"], pos["notify"])
	assert.Less(t, pos["audit"], pos["notify"])
}

func TestRunSagaRecordsResultsInOrder(t *testing.T) {
	tc := NewMemContext(nil)

	saga := NewSaga("transfer")
	require.NoError(t, saga.AddStep("debit", func(Context, *Results) Outcome[any] {
		return Success[any](60)
	}))
	require.NoError(t, saga.AddStep("credit", func(_ Context, prior *Results) Outcome[any] {
		debited, ok := LookupTyped[int](prior, "debit")
		if !ok {
			return Failure[any]("credit requires debit to run first")
		}
		return Success[any](debited + 1)
	}, "debit"))

	res := tc.RunSaga(saga)
	require.True(t, res.IsCommitted())

	results := res.Outcome().Value().(*Results)
	assert.Equal(t, 2, results.Len())
	v, _ := results.Get("credit")
	assert.Equal(t, 61, v)
	assert.Equal(t, []StepName{"debit", "credit"}, tc.StepOrder())
}

func TestRunSagaStopsAtFirstFailingStep(t *testing.T) {
	tc := NewMemContext(nil)

	saga := NewSaga("failing")
	require.NoError(t, saga.AddStep("ok", step(Success[any](1))))
	require.NoError(t, saga.AddStep("bad", step(Failure[any]("bad step"))))
	require.NoError(t, saga.AddStep("after", step(Success[any](3))))

	res := tc.RunSaga(saga)
	assert.False(t, res.IsCommitted())
	assert.Equal(t, StepName("bad"), res.FailedStep())
	assert.Equal(t, "bad step", res.Payload())
	assert.Equal(t, []StepName{"ok", "bad"}, tc.StepOrder(), "steps after the failure must never run")
}

func TestCyclicSagaFaults(t *testing.T) {
	saga := NewSaga("cycle")
	require.NoError(t, saga.AddStep("a", step(Success[any](nil))))
	require.NoError(t, saga.AddStep("b", step(Success[any](nil)), "a"))
	// Close the cycle directly on the graph: AddStep forbids forward
	// references, so a cycle can only come from misuse of the graph.
	a, _ := saga.Step("a")
	b, _ := saga.Step("b")
	saga.graph.SetEdge(saga.graph.NewEdge(saga.graph.Node(b.id), saga.graph.Node(a.id)))

	_, err := saga.ExecutionOrder()
	assert.ErrorContains(t, err, "not orderable")

	assert.Panics(t, func() {
		NewMemContext(nil).RunSaga(saga)
	})
}

func TestExportToDot(t *testing.T) {
	saga := NewSaga("viz")
	require.NoError(t, saga.AddStep("a", step(Success[any](nil))))
	require.NoError(t, saga.AddStep("b", step(Success[any](nil)), "a"))

	dot, err := saga.ExportToDot()
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
}

func TestResultsLookupTyped(t *testing.T) {
	r := NewResults()
	r.Set("n", 42)

	v, ok := LookupTyped[int](r, "n")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = LookupTyped[string](r, "n")
	assert.False(t, ok, "wrong type must not match")

	_, ok = LookupTyped[int](r, "missing")
	assert.False(t, ok)

	assert.Equal(t, []StepName{"n"}, r.Names())
}
