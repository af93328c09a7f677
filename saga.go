package ectotx

import (
	"fmt"
	"sort"

	"github.com/tidwall/btree"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/shouya/ecto-tx/set"
)

// StepName is the unique name of a saga step. Step results are recorded
// under these names, which is what makes collisions across composed sagas a
// hazard; the effect combinators exist so most code never has to pick one.
type StepName string

// String returns the string representation of the StepName.
func (n StepName) String() string { return string(n) }

// StepFunc is an opaque step body: it receives the transactional context and
// the results of prior steps, and reports an outcome.
type StepFunc func(tc Context, prior *Results) Outcome[any]

// Step is one named step of a saga.
type Step struct {
	name  StepName
	run   StepFunc
	after []StepName
	id    int64
}

// Name returns the step's name.
func (s *Step) Name() StepName { return s.name }

// Run invokes the step body.
func (s *Step) Run(tc Context, prior *Results) Outcome[any] {
	return s.run(tc, prior)
}

// Saga is an externally-defined ordered collection of named steps. Steps run
// in insertion order unless explicit dependencies reorder them; ordering is
// deterministic either way. The effect core treats sagas as black boxes and
// only ever hands them to Context.RunSaga.
type Saga struct {
	name  string
	graph *simple.DirectedGraph
	steps map[int64]*Step
	names *set.Set[StepName]
	order []int64 // insertion order, used to stabilize the sort
}

// NewSaga creates an empty saga.
func NewSaga(name string) *Saga {
	return &Saga{
		name:  name,
		graph: simple.NewDirectedGraph(),
		steps: make(map[int64]*Step),
		names: &set.Set[StepName]{},
	}
}

// Name returns the saga's name.
func (s *Saga) Name() string { return s.name }

// Len returns the number of steps.
func (s *Saga) Len() int { return len(s.steps) }

// AddStep appends a named step. Steps listed in after must already exist;
// they are recorded as dependencies and respected by ExecutionOrder.
func (s *Saga) AddStep(name StepName, fn StepFunc, after ...StepName) error {
	if s.names.Contains(name) {
		return DuplicateStepError(name)
	}

	node := s.graph.NewNode()
	s.graph.AddNode(node)
	step := &Step{name: name, run: fn, after: after, id: node.ID()}

	for _, dep := range after {
		depID, ok := s.stepID(dep)
		if !ok {
			s.graph.RemoveNode(node.ID())
			return UnknownStepError(dep)
		}
		s.graph.SetEdge(simple.Edge{F: s.graph.Node(depID), T: node})
	}

	s.names.Insert(name)
	s.steps[node.ID()] = step
	s.order = append(s.order, node.ID())
	return nil
}

// Step returns the step with the given name.
func (s *Saga) Step(name StepName) (*Step, bool) {
	id, ok := s.stepID(name)
	if !ok {
		return nil, false
	}
	return s.steps[id], true
}

func (s *Saga) stepID(name StepName) (int64, bool) {
	for _, id := range s.order {
		if s.steps[id].name == name {
			return id, true
		}
	}
	return 0, false
}

// ExecutionOrder returns the steps in deterministic dependency order.
// Unconstrained steps keep their insertion order: ties are broken by node
// id, which increases with insertion.
func (s *Saga) ExecutionOrder() ([]*Step, error) {
	sorted, err := topo.SortStabilized(s.graph, func(nodes []graph.Node) {
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].ID() < nodes[j].ID()
		})
	})
	if err != nil {
		return nil, CyclicSagaError(err)
	}

	steps := make([]*Step, len(sorted))
	for i, node := range sorted {
		steps[i] = s.steps[node.ID()]
	}
	return steps, nil
}

// ExportToDot renders the step dependency graph in Graphviz .dot format.
func (s *Saga) ExportToDot() (string, error) {
	data, err := dot.Marshal(s.graph, s.name, "", "")
	if err != nil {
		return "", fmt.Errorf("failed to export saga to DOT format: %w", err)
	}
	return string(data), nil
}

// Results is the ordered name-to-result mapping produced by a saga run.
type Results struct {
	m *btree.Map[StepName, any]
}

// NewResults creates an empty result mapping.
func NewResults() *Results {
	return &Results{m: btree.NewMap[StepName, any](8)}
}

// Set records a step result.
func (r *Results) Set(name StepName, value any) {
	r.m.Set(name, value)
}

// Get retrieves a step result by name.
func (r *Results) Get(name StepName) (any, bool) {
	return r.m.Get(name)
}

// Len returns the number of recorded results.
func (r *Results) Len() int { return r.m.Len() }

// Names returns the recorded step names in key order.
func (r *Results) Names() []StepName {
	names := make([]StepName, 0, r.m.Len())
	r.m.Scan(func(name StepName, _ any) bool {
		names = append(names, name)
		return true
	})
	return names
}

// LookupTyped retrieves a step result with a type assertion. It returns the
// typed value and true on a match, or the zero value and false otherwise.
func LookupTyped[R any](r *Results, name StepName) (R, bool) {
	var zero R
	value, found := r.Get(name)
	if !found {
		return zero, false
	}
	typed, ok := value.(R)
	if !ok {
		return zero, false
	}
	return typed, true
}
