package seq

import (
	"fmt"

	ectotx "github.com/shouya/ecto-tx"
)

// Wildcard is the binder name that matches without binding.
const Wildcard = "_"

// Bindings maps binder names to matched values.
type Bindings map[string]any

// Pattern matches a runtime value by shape and binds its parts. Patterns
// inspect only the outcome tag, never the payload shape.
type Pattern interface {
	Match(v any) (Bindings, bool)
	String() string
	binders() []string
}

// PatSuccess matches a success outcome and binds its value.
func PatSuccess(name string) Pattern { return successPattern{name: name} }

// PatFailure matches a failure outcome and binds its payload.
func PatFailure(name string) Pattern { return failurePattern{name: name} }

// PatAny matches any value and binds it whole.
func PatAny(name string) Pattern { return anyPattern{name: name} }

type successPattern struct{ name string }

func (p successPattern) Match(v any) (Bindings, bool) {
	o, ok := v.(ectotx.Outcome[any])
	if !ok || o.IsFailure() {
		return nil, false
	}
	return bindOne(p.name, o.Value()), true
}

func (p successPattern) String() string { return fmt.Sprintf("Success(%s)", p.name) }
func (p successPattern) binders() []string { return binderList(p.name) }

type failurePattern struct{ name string }

func (p failurePattern) Match(v any) (Bindings, bool) {
	o, ok := v.(ectotx.Outcome[any])
	if !ok || o.IsSuccess() {
		return nil, false
	}
	return bindOne(p.name, o.Payload()), true
}

func (p failurePattern) String() string { return fmt.Sprintf("Failure(%s)", p.name) }
func (p failurePattern) binders() []string { return binderList(p.name) }

type anyPattern struct{ name string }

func (p anyPattern) Match(v any) (Bindings, bool) {
	return bindOne(p.name, v), true
}

func (p anyPattern) String() string { return p.name }
func (p anyPattern) binders() []string { return binderList(p.name) }

func bindOne(name string, v any) Bindings {
	if name == Wildcard || name == "" {
		return Bindings{}
	}
	return Bindings{name: v}
}

func binderList(name string) []string {
	if name == Wildcard || name == "" {
		return nil
	}
	return []string{name}
}
