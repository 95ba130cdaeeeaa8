package interp

import (
	"strings"

	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

// Binding is the record an Environment stores per name: the current
// value, whether it was given a source-text fragment worth remembering
// (persistence hook per SPEC_FULL §6, never written to disk by the core
// itself), whether future assignment is allowed, and whether the slot has
// been filled yet (used by LetRec's two-pass fill-in).
type Binding struct {
	Value       Value
	Source      string
	HasSource   bool
	Mutable     bool
	Initialized bool
}

// Environment is a chained frame of name->Binding, grounded on the
// teacher's internal/interp/runtime/environment.go (a store map plus an
// outer pointer, Get/Set/Define walking the chain), generalized here to
// fold names to upper case instead of the teacher's case-preserving
// ident.Map, and to carry the richer Binding record SPEC_FULL §3 calls for.
type Environment struct {
	bindings map[string]*Binding
	order    []string
	outer    *Environment
}

func NewEnvironment() *Environment {
	return &Environment{bindings: make(map[string]*Binding)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{bindings: make(map[string]*Binding), outer: outer}
}

func foldName(name string) string { return strings.ToUpper(name) }

// Add installs a binding in the local frame only, overwriting anything
// already there by that name; it never touches an outer frame.
func (e *Environment) Add(name string, v Value, source string, mutable bool) {
	name = foldName(name)
	if _, exists := e.bindings[name]; !exists {
		e.order = append(e.order, name)
	}
	e.bindings[name] = &Binding{Value: v, Source: source, HasSource: source != "", Mutable: mutable, Initialized: true}
}

// Define is the common case of Add: no source text and Mutable false (Update
// still rebinds the value in place; it does not consult or change the
// flag). Function parameters and let-bound names use
// this; it matches the plain Define(name, value) shape the teacher's
// Environment offers.
func (e *Environment) Define(name string, v Value) {
	e.Add(name, v, "", false)
}

// addUninitialized pre-inserts a sentinel slot for LetRec's first pass, so
// the right-hand sides of mutually-recursive bindings can close over names
// that are not yet readable.
func (e *Environment) addUninitialized(name string) {
	name = foldName(name)
	if _, exists := e.bindings[name]; !exists {
		e.order = append(e.order, name)
	}
	e.bindings[name] = &Binding{Mutable: false, Initialized: false}
}

// initializeLocal fills in a sentinel added by addUninitialized. It must
// only be called on a binding this frame itself owns.
func (e *Environment) initializeLocal(name string, v Value) {
	name = foldName(name)
	if b, ok := e.bindings[name]; ok {
		b.Value = v
		b.Initialized = true
	}
}

// Update searches the chain for the nearest existing binding and rebinds
// it in place; if none exists anywhere in the chain, it adds one locally.
func (e *Environment) Update(name string, v Value) {
	name = foldName(name)
	if e.setExisting(name, v) {
		return
	}
	e.Add(name, v, "", true)
}

func (e *Environment) setExisting(name string, v Value) bool {
	if b, ok := e.bindings[name]; ok {
		b.Value = v
		b.Initialized = true
		return true
	}
	if e.outer != nil {
		return e.outer.setExisting(name, v)
	}
	return false
}

// Find walks the chain for name, returning its Binding record or false.
func (e *Environment) Find(name string) (*Binding, bool) {
	name = foldName(name)
	for env := e; env != nil; env = env.outer {
		if b, ok := env.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Lookup is Find for callers that need an absent name to be an error: it
// fails with an unbound-symbol condition when name is bound nowhere in the
// chain.
func (e *Environment) Lookup(name string) (*Binding, error) {
	if b, ok := e.Find(name); ok {
		return b, nil
	}
	return nil, rgerrors.New(rgerrors.KindUnboundSymbol, "unbound symbol %s", foldName(name))
}

// HasLocal reports whether name is bound in the local frame only.
func (e *Environment) HasLocal(name string) bool {
	_, ok := e.bindings[foldName(name)]
	return ok
}

// Outer returns the enclosing frame, or nil at the root.
func (e *Environment) Outer() *Environment { return e.outer }

// NamedBinding pairs a folded name with its Binding, returned by Bindings.
type NamedBinding struct {
	Name    string
	Binding *Binding
}

// Bindings flattens the chain, outer frames first and inner frames
// overriding outer ones of the same name, as SPEC_FULL §4.2 specifies —
// used by the INTERACTIVE:ENV primitive to render a frame's visible names.
func (e *Environment) Bindings() []NamedBinding {
	var chain []*Environment
	for env := e; env != nil; env = env.outer {
		chain = append(chain, env)
	}
	byName := make(map[string]*Binding)
	var order []string
	for i := len(chain) - 1; i >= 0; i-- {
		env := chain[i]
		for _, name := range env.order {
			if _, exists := byName[name]; !exists {
				order = append(order, name)
			}
			byName[name] = env.bindings[name]
		}
	}
	out := make([]NamedBinding, len(order))
	for i, name := range order {
		out[i] = NamedBinding{Name: name, Binding: byName[name]}
	}
	return out
}
