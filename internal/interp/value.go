// Package interp holds the runtime core of Ragnarok: tagged values, the
// lexically-scoped environment, the AST node taxonomy and the tail-call
// trampoline that evaluates it. These four concerns live in one package
// rather than split across value/ast/environment packages because a
// function Value embeds an AST body and a captured *Environment while
// Environment stores Values and an AST Literal node wraps a Value —
// a three-way cycle that only disappears if all three share a package,
// the same way the teacher keeps its Value and Environment together in
// internal/interp/runtime. The AST-vs-value split the teacher does keep
// (internal/ast never imports internal/interp/runtime) survives here too:
// internal/sexpr, which only ever produces values and AST nodes, never
// gets imported back by this package.
package interp

import (
	"math/big"
	"strings"

	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

// Kind tags the variant a Value holds. Ragnarok values are a single
// struct with a Kind discriminator and a union of payload fields,
// deliberately not an interface hierarchy with per-type dynamic dispatch
// the way the teacher's runtime.Value is (internal/interp/runtime/value_interfaces.go) —
// the spec's Design Notes call for a tagged sum type here instead.
type Kind int

const (
	KindNumber Kind = iota
	KindBoolean
	KindString
	KindSymbol
	KindNil
	KindEmpty
	KindCons
	KindPrimitive
	KindFunction
	KindReference
	KindDict
	KindModule
)

func (k Kind) typeName() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindNil:
		return "nil"
	case KindEmpty:
		return "empty-list"
	case KindCons:
		return "cons-list"
	case KindPrimitive:
		return "primitive"
	case KindFunction:
		return "function"
	case KindReference:
		return "ref"
	case KindDict:
		return "dict"
	case KindModule:
		return "module"
	default:
		return "unknown"
	}
}

// ConsCell is the payload of a KindCons Value, split into its own pointer
// type so two Values can share cons identity for EQ?, the same way two
// Python VCons instances compare by object identity by default.
type ConsCell struct {
	Car Value
	Cdr Value
}

// Primitive is an opaque, arity-checked native operation. Fn is invoked
// only after Call has verified len(args) is within [Min, Max] (Max < 0
// means unbounded), matching the registry contract in internal/builtins.
type Primitive struct {
	Name string
	Min  int
	Max  int
	Fn   PrimitiveFunc
}

// PrimitiveFunc is the signature every builtin operation implements.
type PrimitiveFunc func(ctxt *Context, args []Value) (Value, error)

// Function is a user-defined closure: parameter names, an AST body and
// the environment active at the point the lambda was evaluated.
type Function struct {
	Params []string
	Body   Node
	Env    *Environment
}

// Reference is an explicit mutable cell. Every other Value is immutable
// after construction; REF/REF-SET is the one place Ragnarok code can
// observe mutation through a shared binding.
type Reference struct {
	V Value
}

// DictEntry is one (key, value) pair of a dict literal or MAKE-DICT result.
type DictEntry struct {
	Key   Value
	Value Value
}

// Dict is an ordered sequence of entries. It is a pointer type so DICT-SET
// can mutate Entries in place while DICT-UPDATE can build a fresh Dict
// without disturbing the original.
type Dict struct {
	Entries []DictEntry
}

// Module wraps one environment, reachable by qualified lookup MOD:NAME.
type Module struct {
	Name string
	Env  *Environment
}

// Value is the tagged union described in SPEC_FULL §3. Only the field(s)
// matching Kind are meaningful; reading the wrong field is a programmer
// error, never a panic-free no-op.
type Value struct {
	Kind Kind

	Num  *big.Int
	Bool bool
	Str  string // raw string payload or symbol name, case already folded for symbols
	Cons *ConsCell

	Prim *Primitive
	Fn   *Function
	Ref  *Reference
	Dict *Dict
	Mod  *Module
}

// Constructors.

func NewNumber(n *big.Int) Value { return Value{Kind: KindNumber, Num: n} }

func NewInt64(n int64) Value { return Value{Kind: KindNumber, Num: big.NewInt(n)} }

func NewBool(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// NewString wraps raw text exactly as read: escape sequences inside are
// left uninterpreted until Display is called.
func NewString(s string) Value { return Value{Kind: KindString, Str: s} }

// NewSymbol folds name to upper case, the one place symbol case folding
// happens; every other layer that stores or compares a symbol name may
// assume it is already folded.
func NewSymbol(name string) Value { return Value{Kind: KindSymbol, Str: strings.ToUpper(name)} }

func NewNil() Value { return Value{Kind: KindNil} }

func NewEmpty() Value { return Value{Kind: KindEmpty} }

// Cons builds a cons cell, enforcing the invariant that the second field
// of a cons is itself list-typed (cons or empty).
func Cons(car, cdr Value) (Value, error) {
	if cdr.Kind != KindCons && cdr.Kind != KindEmpty {
		return Value{}, rgerrors.New(rgerrors.KindWrongArgType, "cons: second argument must be a list, got %s", cdr.Kind.typeName())
	}
	return Value{Kind: KindCons, Cons: &ConsCell{Car: car, Cdr: cdr}}, nil
}

// List builds a proper list from a slice of elements, innermost-first.
func List(elems ...Value) Value {
	result := NewEmpty()
	for i := len(elems) - 1; i >= 0; i-- {
		// Cons never fails here: result is always list-typed.
		result, _ = Cons(elems[i], result)
	}
	return result
}

// Elements flattens a proper list Value back into a slice, erroring if v
// is not a proper list (cons-chain ending in empty).
func Elements(v Value) ([]Value, error) {
	var out []Value
	for v.Kind == KindCons {
		out = append(out, v.Cons.Car)
		v = v.Cons.Cdr
	}
	if v.Kind != KindEmpty {
		return nil, rgerrors.New(rgerrors.KindWrongArgType, "improper list")
	}
	return out, nil
}

func NewPrimitive(p *Primitive) Value { return Value{Kind: KindPrimitive, Prim: p} }

func NewFunction(params []string, body Node, env *Environment) Value {
	return Value{Kind: KindFunction, Fn: &Function{Params: params, Body: body, Env: env}}
}

func NewReference(v Value) Value { return Value{Kind: KindReference, Ref: &Reference{V: v}} }

func NewDict(entries []DictEntry) Value { return Value{Kind: KindDict, Dict: &Dict{Entries: entries}} }

func NewModule(name string, env *Environment) Value {
	return Value{Kind: KindModule, Mod: &Module{Name: name, Env: env}}
}

// Type predicates, mirroring §4.7's TYPE/NUMBER?/... family and the
// Glossary's Atom definition (number, boolean, string, symbol, primitive
// or function — notably excluding nil, empty, cons, ref, dict, module).

func (v Value) IsNumber() bool    { return v.Kind == KindNumber }
func (v Value) IsBoolean() bool   { return v.Kind == KindBoolean }
func (v Value) IsString() bool    { return v.Kind == KindString }
func (v Value) IsSymbol() bool    { return v.Kind == KindSymbol }
func (v Value) IsNil() bool       { return v.Kind == KindNil }
func (v Value) IsEmpty() bool     { return v.Kind == KindEmpty }
func (v Value) IsCons() bool      { return v.Kind == KindCons }
func (v Value) IsList() bool      { return v.Kind == KindCons || v.Kind == KindEmpty }
func (v Value) IsPrimitive() bool { return v.Kind == KindPrimitive }
func (v Value) IsFunction() bool  { return v.Kind == KindFunction || v.Kind == KindPrimitive }
func (v Value) IsReference() bool { return v.Kind == KindReference }
func (v Value) IsDict() bool      { return v.Kind == KindDict }
func (v Value) IsModule() bool    { return v.Kind == KindModule }

func (v Value) IsAtom() bool {
	switch v.Kind {
	case KindNumber, KindBoolean, KindString, KindSymbol, KindPrimitive, KindFunction:
		return true
	default:
		return false
	}
}

// TypeName returns the lowercase type name the TYPE primitive wraps in a
// symbol (and so ultimately upper-cases before returning to Ragnarok code).
func (v Value) TypeName() string { return v.Kind.typeName() }

// IsTrue implements the Glossary's Falsy values rule: #f, nil, the empty
// list, the integer 0 and the empty string are falsy; everything else,
// including every non-empty cons regardless of its contents, is truthy.
func (v Value) IsTrue() bool {
	switch v.Kind {
	case KindBoolean:
		return v.Bool
	case KindNil:
		return false
	case KindEmpty:
		return false
	case KindNumber:
		return v.Num.Sign() != 0
	case KindString:
		return v.Str != ""
	default:
		return true
	}
}

// IsEq implements EQ?: value equality for the immutable atoms (number,
// boolean, symbol, nil, empty), identity for everything with a pointer
// payload (cons, primitive, function, reference, dict, module). Strings
// compare by value here too — unlike the original's object-identity
// default for strings, which would make EQ? unreliable even on two
// freshly-read copies of the same literal; see DESIGN.md.
func (v Value) IsEq(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num.Cmp(other.Num) == 0
	case KindBoolean:
		return v.Bool == other.Bool
	case KindString:
		return v.Str == other.Str
	case KindSymbol:
		return v.Str == other.Str
	case KindNil, KindEmpty:
		return true
	case KindCons:
		return v.Cons == other.Cons
	case KindPrimitive:
		return v.Prim == other.Prim
	case KindFunction:
		return v.Fn == other.Fn
	case KindReference:
		return v.Ref == other.Ref
	case KindDict:
		return v.Dict == other.Dict
	case KindModule:
		return v.Mod == other.Mod
	default:
		return false
	}
}

// IsEqual implements EQL?: structural equality for cons, dict and
// reference; everything else falls back to IsEq, matching the source's
// default Value.is_equal = is_eq with overrides only on those three types.
func (v Value) IsEqual(other Value) bool {
	switch v.Kind {
	case KindCons:
		if other.Kind != KindCons {
			return false
		}
		return v.Cons.Car.IsEqual(other.Cons.Car) && v.Cons.Cdr.IsEqual(other.Cons.Cdr)
	case KindDict:
		if other.Kind != KindDict {
			return false
		}
		if len(v.Dict.Entries) != len(other.Dict.Entries) {
			return false
		}
		for i, e := range v.Dict.Entries {
			o := other.Dict.Entries[i]
			if !e.Key.IsEqual(o.Key) || !e.Value.IsEqual(o.Value) {
				return false
			}
		}
		return true
	case KindReference:
		if other.Kind != KindReference {
			return false
		}
		return v.Ref.V.IsEqual(other.Ref.V)
	default:
		return v.IsEq(other)
	}
}

// String renders the "printed representation" used recursively to build
// up compound forms (lists, dicts) and to satisfy the reader round-trip
// law in SPEC_FULL §8: read(String(quote(v))) must reproduce v. Strings
// keep their surrounding quotes and raw escapes here; see Display for the
// human-facing form PRINT uses instead.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return v.Num.String()
	case KindBoolean:
		if v.Bool {
			return "#T"
		}
		return "#F"
	case KindString:
		return "\"" + v.Str + "\""
	case KindSymbol:
		return v.Str
	case KindNil:
		return "NIL"
	case KindEmpty:
		return "()"
	case KindCons:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(v.Cons.Car.String())
		v.Cons.Cdr.writeConsTail(&b)
		return b.String()
	case KindPrimitive:
		return "#<PRIMITIVE " + v.Prim.Name + ">"
	case KindFunction:
		return "#<FUNCTION>"
	case KindReference:
		return "#<REF " + v.Ref.V.String() + ">"
	case KindDict:
		var b strings.Builder
		b.WriteString("#<DICT")
		for _, e := range v.Dict.Entries {
			b.WriteByte(' ')
			b.WriteByte('(')
			b.WriteString(e.Key.String())
			b.WriteByte(' ')
			b.WriteString(e.Value.String())
			b.WriteByte(')')
		}
		b.WriteByte('>')
		return b.String()
	case KindModule:
		return "#<MODULE " + v.Mod.Name + ">"
	default:
		return "#<?>"
	}
}

func (v Value) writeConsTail(b *strings.Builder) {
	switch v.Kind {
	case KindEmpty:
		b.WriteByte(')')
	case KindCons:
		b.WriteByte(' ')
		b.WriteString(v.Cons.Car.String())
		v.Cons.Cdr.writeConsTail(b)
	default:
		// Not reachable for well-formed lists (Cons enforces a list cdr),
		// kept only so a malformed list still renders instead of panicking.
		b.WriteString(" . ")
		b.WriteString(v.String())
		b.WriteByte(')')
	}
}

// Display is the human-facing form the PRINT primitive and the CLI host
// use: identical to String except a string value is shown unquoted with
// its escapes interpreted, per the Glossary's Display form definition.
func (v Value) Display() string {
	if v.Kind == KindString {
		return unescape(v.Str)
	}
	return v.String()
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// CheckArgType raises wrong-arg-type unless pred(v) holds, the mechanism
// every primitive uses to validate its arguments per SPEC_FULL §4.7.
func CheckArgType(name string, v Value, pred func(Value) bool) error {
	if pred(v) {
		return nil
	}
	return rgerrors.New(rgerrors.KindWrongArgType, "wrong argument type %s to %s", v.String(), name)
}
