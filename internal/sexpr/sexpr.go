// Package sexpr implements the surface syntax tree Ragnarok source text
// reads into before parsing: a disjoint SExpr taxonomy with bidirectional
// conversions to interp.Value (AsValue, used by quote) and interp.Node
// (ToExpression, the path from an atomic s-expression to evaluable AST).
// Grounded on original_source/src/lisp.py's SExpression/SAtom/SCons/SEmpty
// classes, collapsed here into one tagged struct per SPEC_FULL §9 rather
// than a class hierarchy, the same design choice made for interp.Value.
package sexpr

import (
	"math/big"
	"strings"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

// Kind tags an SExpr variant.
type Kind int

const (
	KindInteger Kind = iota
	KindBoolean
	KindString
	KindSymbol
	KindNil
	KindPrimitive
	KindDict
	KindEmpty
	KindCons
)

// DictPair is one (key, value) s-expression pair inside a #dict(...) literal.
type DictPair struct {
	Key   *SExpr
	Value *SExpr
}

// SExpr is the tagged union described in the package doc comment. Symbol
// text is preserved exactly as read (case included): AsValue folds it via
// interp.NewSymbol, while ToExpression keeps the raw text in the
// SymbolNode and environment lookup folds it.
type SExpr struct {
	Kind Kind

	IntVal  *big.Int
	BoolVal bool
	StrVal  string // string/symbol/primitive-name payload, raw

	Dict []DictPair

	Car *SExpr
	Cdr *SExpr
}

// PrimitiveResolver looks up a named primitive, used to resolve #prim(NAME)
// literals into an actual interp.Value. It is satisfied by
// internal/builtins.Registry; sexpr never imports builtins directly so the
// resolver is passed in at call time instead, keeping sexpr a leaf
// package relative to the primitive table.
type PrimitiveResolver interface {
	Lookup(name string) (interp.Value, bool)
}

// AsValue lifts an s-expression into a Value, the mechanism behind quote.
func (s *SExpr) AsValue(res PrimitiveResolver) (interp.Value, error) {
	switch s.Kind {
	case KindInteger:
		return interp.NewNumber(s.IntVal), nil
	case KindBoolean:
		return interp.NewBool(s.BoolVal), nil
	case KindString:
		return interp.NewString(s.StrVal), nil
	case KindSymbol:
		return interp.NewSymbol(s.StrVal), nil
	case KindNil:
		return interp.NewNil(), nil
	case KindPrimitive:
		if v, ok := res.Lookup(strings.ToUpper(s.StrVal)); ok {
			return v, nil
		}
		return interp.Value{}, rgerrors.New(rgerrors.KindRuntime, "unknown primitive %s", s.StrVal)
	case KindDict:
		entries := make([]interp.DictEntry, len(s.Dict))
		for i, p := range s.Dict {
			k, err := p.Key.AsValue(res)
			if err != nil {
				return interp.Value{}, err
			}
			v, err := p.Value.AsValue(res)
			if err != nil {
				return interp.Value{}, err
			}
			entries[i] = interp.DictEntry{Key: k, Value: v}
		}
		return interp.NewDict(entries), nil
	case KindEmpty:
		return interp.NewEmpty(), nil
	case KindCons:
		car, err := s.Car.AsValue(res)
		if err != nil {
			return interp.Value{}, err
		}
		cdr, err := s.Cdr.AsValue(res)
		if err != nil {
			return interp.Value{}, err
		}
		return interp.Cons(car, cdr)
	default:
		return interp.Value{}, rgerrors.New(rgerrors.KindRuntime, "unreadable s-expression")
	}
}

// IsAtom reports whether s is a non-list variant, the gate ToExpression
// and the parser's atom combinator use before accepting an s-expression as
// an atomic position.
func (s *SExpr) IsAtom() bool {
	switch s.Kind {
	case KindEmpty, KindCons:
		return false
	default:
		return true
	}
}

// ToExpression converts an atomic s-expression into AST, splitting a
// qualified symbol "M:NAME" into (qualifier, name). Lists are not atoms
// and are rejected here; the parser builds their AST through its own
// combinators (if/apply/fn/...), never through ToExpression.
func (s *SExpr) ToExpression(res PrimitiveResolver) (interp.Node, error) {
	switch s.Kind {
	case KindInteger:
		return &interp.IntegerNode{N: s.IntVal}, nil
	case KindBoolean:
		return &interp.BooleanNode{B: s.BoolVal}, nil
	case KindString:
		return &interp.StringNode{S: s.StrVal}, nil
	case KindNil:
		return &interp.LiteralNode{V: interp.NewNil()}, nil
	case KindPrimitive, KindDict:
		v, err := s.AsValue(res)
		if err != nil {
			return nil, err
		}
		return &interp.LiteralNode{V: v}, nil
	case KindSymbol:
		if idx := strings.IndexByte(s.StrVal, ':'); idx >= 0 {
			return &interp.SymbolNode{Qualifier: s.StrVal[:idx], Name: s.StrVal[idx+1:]}, nil
		}
		return &interp.SymbolNode{Name: s.StrVal}, nil
	default:
		return nil, rgerrors.New(rgerrors.KindParse, "cannot convert a list to an atomic expression: %s", s.String())
	}
}

// quoteOf implements interp.Quoted for a *SExpr bound to a resolver; it is
// the adapter the parser constructs when it builds a
// QuoteNode (interp.Quoted.AsValue takes no arguments, but resolving a
// #prim inside a quoted literal needs the registry, so the resolver is
// captured at parse time instead of threaded through the interface).
type quoteOf struct {
	s   *SExpr
	res PrimitiveResolver
}

func (q quoteOf) AsValue() (interp.Value, error) { return q.s.AsValue(q.res) }

// Quoted adapts s to interp.Quoted for the given resolver.
func Quoted(s *SExpr, res PrimitiveResolver) interp.Quoted {
	return quoteOf{s: s, res: res}
}

// String renders the re-readable surface form used both for debugging and
// as the basis of the reader round-trip law in SPEC_FULL §8 (quoting a
// value and reading back its String() form must reproduce it).
func (s *SExpr) String() string {
	switch s.Kind {
	case KindInteger:
		return s.IntVal.String()
	case KindBoolean:
		if s.BoolVal {
			return "#T"
		}
		return "#F"
	case KindString:
		return "\"" + s.StrVal + "\""
	case KindSymbol:
		return s.StrVal
	case KindNil:
		return "#nil"
	case KindPrimitive:
		return "#prim(" + s.StrVal + ")"
	case KindDict:
		var b strings.Builder
		b.WriteString("#dict(")
		for i, p := range s.Dict {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('(')
			b.WriteString(p.Key.String())
			b.WriteByte(' ')
			b.WriteString(p.Value.String())
			b.WriteByte(')')
		}
		b.WriteByte(')')
		return b.String()
	case KindEmpty:
		return "()"
	case KindCons:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(s.Car.String())
		s.Cdr.writeConsTail(&b)
		return b.String()
	default:
		return "#<?>"
	}
}

func (s *SExpr) writeConsTail(b *strings.Builder) {
	switch s.Kind {
	case KindEmpty:
		b.WriteByte(')')
	case KindCons:
		b.WriteByte(' ')
		b.WriteString(s.Car.String())
		s.Cdr.writeConsTail(b)
	default:
		b.WriteString(" . ")
		b.WriteString(s.String())
		b.WriteByte(')')
	}
}

// Elements flattens a proper SCons/SEmpty chain into a slice, used by the
// parser combinators that walk a list's elements one at a time.
func (s *SExpr) Elements() ([]*SExpr, bool) {
	var out []*SExpr
	cur := s
	for cur.Kind == KindCons {
		out = append(out, cur.Car)
		cur = cur.Cdr
	}
	if cur.Kind != KindEmpty {
		return nil, false
	}
	return out, true
}

// FromElements builds a proper list SExpr from a slice, innermost first.
func FromElements(elems []*SExpr) *SExpr {
	result := &SExpr{Kind: KindEmpty}
	for i := len(elems) - 1; i >= 0; i-- {
		result = &SExpr{Kind: KindCons, Car: elems[i], Cdr: result}
	}
	return result
}

// FromValue is the total value -> s-expr conversion SPEC_FULL §4.5 step 3
// needs to serialize a user macro's result back into surface syntax for
// re-parsing. Numbers, booleans, strings, symbols, nil, primitives, dicts,
// the empty list and conses route through their typed s-expr constructors;
// function, reference and module values have no surface syntax of their
// own, and converting one (or a list or dict containing one) returns a
// runtime error.
func FromValue(v interp.Value) (*SExpr, error) {
	switch v.Kind {
	case interp.KindNumber:
		return &SExpr{Kind: KindInteger, IntVal: v.Num}, nil
	case interp.KindBoolean:
		return &SExpr{Kind: KindBoolean, BoolVal: v.Bool}, nil
	case interp.KindString:
		return &SExpr{Kind: KindString, StrVal: v.Str}, nil
	case interp.KindSymbol:
		return &SExpr{Kind: KindSymbol, StrVal: v.Str}, nil
	case interp.KindNil:
		return &SExpr{Kind: KindNil}, nil
	case interp.KindPrimitive:
		return &SExpr{Kind: KindPrimitive, StrVal: v.Prim.Name}, nil
	case interp.KindDict:
		pairs := make([]DictPair, len(v.Dict.Entries))
		for i, e := range v.Dict.Entries {
			k, err := FromValue(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := FromValue(e.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = DictPair{Key: k, Value: val}
		}
		return &SExpr{Kind: KindDict, Dict: pairs}, nil
	case interp.KindEmpty:
		return &SExpr{Kind: KindEmpty}, nil
	case interp.KindCons:
		car, err := FromValue(v.Cons.Car)
		if err != nil {
			return nil, err
		}
		cdr, err := FromValue(v.Cons.Cdr)
		if err != nil {
			return nil, err
		}
		return &SExpr{Kind: KindCons, Car: car, Cdr: cdr}, nil
	default:
		return nil, rgerrors.New(rgerrors.KindRuntime, "value of type %s has no surface syntax", v.TypeName())
	}
}
