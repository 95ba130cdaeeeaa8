package interp

import (
	"math/big"

	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

// Node is an AST expression. EvalPartial performs exactly one step: if
// nextEnv is nil the expression has fully reduced to value; otherwise next
// is the expression to evaluate in nextEnv, a tail transition the driver
// below re-enters without growing the Go call stack. This mirrors the
// source's Expression.eval_partial returning either a Value or a
// (next-expr, next-env) pair, translated into an explicit extra return
// rather than a tagged union return value.
type Node interface {
	EvalPartial(ctxt *Context, env *Environment) (next Node, nextEnv *Environment, value Value, err error)
}

// Eval drives the trampoline described in SPEC_FULL §4.4: it loops
// threading (node, env) through EvalPartial until a step reports no
// nextEnv, at which point value is final. Because Go has no native
// tail-call optimization, this explicit loop is what keeps a self-tail-call
// of 10^5 iterations from growing the host stack (SPEC_FULL §8).
func Eval(ctxt *Context, node Node, env *Environment) (Value, error) {
	curNode, curEnv := node, env
	for {
		next, nextEnv, value, err := curNode.EvalPartial(ctxt, curEnv)
		if err != nil {
			return Value{}, err
		}
		if nextEnv == nil {
			return value, nil
		}
		curNode, curEnv = next, nextEnv
	}
}

// Quoted is the minimal surface a quoted payload must offer. The adapter
// returned by sexpr.Quoted (an s-expression bound to a primitive resolver)
// satisfies it, so this package never imports internal/sexpr, which
// itself imports interp: interp defines the interface, sexpr provides the
// implementation.
type Quoted interface {
	AsValue() (Value, error)
}

// LiteralNode wraps an already-computed Value as an AST leaf — used when a
// s-expression converts directly to a Value with no further syntax of its
// own, such as #prim and #dict literals.
type LiteralNode struct{ V Value }

func (n *LiteralNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	return nil, nil, n.V, nil
}

// StringNode, IntegerNode and BooleanNode are literal leaves kept distinct
// from LiteralNode per SPEC_FULL §3's AST taxonomy rather than folded into
// it; Dump renders them the same way it renders a LiteralNode.
type StringNode struct{ S string }

func (n *StringNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	return nil, nil, NewString(n.S), nil
}

type IntegerNode struct{ N *big.Int }

func (n *IntegerNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	return nil, nil, NewNumber(n.N), nil
}

type BooleanNode struct{ B bool }

func (n *BooleanNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	return nil, nil, NewBool(n.B), nil
}

// SymbolNode resolves a (possibly qualified) name: lexical chain first,
// then each open module in order, per SPEC_FULL §4.4.
type SymbolNode struct {
	Name      string
	Qualifier string
}

func (n *SymbolNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	if n.Qualifier != "" {
		mod, ok := ctxt.OpenModule(n.Qualifier)
		if !ok {
			if b, ok := env.Find(n.Qualifier); ok && b.Value.Kind == KindModule {
				mod = b.Value.Mod
			} else {
				return nil, nil, Value{}, rgerrors.New(rgerrors.KindModule, "%s is not a module", n.Qualifier)
			}
		}
		b, ok := mod.Env.Find(n.Name)
		if !ok {
			return nil, nil, Value{}, rgerrors.New(rgerrors.KindUnboundSymbol, "unbound symbol %s:%s", n.Qualifier, n.Name)
		}
		if !b.Initialized {
			return nil, nil, Value{}, rgerrors.New(rgerrors.KindRuntime, "read of uninitialized binding %s:%s", n.Qualifier, n.Name)
		}
		return nil, nil, b.Value, nil
	}
	if b, ok := env.Find(n.Name); ok {
		if !b.Initialized {
			return nil, nil, Value{}, rgerrors.New(rgerrors.KindRuntime, "read of uninitialized binding %s", n.Name)
		}
		return nil, nil, b.Value, nil
	}
	for _, modName := range ctxt.Modules {
		mod, ok := ctxt.OpenModule(modName)
		if !ok {
			continue
		}
		if b, ok := mod.Env.Find(n.Name); ok {
			if !b.Initialized {
				return nil, nil, Value{}, rgerrors.New(rgerrors.KindRuntime, "read of uninitialized binding %s", n.Name)
			}
			return nil, nil, b.Value, nil
		}
	}
	return nil, nil, Value{}, rgerrors.New(rgerrors.KindUnboundSymbol, "unbound symbol %s", n.Name)
}

// IfNode evaluates Cond eagerly, then returns the selected branch as a
// tail transition so an if-chain in tail position never grows the stack.
type IfNode struct {
	Cond, Then, Else Node
}

func (n *IfNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	c, err := Eval(ctxt, n.Cond, env)
	if err != nil {
		return nil, nil, Value{}, err
	}
	if c.IsTrue() {
		return n.Then, env, Value{}, nil
	}
	return n.Else, env, Value{}, nil
}

// ApplyNode evaluates the function position and its arguments left to
// right, then either invokes a primitive immediately (non-tail) or, for a
// user function, returns (body, newEnv) as a tail transition.
type ApplyNode struct {
	Fn   Node
	Args []Node
}

func (n *ApplyNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	fv, err := Eval(ctxt, n.Fn, env)
	if err != nil {
		return nil, nil, Value{}, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(ctxt, a, env)
		if err != nil {
			return nil, nil, Value{}, err
		}
		args[i] = v
	}
	switch fv.Kind {
	case KindPrimitive:
		result, err := fv.Prim.Call(ctxt, args)
		if err != nil {
			return nil, nil, Value{}, err
		}
		return nil, nil, result, nil
	case KindFunction:
		newEnv, err := bindParams(fv.Fn, args)
		if err != nil {
			return nil, nil, Value{}, err
		}
		return fv.Fn.Body, newEnv, Value{}, nil
	default:
		return nil, nil, Value{}, rgerrors.New(rgerrors.KindNotCallable, "cannot apply %s", fv.String())
	}
}

// LambdaNode constructs a function Value capturing env.
type LambdaNode struct {
	Params []string
	Body   Node
}

func (n *LambdaNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	return nil, nil, NewFunction(n.Params, n.Body, env), nil
}

// QuoteNode returns S.AsValue() with no tail step.
type QuoteNode struct {
	S Quoted
}

func (n *QuoteNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	v, err := n.S.AsValue()
	if err != nil {
		return nil, nil, Value{}, err
	}
	return nil, nil, v, nil
}

// LetRecBinding pairs a name with the AST that computes its value.
type LetRecBinding struct {
	Name string
	Init Node
}

// LetRecNode pre-inserts every name as an uninitialized sentinel, evaluates
// every right-hand side in that extended environment so mutually-recursive
// closures can already see each other's names, then fills the sentinels
// in and returns the body as a tail transition.
type LetRecNode struct {
	Bindings []LetRecBinding
	Body     Node
}

func (n *LetRecNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	newEnv := NewEnclosedEnvironment(env)
	for _, b := range n.Bindings {
		newEnv.addUninitialized(b.Name)
	}
	values := make([]Value, len(n.Bindings))
	for i, b := range n.Bindings {
		v, err := Eval(ctxt, b.Init, newEnv)
		if err != nil {
			return nil, nil, Value{}, err
		}
		values[i] = v
	}
	for i, b := range n.Bindings {
		newEnv.initializeLocal(b.Name, values[i])
	}
	return n.Body, newEnv, Value{}, nil
}

// DoNode evaluates every expression but the last for effect, then returns
// the last as a tail transition; an empty Do yields nil.
type DoNode struct {
	Exprs []Node
}

func (n *DoNode) EvalPartial(ctxt *Context, env *Environment) (Node, *Environment, Value, error) {
	if len(n.Exprs) == 0 {
		return nil, nil, NewNil(), nil
	}
	for _, e := range n.Exprs[:len(n.Exprs)-1] {
		if _, err := Eval(ctxt, e, env); err != nil {
			return nil, nil, Value{}, err
		}
	}
	return n.Exprs[len(n.Exprs)-1], env, Value{}, nil
}
