package interp

import "github.com/rpucella/Ragnarok/internal/rgerrors"

// Call enforces the primitive's arity window before invoking Fn, so every
// registered primitive gets arity checking for free rather than repeating
// len(args) guards in each implementation.
func (p *Primitive) Call(ctxt *Context, args []Value) (Value, error) {
	if len(args) < p.Min {
		return Value{}, rgerrors.New(rgerrors.KindWrongArgCount, "too few arguments (%d) to %s", len(args), p.Name)
	}
	if p.Max >= 0 && len(args) > p.Max {
		return Value{}, rgerrors.New(rgerrors.KindWrongArgCount, "too many arguments (%d) to %s", len(args), p.Name)
	}
	return p.Fn(ctxt, args)
}

// Apply invokes any callable Value (primitive or user function) with args,
// shared by ApplyNode and the higher-order primitives (APPLY, MAP, FILTER,
// FOLDR, FOLDL) so both routes agree on exactly what "callable" means.
func Apply(ctxt *Context, fn Value, args []Value) (Value, error) {
	switch fn.Kind {
	case KindPrimitive:
		return fn.Prim.Call(ctxt, args)
	case KindFunction:
		env, err := bindParams(fn.Fn, args)
		if err != nil {
			return Value{}, err
		}
		return Eval(ctxt, fn.Fn.Body, env)
	default:
		return Value{}, rgerrors.New(rgerrors.KindNotCallable, "cannot apply %s", fn.String())
	}
}

func bindParams(fn *Function, args []Value) (*Environment, error) {
	if len(args) != len(fn.Params) {
		return nil, rgerrors.New(rgerrors.KindWrongArgCount, "function expects %d argument(s), got %d", len(fn.Params), len(args))
	}
	env := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		env.Define(p, args[i])
	}
	return env, nil
}
