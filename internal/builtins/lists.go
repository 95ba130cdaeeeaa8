package builtins

import (
	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

func installLists(r *Registry) {
	r.Register("CONS", CategoryList, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.Cons(args[0], args[1])
	})

	r.Register("APPEND", CategoryList, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		var all []interp.Value
		for _, a := range args {
			if err := interp.CheckArgType("APPEND", a, interp.Value.IsList); err != nil {
				return interp.Value{}, err
			}
			elems, err := interp.Elements(a)
			if err != nil {
				return interp.Value{}, err
			}
			all = append(all, elems...)
		}
		return interp.List(all...), nil
	})

	r.Register("REVERSE", CategoryList, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("REVERSE", args[0], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[0])
		if err != nil {
			return interp.Value{}, err
		}
		reversed := make([]interp.Value, len(elems))
		for i, e := range elems {
			reversed[len(elems)-1-i] = e
		}
		return interp.List(reversed...), nil
	})

	r.Register("FIRST", CategoryList, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("FIRST", args[0], interp.Value.IsCons); err != nil {
			return interp.Value{}, err
		}
		return args[0].Cons.Car, nil
	})

	r.Register("REST", CategoryList, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("REST", args[0], interp.Value.IsCons); err != nil {
			return interp.Value{}, err
		}
		return args[0].Cons.Cdr, nil
	})

	r.Register("LIST", CategoryList, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.List(args...), nil
	})

	r.Register("LENGTH", CategoryList, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("LENGTH", args[0], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[0])
		if err != nil {
			return interp.Value{}, err
		}
		return interp.NewInt64(int64(len(elems))), nil
	})

	r.Register("NTH", CategoryList, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("NTH", args[0], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		if err := interp.CheckArgType("NTH", args[1], interp.Value.IsNumber); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[0])
		if err != nil {
			return interp.Value{}, err
		}
		n := args[1].Num.Int64()
		if n < 0 || n >= int64(len(elems)) {
			return interp.Value{}, rgerrors.New(rgerrors.KindRuntime, "nth: index out of range")
		}
		return elems[n], nil
	})
}
