package builtins

import "github.com/rpucella/Ragnarok/internal/interp"

func installHigherOrder(r *Registry) {
	r.Register("APPLY", CategoryHigherOrder, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("APPLY", args[0], interp.Value.IsFunction); err != nil {
			return interp.Value{}, err
		}
		if err := interp.CheckArgType("APPLY", args[1], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[1])
		if err != nil {
			return interp.Value{}, err
		}
		return interp.Apply(ctxt, args[0], elems)
	})

	r.Register("MAP", CategoryHigherOrder, 2, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("MAP", args[0], interp.Value.IsFunction); err != nil {
			return interp.Value{}, err
		}
		lists := make([][]interp.Value, 0, len(args)-1)
		shortest := -1
		for _, a := range args[1:] {
			if err := interp.CheckArgType("MAP", a, interp.Value.IsList); err != nil {
				return interp.Value{}, err
			}
			elems, err := interp.Elements(a)
			if err != nil {
				return interp.Value{}, err
			}
			lists = append(lists, elems)
			if shortest < 0 || len(elems) < shortest {
				shortest = len(elems)
			}
		}
		result := make([]interp.Value, shortest)
		for i := 0; i < shortest; i++ {
			callArgs := make([]interp.Value, len(lists))
			for j, l := range lists {
				callArgs[j] = l[i]
			}
			v, err := interp.Apply(ctxt, args[0], callArgs)
			if err != nil {
				return interp.Value{}, err
			}
			result[i] = v
		}
		return interp.List(result...), nil
	})

	r.Register("FILTER", CategoryHigherOrder, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("FILTER", args[0], interp.Value.IsFunction); err != nil {
			return interp.Value{}, err
		}
		if err := interp.CheckArgType("FILTER", args[1], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[1])
		if err != nil {
			return interp.Value{}, err
		}
		var kept []interp.Value
		for _, e := range elems {
			keep, err := interp.Apply(ctxt, args[0], []interp.Value{e})
			if err != nil {
				return interp.Value{}, err
			}
			if keep.IsTrue() {
				kept = append(kept, e)
			}
		}
		return interp.List(kept...), nil
	})

	r.Register("FOLDR", CategoryHigherOrder, 3, 3, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("FOLDR", args[0], interp.Value.IsFunction); err != nil {
			return interp.Value{}, err
		}
		if err := interp.CheckArgType("FOLDR", args[1], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[1])
		if err != nil {
			return interp.Value{}, err
		}
		acc := args[2]
		for i := len(elems) - 1; i >= 0; i-- {
			acc, err = interp.Apply(ctxt, args[0], []interp.Value{elems[i], acc})
			if err != nil {
				return interp.Value{}, err
			}
		}
		return acc, nil
	})

	r.Register("FOLDL", CategoryHigherOrder, 3, 3, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("FOLDL", args[0], interp.Value.IsFunction); err != nil {
			return interp.Value{}, err
		}
		if err := interp.CheckArgType("FOLDL", args[2], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		elems, err := interp.Elements(args[2])
		if err != nil {
			return interp.Value{}, err
		}
		acc := args[1]
		for _, e := range elems {
			var err error
			acc, err = interp.Apply(ctxt, args[0], []interp.Value{acc, e})
			if err != nil {
				return interp.Value{}, err
			}
		}
		return acc, nil
	})
}
