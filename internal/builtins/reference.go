package builtins

import "github.com/rpucella/Ragnarok/internal/interp"

func installReferences(r *Registry) {
	r.Register("REF", CategoryReference, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewReference(args[0]), nil
	})
	r.Register("REF-GET", CategoryReference, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("REF-GET", args[0], interp.Value.IsReference); err != nil {
			return interp.Value{}, err
		}
		return args[0].Ref.V, nil
	})
	r.Register("REF-SET", CategoryReference, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("REF-SET", args[0], interp.Value.IsReference); err != nil {
			return interp.Value{}, err
		}
		args[0].Ref.V = args[1]
		return interp.NewNil(), nil
	})
}
