package builtins

import "github.com/rpucella/Ragnarok/internal/interp"

func installEquality(r *Registry) {
	r.Register("EQ?", CategoryEquality, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewBool(args[0].IsEq(args[1])), nil
	})
	r.Register("EQL?", CategoryEquality, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewBool(args[0].IsEqual(args[1])), nil
	})
}
