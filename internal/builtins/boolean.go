package builtins

import "github.com/rpucella/Ragnarok/internal/interp"

func installBoolean(r *Registry) {
	r.Register("NOT", CategoryBoolean, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewBool(!args[0].IsTrue()), nil
	})
}
