// Grounded on original_source/src/interactive.py's quit/env/module/load
// @primitive functions: each one forwards to an interp.Context callback
// rather than touching a terminal, a module table, or a filesystem
// itself, which is what keeps the REPL/persistence Non-goal intact while
// still giving these four primitives real behavior (SPEC_FULL §4.7.1).
package builtins

import (
	"fmt"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

func installInteractive(r *Registry) {
	r.Register("QUIT", CategoryInteractive, 0, 0, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.Value{}, rgerrors.Quit{}
	})

	r.Register("ENV", CategoryInteractive, 0, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		env := ctxt.Env
		if len(args) == 1 {
			if err := interp.CheckArgType("ENV", args[0], interp.Value.IsSymbol); err != nil {
				return interp.Value{}, err
			}
			name := args[0].Str
			if name != "SCRATCH" {
				mod, ok := ctxt.OpenModule(name)
				if !ok {
					return interp.Value{}, rgerrors.New(rgerrors.KindModule, "%s is not a module", name)
				}
				env = mod.Env
			}
		}
		for _, nb := range env.Bindings() {
			ctxt.Print(fmt.Sprintf(";; %s", nb.Name))
		}
		return interp.NewNil(), nil
	})

	r.Register("MODULE", CategoryInteractive, 0, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if len(args) == 0 {
			for _, nb := range ctxt.Env.Bindings() {
				if nb.Binding.Initialized && nb.Binding.Value.IsModule() {
					ctxt.Print(fmt.Sprintf(";; %s", nb.Name))
				}
			}
			return interp.NewNil(), nil
		}
		if err := interp.CheckArgType("MODULE", args[0], interp.Value.IsSymbol); err != nil {
			return interp.Value{}, err
		}
		name := args[0].Str
		if name == "SCRATCH" {
			name = ""
		}
		ctxt.SetModule(name)
		return interp.NewNil(), nil
	})

	r.Register("LOAD", CategoryInteractive, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("LOAD", args[0], interp.Value.IsString); err != nil {
			return interp.Value{}, err
		}
		if err := ctxt.ReadFile(args[0].Str); err != nil {
			return interp.Value{}, err
		}
		return interp.NewNil(), nil
	})
}
