package builtins

import (
	"strings"

	"github.com/rpucella/Ragnarok/internal/interp"
)

func installIO(r *Registry) {
	r.Register("PRINT", CategoryIO, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Display()
		}
		ctxt.Print(strings.Join(parts, " "))
		return interp.NewNil(), nil
	})
}
