package builtins

import (
	"strings"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

func installStrings(r *Registry) {
	r.Register("STRING-APPEND", CategoryString, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		var b strings.Builder
		for _, a := range args {
			if err := interp.CheckArgType("STRING-APPEND", a, interp.Value.IsString); err != nil {
				return interp.Value{}, err
			}
			b.WriteString(a.Str)
		}
		return interp.NewString(b.String()), nil
	})

	r.Register("STRING-LENGTH", CategoryString, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("STRING-LENGTH", args[0], interp.Value.IsString); err != nil {
			return interp.Value{}, err
		}
		return interp.NewInt64(int64(len([]rune(args[0].Str)))), nil
	})

	r.Register("STRING-LOWER", CategoryString, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("STRING-LOWER", args[0], interp.Value.IsString); err != nil {
			return interp.Value{}, err
		}
		return interp.NewString(strings.ToLower(args[0].Str)), nil
	})

	r.Register("STRING-UPPER", CategoryString, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("STRING-UPPER", args[0], interp.Value.IsString); err != nil {
			return interp.Value{}, err
		}
		return interp.NewString(strings.ToUpper(args[0].Str)), nil
	})

	r.Register("STRING-SUBSTRING", CategoryString, 1, 3, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("STRING-SUBSTRING", args[0], interp.Value.IsString); err != nil {
			return interp.Value{}, err
		}
		runes := []rune(args[0].Str)
		start := 0
		end := len(runes)
		if len(args) > 1 {
			if err := interp.CheckArgType("STRING-SUBSTRING", args[1], interp.Value.IsNumber); err != nil {
				return interp.Value{}, err
			}
			start = int(args[1].Num.Int64())
		}
		if len(args) > 2 {
			if err := interp.CheckArgType("STRING-SUBSTRING", args[2], interp.Value.IsNumber); err != nil {
				return interp.Value{}, err
			}
			end = int(args[2].Num.Int64())
		}
		if start < 0 || end > len(runes) || start > end {
			return interp.Value{}, rgerrors.New(rgerrors.KindRuntime, "string-substring: index out of range")
		}
		return interp.NewString(string(runes[start:end])), nil
	})
}
