package builtins

import (
	"math/big"

	"github.com/rpucella/Ragnarok/internal/interp"
)

func installArithmetic(r *Registry) {
	r.Register("+", CategoryArithmetic, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		sum := big.NewInt(0)
		for _, a := range args {
			if err := interp.CheckArgType("+", a, interp.Value.IsNumber); err != nil {
				return interp.Value{}, err
			}
			sum.Add(sum, a.Num)
		}
		return interp.NewNumber(sum), nil
	})

	r.Register("*", CategoryArithmetic, 0, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		product := big.NewInt(1)
		for _, a := range args {
			if err := interp.CheckArgType("*", a, interp.Value.IsNumber); err != nil {
				return interp.Value{}, err
			}
			product.Mul(product, a.Num)
		}
		return interp.NewNumber(product), nil
	})

	r.Register("-", CategoryArithmetic, 1, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		for _, a := range args {
			if err := interp.CheckArgType("-", a, interp.Value.IsNumber); err != nil {
				return interp.Value{}, err
			}
		}
		if len(args) == 1 {
			return interp.NewNumber(new(big.Int).Neg(args[0].Num)), nil
		}
		result := new(big.Int).Set(args[0].Num)
		for _, a := range args[1:] {
			result.Sub(result, a.Num)
		}
		return interp.NewNumber(result), nil
	})

	compare := func(name string, ok func(cmp int) bool) {
		r.Register(name, CategoryArithmetic, 1, -1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
			for _, a := range args {
				if err := interp.CheckArgType(name, a, interp.Value.IsNumber); err != nil {
					return interp.Value{}, err
				}
			}
			for i := 0; i+1 < len(args); i++ {
				if !ok(args[i].Num.Cmp(args[i+1].Num)) {
					return interp.NewBool(false), nil
				}
			}
			return interp.NewBool(true), nil
		})
	}
	compare("=", func(c int) bool { return c == 0 })
	compare("<", func(c int) bool { return c < 0 })
	compare("<=", func(c int) bool { return c <= 0 })
	compare(">", func(c int) bool { return c > 0 })
	compare(">=", func(c int) bool { return c >= 0 })
}
