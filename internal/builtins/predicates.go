package builtins

import "github.com/rpucella/Ragnarok/internal/interp"

func installPredicates(r *Registry) {
	r.Register("TYPE", CategoryPredicate, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewSymbol(args[0].TypeName()), nil
	})
	predicate := func(name string, pred func(interp.Value) bool) {
		r.Register(name, CategoryPredicate, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
			return interp.NewBool(pred(args[0])), nil
		})
	}
	predicate("NUMBER?", interp.Value.IsNumber)
	predicate("BOOLEAN?", interp.Value.IsBoolean)
	predicate("STRING?", interp.Value.IsString)
	predicate("SYMBOL?", interp.Value.IsSymbol)
	predicate("NIL?", interp.Value.IsNil)
	predicate("EMPTY?", interp.Value.IsEmpty)
	predicate("CONS?", interp.Value.IsCons)
	predicate("LIST?", interp.Value.IsList)
	predicate("FUNCTION?", interp.Value.IsFunction)
	predicate("REF?", interp.Value.IsReference)
	predicate("DICT?", interp.Value.IsDict)
}
