package builtins

import (
	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

func installDict(r *Registry) {
	r.Register("MAKE-DICT", CategoryDict, 1, 1, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("MAKE-DICT", args[0], interp.Value.IsList); err != nil {
			return interp.Value{}, err
		}
		pairs, err := interp.Elements(args[0])
		if err != nil {
			return interp.Value{}, err
		}
		entries := make([]interp.DictEntry, 0, len(pairs))
		for _, p := range pairs {
			if err := interp.CheckArgType("MAKE-DICT", p, interp.Value.IsList); err != nil {
				return interp.Value{}, err
			}
			kv, err := interp.Elements(p)
			if err != nil || len(kv) != 2 {
				return interp.Value{}, rgerrors.New(rgerrors.KindWrongArgType, "make-dict: expected a (key value) pair")
			}
			entries = append(entries, interp.DictEntry{Key: kv[0], Value: kv[1]})
		}
		return interp.NewDict(entries), nil
	})

	r.Register("DICT-GET", CategoryDict, 2, 2, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("DICT-GET", args[0], interp.Value.IsDict); err != nil {
			return interp.Value{}, err
		}
		for _, e := range args[0].Dict.Entries {
			if e.Key.IsEqual(args[1]) {
				return e.Value, nil
			}
		}
		return interp.Value{}, rgerrors.New(rgerrors.KindRuntime, "dict-get: key %s not found", args[1].String())
	})

	// DICT-UPDATE is functional per SPEC_FULL §9's resolution of the
	// source's inconsistent DICT-UPDATE/VDict.update logic: replace the
	// matching entry in place if the key is already present, otherwise
	// append a new entry — never both in the same call.
	r.Register("DICT-UPDATE", CategoryDict, 3, 3, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("DICT-UPDATE", args[0], interp.Value.IsDict); err != nil {
			return interp.Value{}, err
		}
		key, val := args[1], args[2]
		entries := append([]interp.DictEntry(nil), args[0].Dict.Entries...)
		found := false
		for i, e := range entries {
			if e.Key.IsEqual(key) {
				entries[i] = interp.DictEntry{Key: key, Value: val}
				found = true
				break
			}
		}
		if !found {
			entries = append(entries, interp.DictEntry{Key: key, Value: val})
		}
		return interp.NewDict(entries), nil
	})

	r.Register("DICT-SET", CategoryDict, 3, 3, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		if err := interp.CheckArgType("DICT-SET", args[0], interp.Value.IsDict); err != nil {
			return interp.Value{}, err
		}
		key, val := args[1], args[2]
		d := args[0].Dict
		for i, e := range d.Entries {
			if e.Key.IsEqual(key) {
				d.Entries[i].Value = val
				return interp.NewNil(), nil
			}
		}
		d.Entries = append(d.Entries, interp.DictEntry{Key: key, Value: val})
		return interp.NewNil(), nil
	})
}
