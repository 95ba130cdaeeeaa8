package interp

import "testing"

func echoPrimitive(min, max int) *Primitive {
	return &Primitive{
		Name: "ECHO",
		Min:  min,
		Max:  max,
		Fn: func(ctxt *Context, args []Value) (Value, error) {
			if len(args) == 0 {
				return NewNil(), nil
			}
			return args[0], nil
		},
	}
}

func TestPrimitiveCallEnforcesArity(t *testing.T) {
	ctxt := newTestContext(NewEnvironment())
	p := echoPrimitive(1, 2)

	if _, err := p.Call(ctxt, nil); err == nil {
		t.Errorf("Call() with too few args should error")
	}
	if _, err := p.Call(ctxt, []Value{NewInt64(1), NewInt64(2), NewInt64(3)}); err == nil {
		t.Errorf("Call() with too many args should error")
	}
	v, err := p.Call(ctxt, []Value{NewInt64(7)})
	if err != nil || v.Num.Int64() != 7 {
		t.Errorf("Call() within arity = %v, %v, want 7, nil", v, err)
	}
}

func TestPrimitiveCallUnboundedMax(t *testing.T) {
	ctxt := newTestContext(NewEnvironment())
	p := echoPrimitive(0, -1)
	args := make([]Value, 50)
	for i := range args {
		args[i] = NewInt64(int64(i))
	}
	if _, err := p.Call(ctxt, args); err != nil {
		t.Errorf("Call() with Max < 0 should accept any count, got error: %v", err)
	}
}

func TestApplyPrimitiveAndFunction(t *testing.T) {
	ctxt := newTestContext(NewEnvironment())

	prim := NewPrimitive(echoPrimitive(1, 1))
	got, err := Apply(ctxt, prim, []Value{NewInt64(5)})
	if err != nil || got.Num.Int64() != 5 {
		t.Fatalf("Apply(primitive) = %v, %v, want 5", got, err)
	}

	fn := NewFunction([]string{"a", "b"}, &SymbolNode{Name: "b"}, NewEnvironment())
	got, err = Apply(ctxt, fn, []Value{NewInt64(1), NewInt64(2)})
	if err != nil || got.Num.Int64() != 2 {
		t.Fatalf("Apply(function) = %v, %v, want 2", got, err)
	}
}

func TestApplyFunctionWrongArgCount(t *testing.T) {
	ctxt := newTestContext(NewEnvironment())
	fn := NewFunction([]string{"a", "b"}, &SymbolNode{Name: "a"}, NewEnvironment())
	if _, err := Apply(ctxt, fn, []Value{NewInt64(1)}); err == nil {
		t.Fatalf("Apply() with wrong arg count should error")
	}
}

func TestApplyNotCallableValue(t *testing.T) {
	ctxt := newTestContext(NewEnvironment())
	if _, err := Apply(ctxt, NewInt64(1), nil); err == nil {
		t.Fatalf("Apply() on a non-callable value should error")
	}
}
