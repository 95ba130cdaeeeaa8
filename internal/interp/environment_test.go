package interp

import "testing"

func TestDefineAndFindCaseFolds(t *testing.T) {
	env := NewEnvironment()
	env.Define("foo", NewInt64(1))

	for _, name := range []string{"foo", "FOO", "Foo", "fOO"} {
		b, ok := env.Find(name)
		if !ok {
			t.Fatalf("Find(%q) not found", name)
		}
		if b.Value.Num.Int64() != 1 {
			t.Errorf("Find(%q).Value = %v, want 1", name, b.Value)
		}
	}
}

func TestFindWalksOuterChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NewInt64(1))
	inner := NewEnclosedEnvironment(outer)

	b, ok := inner.Find("x")
	if !ok || b.Value.Num.Int64() != 1 {
		t.Fatalf("Find(x) via outer chain failed: %v, %v", b, ok)
	}

	if inner.HasLocal("x") {
		t.Errorf("HasLocal(x) on inner frame = true, want false (x lives in outer)")
	}
}

func TestInnerShadowsOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NewInt64(1))
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", NewInt64(2))

	b, _ := inner.Find("x")
	if b.Value.Num.Int64() != 2 {
		t.Errorf("inner Find(x) = %v, want 2", b.Value)
	}
	ob, _ := outer.Find("x")
	if ob.Value.Num.Int64() != 1 {
		t.Errorf("outer Find(x) = %v, want 1 (shadowing should not mutate outer)", ob.Value)
	}
}

func TestUpdateRebindsNearestExisting(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", NewInt64(1))
	inner := NewEnclosedEnvironment(outer)

	inner.Update("x", NewInt64(99))

	if inner.HasLocal("x") {
		t.Errorf("Update() on a name bound in an outer frame should not create a local binding")
	}
	b, _ := outer.Find("x")
	if b.Value.Num.Int64() != 99 {
		t.Errorf("outer binding after Update() = %v, want 99", b.Value)
	}
}

func TestUpdateWithNoExistingBindingAddsLocal(t *testing.T) {
	env := NewEnvironment()
	env.Update("y", NewInt64(5))
	b, ok := env.Find("y")
	if !ok || b.Value.Num.Int64() != 5 {
		t.Fatalf("Update() with no existing binding should create one locally")
	}
	if !b.Mutable {
		t.Errorf("Update()-created binding should be Mutable")
	}
}

func TestAddOverwritesLocalWithoutDuplicatingOrder(t *testing.T) {
	env := NewEnvironment()
	env.Add("x", NewInt64(1), "", false)
	env.Add("x", NewInt64(2), "(def x 2)", true)

	count := 0
	for _, nb := range env.Bindings() {
		if nb.Name == "X" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Bindings() has %d entries for X after re-Add, want 1", count)
	}

	b, _ := env.Find("x")
	if b.Value.Num.Int64() != 2 || !b.Mutable || !b.HasSource {
		t.Errorf("Add() did not overwrite the existing binding record: %+v", b)
	}
}

func TestUninitializedBindingSupportsLetRec(t *testing.T) {
	env := NewEnvironment()
	env.addUninitialized("f")

	b, ok := env.Find("f")
	if !ok {
		t.Fatalf("Find() should see an uninitialized sentinel")
	}
	if b.Initialized {
		t.Errorf("freshly-added sentinel should be Initialized = false")
	}

	env.initializeLocal("f", NewInt64(42))
	b, _ = env.Find("f")
	if !b.Initialized || b.Value.Num.Int64() != 42 {
		t.Errorf("initializeLocal() did not fill in the sentinel: %+v", b)
	}
}

func TestBindingsOrderOuterFirstInnerOverrides(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", NewInt64(1))
	outer.Define("b", NewInt64(2))
	inner := NewEnclosedEnvironment(outer)
	inner.Define("b", NewInt64(20))
	inner.Define("c", NewInt64(3))

	got := inner.Bindings()
	names := make([]string, len(got))
	for i, nb := range got {
		names[i] = nb.Name
	}
	want := []string{"A", "B", "C"}
	if len(names) != len(want) {
		t.Fatalf("Bindings() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Bindings()[%d].Name = %q, want %q", i, names[i], want[i])
		}
	}

	for _, nb := range got {
		if nb.Name == "B" && nb.Binding.Value.Num.Int64() != 20 {
			t.Errorf("Bindings() should report the inner shadowing value for B, got %v", nb.Binding.Value)
		}
	}
}

func TestOuterReturnsEnclosingFrame(t *testing.T) {
	outer := NewEnvironment()
	inner := NewEnclosedEnvironment(outer)
	if inner.Outer() != outer {
		t.Errorf("Outer() did not return the enclosing frame")
	}
	if outer.Outer() != nil {
		t.Errorf("Outer() on the root frame should be nil")
	}
}
