package builtins

import (
	"testing"

	"github.com/rpucella/Ragnarok/internal/interp"
)

func TestRegisterFoldsNameCase(t *testing.T) {
	r := NewRegistry()
	r.Register("foo", CategoryIO, 0, 0, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
		return interp.NewNil(), nil
	})
	if _, ok := r.Lookup("FOO"); !ok {
		t.Fatalf("Lookup(FOO) should find a primitive registered as foo")
	}
	if _, ok := r.Lookup("foo"); !ok {
		t.Fatalf("Lookup(foo) should find a primitive registered as foo")
	}
}

func TestLookupUnknownFails(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("NOPE"); ok {
		t.Fatalf("Lookup(NOPE) should fail on an empty registry")
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"Z", "A", "M"} {
		r.Register(n, CategoryIO, 0, 0, func(ctxt *interp.Context, args []interp.Value) (interp.Value, error) {
			return interp.NewNil(), nil
		})
	}
	got := r.Names()
	want := []string{"A", "M", "Z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestByCategorySorted(t *testing.T) {
	r := NewCoreRegistry()
	names := r.ByCategory(CategoryArithmetic)
	if len(names) == 0 {
		t.Fatalf("ByCategory(arithmetic) returned nothing")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ByCategory() not sorted: %v", names)
		}
	}
}

func TestNewCoreRegistryRegistersInteractivePrimitives(t *testing.T) {
	r := NewCoreRegistry()
	for _, name := range []string{"QUIT", "ENV", "MODULE", "LOAD"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("NewCoreRegistry() is missing interactive primitive %s", name)
		}
	}
	names := r.ByCategory(CategoryInteractive)
	if len(names) != 4 {
		t.Errorf("ByCategory(interactive) = %v, want 4 entries", names)
	}
}
