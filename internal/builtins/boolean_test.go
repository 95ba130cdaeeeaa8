package builtins

import (
	"testing"

	"github.com/rpucella/Ragnarok/internal/interp"
)

func TestNot(t *testing.T) {
	r := NewCoreRegistry()
	if got := callPrim(t, r, "NOT", interp.NewBool(true)); got.IsTrue() {
		t.Errorf("(not #t) = %v, want #f", got)
	}
	if got := callPrim(t, r, "NOT", interp.NewBool(false)); !got.IsTrue() {
		t.Errorf("(not #f) = %v, want #t", got)
	}
	if got := callPrim(t, r, "NOT", interp.NewNil()); !got.IsTrue() {
		t.Errorf("(not nil) = %v, want #t (nil is falsy)", got)
	}
}
