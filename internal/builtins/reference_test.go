package builtins

import (
	"testing"

	"github.com/rpucella/Ragnarok/internal/interp"
)

func TestRefGetSet(t *testing.T) {
	r := NewCoreRegistry()
	ref := callPrim(t, r, "REF", interp.NewInt64(1))
	if got := callPrim(t, r, "REF-GET", ref); got.Num.Int64() != 1 {
		t.Errorf("(ref-get (ref 1)) = %v, want 1", got)
	}
	callPrim(t, r, "REF-SET", ref, interp.NewInt64(2))
	if got := callPrim(t, r, "REF-GET", ref); got.Num.Int64() != 2 {
		t.Errorf("(ref-get r) after (ref-set r 2) = %v, want 2", got)
	}
}

func TestRefGetRejectsNonReference(t *testing.T) {
	r := NewCoreRegistry()
	if err := callPrimErr(t, r, "REF-GET", interp.NewInt64(1)); err == nil {
		t.Fatalf("(ref-get 1) should error")
	}
}
