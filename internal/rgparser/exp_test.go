package rgparser

import (
	"testing"

	"github.com/rpucella/Ragnarok/internal/builtins"
	"github.com/rpucella/Ragnarok/internal/interp"
)

func TestParseExpIf(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if got := evalText(t, p, ctxt, "(if #t 1 2)"); got.Num.Int64() != 1 {
		t.Errorf("(if #t 1 2) = %v, want 1", got)
	}
	if got := evalText(t, p, ctxt, "(if #f 1 2)"); got.Num.Int64() != 2 {
		t.Errorf("(if #f 1 2) = %v, want 2", got)
	}
}

func TestParseExpIfWrongArity(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if _, err := p.ParseExp(ctxt, mustRead(t, "(if #t 1)")); err == nil {
		t.Fatalf("(if #t 1) should error: wrong arity")
	}
}

func TestParseExpFnAndApply(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	got := evalText(t, p, ctxt, "((fn (x) (if x 1 2)) #f)")
	if got.Num.Int64() != 2 {
		t.Errorf("((fn (x) (if x 1 2)) #f) = %v, want 2", got)
	}
}

func TestParseExpFnDuplicateParamErrors(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if _, err := p.ParseExp(ctxt, mustRead(t, "(fn (a a) a)")); err == nil {
		t.Fatalf("(fn (a a) a) should error: duplicate parameter")
	}
}

func TestParseExpDoSequencesBody(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	got := evalText(t, p, ctxt, "(do 1 2 3)")
	if got.Num.Int64() != 3 {
		t.Errorf("(do 1 2 3) = %v, want 3", got)
	}
}

func TestParseExpQuote(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	got := evalText(t, p, ctxt, "(quote (a b c))")
	want := "(A B C)"
	if got.String() != want {
		t.Errorf("(quote (a b c)) = %v, want %v", got.String(), want)
	}
}

func TestParseExpQuoteSugar(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	got := evalText(t, p, ctxt, "'(1 2)")
	if got.String() != "(1 2)" {
		t.Errorf("'(1 2) = %v, want (1 2)", got.String())
	}
}

func TestParseExpLetrecMutualRecursion(t *testing.T) {
	p := newTestParser()
	env := interp.NewEnvironment()
	ctxt := newTestContext(env)
	ctxt.Modules = []string{"CORE"}
	installCoreModule(env, p.resolver.(*builtins.Registry))
	got := evalText(t, p, ctxt,
		`(letrec ((even? (fn (n) (if (= n 0) #t (odd? (- n 1)))))
		          (odd?  (fn (n) (if (= n 0) #f (even? (- n 1))))))
		   (even? 10))`)
	if !got.Bool {
		t.Errorf("(letrec ... (even? 10)) = %v, want #t", got)
	}
}

func TestParseExpApplicationOnUnboundHeadErrors(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if _, err := evalTextErr(t, p, ctxt, "(nonexistent 1 2)"); err == nil {
		t.Fatalf("(nonexistent 1 2) should error: unbound symbol")
	}
}

func evalTextErr(t *testing.T, p *Parser, ctxt *interp.Context, src string) (interp.Value, error) {
	t.Helper()
	decl, err := p.ParseTopLevel(ctxt, mustRead(t, src))
	if err != nil {
		return interp.Value{}, err
	}
	return interp.Eval(ctxt, decl.Exp, ctxt.Env)
}
