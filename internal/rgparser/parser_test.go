package rgparser

import (
	"math/big"
	"testing"

	"github.com/rpucella/Ragnarok/internal/builtins"
	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/sexpr"
)

func newTestParser() *Parser {
	return NewParser(builtins.NewCoreRegistry())
}

func newTestContext(env *interp.Environment) *interp.Context {
	return &interp.Context{Env: env, DefEnv: env, Print: func(string) {}}
}

func mustRead(t *testing.T, src string) *sexpr.SExpr {
	t.Helper()
	s, _, err := sexpr.Read(src, true)
	if err != nil {
		t.Fatalf("Read(%q) error: %v", src, err)
	}
	return s
}

func evalText(t *testing.T, p *Parser, ctxt *interp.Context, src string) interp.Value {
	t.Helper()
	decl, err := p.ParseTopLevel(ctxt, mustRead(t, src))
	if err != nil {
		t.Fatalf("ParseTopLevel(%q) error: %v", src, err)
	}
	if decl.Kind != DeclExp {
		t.Fatalf("ParseTopLevel(%q) returned a %v declaration, want an expression", src, decl.Kind)
	}
	v, err := interp.Eval(ctxt, decl.Exp, ctxt.Env)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", src, err)
	}
	return v
}

func TestParseTopLevelVar(t *testing.T) {
	p := newTestParser()
	env := interp.NewEnvironment()
	ctxt := newTestContext(env)

	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(var x 5)"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclVar || decl.Name != "X" {
		t.Fatalf("ParseTopLevel() = %+v, want DeclVar/X", decl)
	}
	v, err := interp.Eval(ctxt, decl.Init, env)
	if err != nil || v.Num.Int64() != 5 {
		t.Fatalf("Eval(var init) = %v, %v, want 5", v, err)
	}
}

func TestParseTopLevelConst(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())

	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(const pi 3)"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclConst || decl.Name != "PI" {
		t.Fatalf("ParseTopLevel() = %+v, want DeclConst/PI", decl)
	}
}

func TestParseTopLevelVarWrongShapeErrors(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if _, err := p.ParseTopLevel(ctxt, mustRead(t, "(var x)")); err == nil {
		t.Fatalf("ParseTopLevel(var with missing init) should error")
	}
}

func TestParseTopLevelDefBuildsLambda(t *testing.T) {
	p := newTestParser()
	env := interp.NewEnvironment()
	ctxt := newTestContext(env)

	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(def (add a b) (+ a b))"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclDef || decl.Name != "ADD" {
		t.Fatalf("ParseTopLevel() = %+v, want DeclDef/ADD", decl)
	}
	lambda, ok := decl.Init.(*interp.LambdaNode)
	if !ok {
		t.Fatalf("decl.Init = %T, want *interp.LambdaNode", decl.Init)
	}
	if len(lambda.Params) != 2 || lambda.Params[0] != "A" || lambda.Params[1] != "B" {
		t.Errorf("lambda.Params = %v, want [A B]", lambda.Params)
	}
}

func TestParseTopLevelDefDuplicateParamErrors(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	if _, err := p.ParseTopLevel(ctxt, mustRead(t, "(def (f a a) a)")); err == nil {
		t.Fatalf("ParseTopLevel(def with duplicate params) should error")
	}
}

func TestParseTopLevelMacroBuildsLambda(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())

	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(macro (unless c e) (if c 'nil e))"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclMacro || decl.Name != "UNLESS" {
		t.Fatalf("ParseTopLevel() = %+v, want DeclMacro/UNLESS", decl)
	}
}

func TestParseTopLevelFallsThroughToExp(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(+ 1 2)"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclExp {
		t.Fatalf("ParseTopLevel() = %+v, want DeclExp", decl)
	}
}

func TestParseTopLevelKeywordCaseInsensitive(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(VaR x 1)"))
	if err != nil {
		t.Fatalf("ParseTopLevel() error: %v", err)
	}
	if decl.Kind != DeclVar {
		t.Fatalf("ParseTopLevel() = %+v, want DeclVar (case-insensitive keyword)", decl)
	}
}

func installCoreModule(env *interp.Environment, reg *builtins.Registry) {
	coreEnv := interp.NewEnvironment()
	for _, name := range reg.Names() {
		v, _ := reg.Lookup(name)
		coreEnv.Define(name, v)
	}
	coreEnv.Define("EMPTY", interp.NewEmpty())
	coreEnv.Define("NIL", interp.NewNil())
	env.Define("CORE", interp.NewModule("CORE", coreEnv))
}

func TestEndToEndFactorialViaDef(t *testing.T) {
	p := newTestParser()
	env := interp.NewEnvironment()
	installCoreModule(env, p.resolver.(*builtins.Registry))
	ctxt := &interp.Context{Env: env, DefEnv: env, Print: func(string) {}, Modules: []string{"CORE"}}

	decl, err := p.ParseTopLevel(ctxt, mustRead(t, "(def (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))"))
	if err != nil {
		t.Fatalf("ParseTopLevel(def fact) error: %v", err)
	}
	v, err := interp.Eval(ctxt, decl.Init, env)
	if err != nil {
		t.Fatalf("Eval(fact lambda) error: %v", err)
	}
	env.Add(decl.Name, v, "", false)

	got := evalText(t, p, ctxt, "(fact 10)")
	want := big.NewInt(3628800)
	if got.Num.Cmp(want) != 0 {
		t.Errorf("(fact 10) = %v, want %v", got.Num, want)
	}
}

func TestEndToEndLambdaApplication(t *testing.T) {
	p := newTestParser()
	ctxt := newTestContext(interp.NewEnvironment())
	got := evalText(t, p, ctxt, "((fn (a b) a) 42 0)")
	if got.Num.Int64() != 42 {
		t.Errorf("((fn (a b) a) 42 0) = %v, want 42", got)
	}
}
