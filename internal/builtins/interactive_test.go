package builtins

import (
	"testing"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

func TestQuitReturnsQuitSentinel(t *testing.T) {
	r := NewCoreRegistry()
	v, _ := r.Lookup("QUIT")
	_, err := v.Prim.Call(&interp.Context{}, nil)
	if !rgerrors.IsQuit(err) {
		t.Fatalf("(quit) error = %v, want rgerrors.Quit{}", err)
	}
}

func TestEnvListsCurrentFrameBindings(t *testing.T) {
	r := NewCoreRegistry()
	env := interp.NewEnvironment()
	env.Define("X", interp.NewInt64(1))
	var printed []string
	ctxt := &interp.Context{Env: env, Print: func(s string) { printed = append(printed, s) }}

	v, _ := r.Lookup("ENV")
	if _, err := v.Prim.Call(ctxt, nil); err != nil {
		t.Fatalf("(env) error: %v", err)
	}
	if len(printed) != 1 || printed[0] != ";; X" {
		t.Errorf("printed = %v, want [\";; X\"]", printed)
	}
}

func TestEnvOnNamedModuleListsModuleBindings(t *testing.T) {
	r := NewCoreRegistry()
	modEnv := interp.NewEnvironment()
	modEnv.Define("Y", interp.NewInt64(2))
	env := interp.NewEnvironment()
	env.Define("MATH", interp.NewModule("MATH", modEnv))
	var printed []string
	ctxt := &interp.Context{Env: env, Print: func(s string) { printed = append(printed, s) }}

	v, _ := r.Lookup("ENV")
	if _, err := v.Prim.Call(ctxt, []interp.Value{interp.NewSymbol("math")}); err != nil {
		t.Fatalf("(env 'math) error: %v", err)
	}
	if len(printed) != 1 || printed[0] != ";; Y" {
		t.Errorf("printed = %v, want [\";; Y\"]", printed)
	}
}

func TestEnvOnUnknownModuleErrors(t *testing.T) {
	r := NewCoreRegistry()
	env := interp.NewEnvironment()
	ctxt := &interp.Context{Env: env, Print: func(string) {}}
	v, _ := r.Lookup("ENV")
	if _, err := v.Prim.Call(ctxt, []interp.Value{interp.NewSymbol("nope")}); err == nil {
		t.Fatalf("(env 'nope) should error: not a module")
	}
}

func TestModuleWithNoArgsListsModules(t *testing.T) {
	r := NewCoreRegistry()
	env := interp.NewEnvironment()
	env.Define("MATH", interp.NewModule("MATH", interp.NewEnvironment()))
	env.Define("X", interp.NewInt64(1))
	var printed []string
	ctxt := &interp.Context{Env: env, Print: func(s string) { printed = append(printed, s) }}

	v, _ := r.Lookup("MODULE")
	if _, err := v.Prim.Call(ctxt, nil); err != nil {
		t.Fatalf("(module) error: %v", err)
	}
	if len(printed) != 1 || printed[0] != ";; MATH" {
		t.Errorf("printed = %v, want only the module binding [\";; MATH\"]", printed)
	}
}

func TestModuleWithNameSwitchesViaSetModule(t *testing.T) {
	r := NewCoreRegistry()
	var switched string
	ctxt := &interp.Context{SetModule: func(name string) { switched = name }}
	v, _ := r.Lookup("MODULE")
	if _, err := v.Prim.Call(ctxt, []interp.Value{interp.NewSymbol("math")}); err != nil {
		t.Fatalf("(module 'math) error: %v", err)
	}
	if switched != "MATH" {
		t.Errorf("SetModule called with %q, want MATH", switched)
	}
}

func TestModuleScratchClearsModule(t *testing.T) {
	r := NewCoreRegistry()
	var switched string
	called := false
	ctxt := &interp.Context{SetModule: func(name string) { switched = name; called = true }}
	v, _ := r.Lookup("MODULE")
	if _, err := v.Prim.Call(ctxt, []interp.Value{interp.NewSymbol("scratch")}); err != nil {
		t.Fatalf("(module 'scratch) error: %v", err)
	}
	if !called || switched != "" {
		t.Errorf("SetModule called with %q, want empty string for scratch", switched)
	}
}

func TestLoadForwardsToReadFile(t *testing.T) {
	r := NewCoreRegistry()
	var loaded string
	ctxt := &interp.Context{ReadFile: func(path string) error { loaded = path; return nil }}
	v, _ := r.Lookup("LOAD")
	if _, err := v.Prim.Call(ctxt, []interp.Value{interp.NewString("foo.rg")}); err != nil {
		t.Fatalf("(load \"foo.rg\") error: %v", err)
	}
	if loaded != "foo.rg" {
		t.Errorf("ReadFile called with %q, want foo.rg", loaded)
	}
}
