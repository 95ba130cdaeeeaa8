// Package ragnarok is the public facade a host embeds: construct an
// Engine, build a Context against its root environment, then feed source
// text through Read/ParseSExpr/EvalParsedSExpr (or the one-shot Eval) one
// top-level form at a time. Grounded on original_source/src/engine.py's
// Engine class, which performs exactly this read/parse/eval/install
// sequence and owns construction of the core/interactive modules.
package ragnarok

import (
	"github.com/rpucella/Ragnarok/internal/builtins"
	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
	"github.com/rpucella/Ragnarok/internal/rgparser"
	"github.com/rpucella/Ragnarok/internal/sexpr"
)

// coreCategories lists every primitive category that lands in CORE rather
// than INTERACTIVE; kept as an explicit slice (rather than "every category
// except interactive") so adding a new category forces a conscious choice
// about which module it belongs to.
var coreCategories = []builtins.Category{
	builtins.CategoryPredicate,
	builtins.CategoryArithmetic,
	builtins.CategoryBoolean,
	builtins.CategoryString,
	builtins.CategoryList,
	builtins.CategoryHigherOrder,
	builtins.CategoryEquality,
	builtins.CategoryReference,
	builtins.CategoryDict,
	builtins.CategoryIO,
}

// DefaultModules is the open-module list a freshly built Context should
// use so unqualified references to CORE/INTERACTIVE names resolve without
// qualification, per SPEC_FULL §4.8.
var DefaultModules = []string{"CORE", "INTERACTIVE"}

// Engine owns the root environment, the primitive registry and the parser
// (and therefore the macro table) for one running program.
type Engine struct {
	Root     *interp.Environment
	Registry *builtins.Registry
	Parser   *rgparser.Parser
}

// NewEngine builds a fresh root environment with CORE and INTERACTIVE
// bound as modules, mirroring src/engine.py's Engine.__init__ installing
// VModule-wrapped core/interactive bindings.
func NewEngine() *Engine {
	reg := builtins.NewCoreRegistry()

	coreEnv := interp.NewEnvironment()
	for _, cat := range coreCategories {
		for _, name := range reg.ByCategory(cat) {
			v, _ := reg.Lookup(name)
			coreEnv.Define(name, v)
		}
	}
	coreEnv.Define("EMPTY", interp.NewEmpty())
	coreEnv.Define("NIL", interp.NewNil())

	interactiveEnv := interp.NewEnvironment()
	for _, name := range reg.ByCategory(builtins.CategoryInteractive) {
		v, _ := reg.Lookup(name)
		interactiveEnv.Define(name, v)
	}

	root := interp.NewEnvironment()
	root.Define("CORE", interp.NewModule("CORE", coreEnv))
	root.Define("INTERACTIVE", interp.NewModule("INTERACTIVE", interactiveEnv))

	return &Engine{Root: root, Registry: reg, Parser: rgparser.NewParser(reg)}
}

// NewContext builds a Context rooted at the engine's environment. The
// caller supplies print and, if the host supports them, SetModule/
// ReadFile; a Context with those callbacks left nil will panic if an
// INTERACTIVE primitive that needs them is actually invoked, which is the
// correct failure mode for a host that opted out of the interactive
// surface by narrowing Modules to just CORE.
func (e *Engine) NewContext(modules []string, print func(string)) *interp.Context {
	return &interp.Context{
		Print:   print,
		Env:     e.Root,
		DefEnv:  e.Root,
		Modules: modules,
	}
}

// Read strips comments and reads one s-expression from text, per
// SPEC_FULL §4.6. strict rejects trailing non-whitespace input; streaming
// mode (strict == false) is what a host uses to consume a file one
// top-level form at a time, returning the unconsumed remainder.
func (e *Engine) Read(text string, strict bool) (*sexpr.SExpr, string, error) {
	return sexpr.Read(text, strict)
}

// ParseSExpr classifies s into a Declaration (var/def/const/macro/exp) per
// the dispatch order SPEC_FULL §4.5 specifies.
func (e *Engine) ParseSExpr(ctxt *interp.Context, s *sexpr.SExpr) (*rgparser.Declaration, error) {
	return e.Parser.ParseTopLevel(ctxt, s)
}

// EvalResult is what EvalParsedSExpr and Eval return: for a definition
// form, Name and Report are set (and Report is exactly what the host
// should print, ";; NAME"); for an expression, Result carries the computed
// Value.
type EvalResult struct {
	Kind   rgparser.DeclKind
	Name   string
	Report string
	Result interp.Value
}

// EvalParsedSExpr evaluates a classified Declaration. var/const/def
// evaluate Init and install the binding into ctxt.DefEnv, optionally
// recording source text for later retrieval (SPEC_FULL §6's persisted-form
// hook); macro evaluates Init and installs the resulting function into the
// parser's macro table instead of any environment; exp evaluates and
// returns the Value with no binding side effect.
func (e *Engine) EvalParsedSExpr(ctxt *interp.Context, decl *rgparser.Declaration, source string) (*EvalResult, error) {
	switch decl.Kind {
	case rgparser.DeclVar, rgparser.DeclConst, rgparser.DeclDef:
		v, err := interp.Eval(ctxt, decl.Init, ctxt.Env)
		if err != nil {
			return nil, err
		}
		ctxt.DefEnv.Add(decl.Name, v, source, decl.Kind == rgparser.DeclVar)
		return &EvalResult{Kind: decl.Kind, Name: decl.Name, Report: ";; " + decl.Name}, nil
	case rgparser.DeclMacro:
		v, err := interp.Eval(ctxt, decl.Init, ctxt.Env)
		if err != nil {
			return nil, err
		}
		e.Parser.InstallMacro(decl.Name, v)
		return &EvalResult{Kind: decl.Kind, Name: decl.Name, Report: ";; " + decl.Name}, nil
	case rgparser.DeclExp:
		v, err := interp.Eval(ctxt, decl.Exp, ctxt.Env)
		if err != nil {
			return nil, err
		}
		return &EvalResult{Kind: decl.Kind, Result: v}, nil
	default:
		return nil, rgerrors.New(rgerrors.KindRuntime, "unrecognized declaration")
	}
}

// Eval reads exactly one expression from text (strict: no trailing input
// allowed) and evaluates it, the one-shot entry point SPEC_FULL §4.6 names.
func (e *Engine) Eval(ctxt *interp.Context, text string) (*EvalResult, error) {
	s, _, err := e.Read(text, true)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &EvalResult{Kind: rgparser.DeclExp, Result: interp.NewNil()}, nil
	}
	decl, err := e.ParseSExpr(ctxt, s)
	if err != nil {
		return nil, err
	}
	return e.EvalParsedSExpr(ctxt, decl, text)
}
