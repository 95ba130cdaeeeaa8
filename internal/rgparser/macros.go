// Built-in desugaring forms, grounded on original_source/src/lisp.py's
// mk_Let / mk_LetStar / mk_And / mk_Or / mk_Dict / mk_Loop / mk_FunRec
// helpers: each rewrites its surface form into a smaller s-expression
// built from simpler forms (fn, letrec, if) and re-enters ParseExp on the
// rewrite, rather than constructing AST nodes directly. User macros follow
// SPEC_FULL §4.5's four-step recipe instead: lift the unevaluated argument
// tail to a Value, call the macro function through the evaluator, lower
// the result back to an s-expression, and re-parse it as an expression.
package rgparser

import (
	"fmt"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/sexpr"
)

// gensym produces a name no surface-text token can ever spell: the reader
// never emits a symbol starting with a space, since token scanning always
// skips leading whitespace first, so a desugared temporary built in memory
// this way can never collide with a name an author actually wrote.
func (p *Parser) gensym(base string) string {
	p.gensymCounter++
	return fmt.Sprintf(" %s%d", base, p.gensymCounter)
}

// parseLetForm distinguishes plain (let ((N E)...) BODY...) from named-let
// (let LOOP ((N E)...) BODY...) by the kind of elems[1]: a binding list is
// always a cons/empty s-expr, a loop name is always a symbol.
func (p *Parser) parseLetForm(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 3 {
		return nil, parseErr("let: expected (let ((NAME EXPR)...) BODY...)")
	}
	if elems[1].Kind == sexpr.KindSymbol {
		return p.parseNamedLet(ctxt, elems)
	}
	return p.parsePlainLet(ctxt, elems)
}

func (p *Parser) parsePlainLet(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	names, inits, err := bindingPairs(elems[1], "let")
	if err != nil {
		return nil, err
	}
	fnExpr := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("fn"), sexpr.FromElements(names)}, elems[2:]...))
	appExpr := sexpr.FromElements(append([]*sexpr.SExpr{fnExpr}, inits...))
	return p.ParseExp(ctxt, appExpr)
}

// parseNamedLet rewrites (let LOOP ((N E)...) BODY...) into
// ((letrec ((LOOP (fn (N...) BODY...))) LOOP) E...), giving LOOP's closure
// access to itself for the recursive-call positions in BODY.
func (p *Parser) parseNamedLet(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 4 {
		return nil, parseErr("let: expected (let NAME ((NAME EXPR)...) BODY...)")
	}
	loopName := elems[1]
	names, inits, err := bindingPairs(elems[2], "let")
	if err != nil {
		return nil, err
	}
	fnExpr := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("fn"), sexpr.FromElements(names)}, elems[3:]...))
	bindingPair := sexpr.FromElements([]*sexpr.SExpr{loopName, fnExpr})
	letrecExpr := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("letrec"), sexpr.FromElements([]*sexpr.SExpr{bindingPair}), loopName})
	appExpr := sexpr.FromElements(append([]*sexpr.SExpr{letrecExpr}, inits...))
	return p.ParseExp(ctxt, appExpr)
}

// parseLetStar right-folds (let* ((N1 E1) (N2 E2)...) BODY...) into nested
// one-binding lets: (let ((N1 E1)) (let* ((N2 E2)...) BODY...)), bottoming
// out at (do BODY...) once no bindings remain.
func (p *Parser) parseLetStar(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 2 {
		return nil, parseErr("let*: expected (let* ((NAME EXPR)...) BODY...)")
	}
	bindingsList, ok := elems[1].Elements()
	if !ok {
		return nil, parseErr("let*: expected a binding list")
	}
	return p.expandLetStar(ctxt, bindingsList, elems[2:])
}

func (p *Parser) expandLetStar(ctxt *interp.Context, bindings []*sexpr.SExpr, body []*sexpr.SExpr) (interp.Node, error) {
	if len(bindings) == 0 {
		return p.parseBody(ctxt, body)
	}
	first, rest := bindings[0], bindings[1:]
	innerLetStar := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("let*"), sexpr.FromElements(rest)}, body...))
	outerLet := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("let"), sexpr.FromElements([]*sexpr.SExpr{first}), innerLetStar})
	return p.ParseExp(ctxt, outerLet)
}

// parseAnd right-folds into nested single-binding lets holding each
// evaluated operand, so every operand evaluates at most once while still
// short-circuiting: (and) is #t, (and E) is E, and
// (and E1 E2...) becomes (let ((g E1)) (if g (and E2...) g)).
func (p *Parser) parseAnd(ctxt *interp.Context, args []*sexpr.SExpr) (interp.Node, error) {
	if len(args) == 0 {
		return &interp.BooleanNode{B: true}, nil
	}
	if len(args) == 1 {
		return p.ParseExp(ctxt, args[0])
	}
	tmp := symbolSExpr(p.gensym("AND"))
	rest := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("and")}, args[1:]...))
	ifExpr := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("if"), tmp, rest, tmp})
	letExpr := sexpr.FromElements([]*sexpr.SExpr{
		symbolSExpr("let"),
		sexpr.FromElements([]*sexpr.SExpr{sexpr.FromElements([]*sexpr.SExpr{tmp, args[0]})}),
		ifExpr,
	})
	return p.ParseExp(ctxt, letExpr)
}

// parseOr mirrors parseAnd: (or) is #f, (or E) is E, and
// (or E1 E2...) becomes (let ((g E1)) (if g g (or E2...))).
func (p *Parser) parseOr(ctxt *interp.Context, args []*sexpr.SExpr) (interp.Node, error) {
	if len(args) == 0 {
		return &interp.BooleanNode{B: false}, nil
	}
	if len(args) == 1 {
		return p.ParseExp(ctxt, args[0])
	}
	tmp := symbolSExpr(p.gensym("OR"))
	rest := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("or")}, args[1:]...))
	ifExpr := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("if"), tmp, tmp, rest})
	letExpr := sexpr.FromElements([]*sexpr.SExpr{
		symbolSExpr("let"),
		sexpr.FromElements([]*sexpr.SExpr{sexpr.FromElements([]*sexpr.SExpr{tmp, args[0]})}),
		ifExpr,
	})
	return p.ParseExp(ctxt, letExpr)
}

// parseDictForm rewrites (dict (K1 V1) (K2 V2)...) into
// (make-dict (list (list K1 V1) (list K2 V2)...)), routing through the
// ordinary MAKE-DICT/LIST primitives instead of a dedicated AST node.
func (p *Parser) parseDictForm(ctxt *interp.Context, pairs []*sexpr.SExpr) (interp.Node, error) {
	innerLists := make([]*sexpr.SExpr, len(pairs))
	for i, pr := range pairs {
		kv, ok := pr.Elements()
		if !ok || len(kv) != 2 {
			return nil, parseErr("dict: expected a (key value) pair")
		}
		innerLists[i] = sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("list")}, kv...))
	}
	listExpr := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("list")}, innerLists...))
	makeDictExpr := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("make-dict"), listExpr})
	return p.ParseExp(ctxt, makeDictExpr)
}

// parseFnrec rewrites (fnrec NAME (PARAMS...) BODY...) into
// (letrec ((NAME (fn (PARAMS...) BODY...))) NAME), a self-recursive
// anonymous function without a surrounding var/def.
func (p *Parser) parseFnrec(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 3 {
		return nil, parseErr("fnrec: expected (fnrec NAME (PARAMS...) BODY...)")
	}
	name := elems[1]
	if _, ok := identifierName(name); !ok {
		return nil, parseErr("fnrec: expected an identifier")
	}
	if _, ok := elems[2].Elements(); !ok {
		return nil, parseErr("fnrec: expected a parameter list")
	}
	fnExpr := sexpr.FromElements(append([]*sexpr.SExpr{symbolSExpr("fn"), elems[2]}, elems[3:]...))
	bindingPair := sexpr.FromElements([]*sexpr.SExpr{name, fnExpr})
	letrecExpr := sexpr.FromElements([]*sexpr.SExpr{symbolSExpr("letrec"), sexpr.FromElements([]*sexpr.SExpr{bindingPair}), name})
	return p.ParseExp(ctxt, letrecExpr)
}

// bindingPairs splits a ((NAME EXPR)...) list into parallel name and init
// s-expr slices, shared by plain and named let.
func bindingPairs(s *sexpr.SExpr, label string) (names, inits []*sexpr.SExpr, err error) {
	bindingsList, ok := s.Elements()
	if !ok {
		return nil, nil, parseErrf("%s: expected a binding list", label)
	}
	names = make([]*sexpr.SExpr, len(bindingsList))
	inits = make([]*sexpr.SExpr, len(bindingsList))
	for i, b := range bindingsList {
		pair, ok := b.Elements()
		if !ok || len(pair) != 2 {
			return nil, nil, parseErrf("%s: expected a (name expr) binding", label)
		}
		if _, ok := identifierName(pair[0]); !ok {
			return nil, nil, parseErrf("%s: expected an identifier", label)
		}
		names[i] = pair[0]
		inits[i] = pair[1]
	}
	return names, inits, nil
}

// expandMacro implements SPEC_FULL §4.5's four-step user-macro recipe: the
// unevaluated argument tail becomes a Value via AsValue, that Value is
// exploded into a native argument slice, the macro function runs through
// the ordinary evaluator (so macro bodies are just Ragnarok functions, not
// a separate compile-time language), and its result Value is lowered back
// to an s-expression and re-parsed — allowing a macro's expansion to use
// further macros, including itself.
func (p *Parser) expandMacro(ctxt *interp.Context, name string, tailElems []*sexpr.SExpr) (interp.Node, error) {
	fn := p.macros[normalizeKeyword(name)]
	tailValue, err := sexpr.FromElements(tailElems).AsValue(p.resolver)
	if err != nil {
		return nil, err
	}
	args, err := interp.Elements(tailValue)
	if err != nil {
		return nil, err
	}
	result, err := interp.Apply(ctxt, fn, args)
	if err != nil {
		return nil, err
	}
	resultExpr, err := sexpr.FromValue(result)
	if err != nil {
		return nil, err
	}
	return p.ParseExp(ctxt, resultExpr)
}
