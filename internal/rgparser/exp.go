package rgparser

import (
	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/sexpr"
)

// ParseExp converts one s-expression into an expression AST. Atoms route
// through sexpr.ToExpression; lists dispatch on their head symbol in the
// order special forms are recognized before application is attempted,
// mirroring lisp.py's Parser.parse_exp chain of parse_keyword attempts.
func (p *Parser) ParseExp(ctxt *interp.Context, s *sexpr.SExpr) (interp.Node, error) {
	if s.IsAtom() {
		return s.ToExpression(p.resolver)
	}
	elems, ok := s.Elements()
	if !ok {
		return nil, parseErrf("improper list cannot be an expression: %s", s.String())
	}
	if len(elems) == 0 {
		return nil, parseErr("empty application")
	}
	head := elems[0]
	if head.Kind == sexpr.KindSymbol {
		switch normalizeKeyword(head.StrVal) {
		case "IF":
			return p.parseIf(ctxt, elems)
		case "FN":
			return p.parseFn(ctxt, elems)
		case "DO":
			return p.parseBody(ctxt, elems[1:])
		case "QUOTE":
			return p.parseQuoteForm(elems)
		case "LETREC":
			return p.parseLetrec(ctxt, elems)
		case "LET":
			return p.parseLetForm(ctxt, elems)
		case "LET*":
			return p.parseLetStar(ctxt, elems)
		case "AND":
			return p.parseAnd(ctxt, elems[1:])
		case "OR":
			return p.parseOr(ctxt, elems[1:])
		case "DICT":
			return p.parseDictForm(ctxt, elems[1:])
		case "FNREC":
			return p.parseFnrec(ctxt, elems)
		}
		if p.HasMacro(head.StrVal) {
			return p.expandMacro(ctxt, head.StrVal, elems[1:])
		}
	}
	fn, err := p.ParseExp(ctxt, head)
	if err != nil {
		return nil, err
	}
	args := make([]interp.Node, len(elems)-1)
	for i, a := range elems[1:] {
		n, err := p.ParseExp(ctxt, a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return &interp.ApplyNode{Fn: fn, Args: args}, nil
}

func (p *Parser) parseBody(ctxt *interp.Context, exprs []*sexpr.SExpr) (interp.Node, error) {
	nodes := make([]interp.Node, len(exprs))
	for i, e := range exprs {
		n, err := p.ParseExp(ctxt, e)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return &interp.DoNode{Exprs: nodes}, nil
}

func (p *Parser) parseIf(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) != 4 {
		return nil, parseErr("if: expected (if COND THEN ELSE)")
	}
	c, err := p.ParseExp(ctxt, elems[1])
	if err != nil {
		return nil, err
	}
	t, err := p.ParseExp(ctxt, elems[2])
	if err != nil {
		return nil, err
	}
	e, err := p.ParseExp(ctxt, elems[3])
	if err != nil {
		return nil, err
	}
	return &interp.IfNode{Cond: c, Then: t, Else: e}, nil
}

func (p *Parser) parseFn(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 2 {
		return nil, parseErr("fn: expected (fn (PARAMS...) BODY...)")
	}
	paramsList, ok := elems[1].Elements()
	if !ok {
		return nil, parseErr("fn: expected a parameter list")
	}
	params := make([]string, len(paramsList))
	seen := map[string]bool{}
	for i, ps := range paramsList {
		name, ok := identifierName(ps)
		if !ok {
			return nil, parseErr("fn: expected a parameter name")
		}
		if seen[name] {
			return nil, parseErrf("fn: duplicate parameter name %s", name)
		}
		seen[name] = true
		params[i] = name
	}
	body, err := p.parseBody(ctxt, elems[2:])
	if err != nil {
		return nil, err
	}
	return &interp.LambdaNode{Params: params, Body: body}, nil
}

func (p *Parser) parseQuoteForm(elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) != 2 {
		return nil, parseErr("quote: expected (quote EXPR)")
	}
	return &interp.QuoteNode{S: sexpr.Quoted(elems[1], p.resolver)}, nil
}

func (p *Parser) parseLetrec(ctxt *interp.Context, elems []*sexpr.SExpr) (interp.Node, error) {
	if len(elems) < 2 {
		return nil, parseErr("letrec: expected (letrec ((NAME EXPR)...) BODY...)")
	}
	bindingsList, ok := elems[1].Elements()
	if !ok {
		return nil, parseErr("letrec: expected a binding list")
	}
	bindings := make([]interp.LetRecBinding, len(bindingsList))
	for i, b := range bindingsList {
		pair, ok := b.Elements()
		if !ok || len(pair) != 2 {
			return nil, parseErr("letrec: expected a (name expr) binding")
		}
		name, ok := identifierName(pair[0])
		if !ok {
			return nil, parseErr("letrec: expected an identifier")
		}
		init, err := p.ParseExp(ctxt, pair[1])
		if err != nil {
			return nil, err
		}
		bindings[i] = interp.LetRecBinding{Name: name, Init: init}
	}
	body, err := p.parseBody(ctxt, elems[2:])
	if err != nil {
		return nil, err
	}
	return &interp.LetRecNode{Bindings: bindings, Body: body}, nil
}
