package interp

import "strings"

// Dump renders an AST node as an s-expression-shaped debug string, used
// only by cmd/ragnarok's --dump-ast flag. Grounded on the teacher's
// per-node String() methods (internal/ast/ast.go); collected here as one
// type switch instead of a String() method per Node implementation, since
// Node stays a minimal one-method interface (SPEC_FULL §3 names only
// EvalPartial on it).
func Dump(n Node) string {
	switch t := n.(type) {
	case *LiteralNode:
		return t.V.String()
	case *StringNode:
		return "\"" + t.S + "\""
	case *IntegerNode:
		return t.N.String()
	case *BooleanNode:
		if t.B {
			return "#T"
		}
		return "#F"
	case *SymbolNode:
		if t.Qualifier != "" {
			return t.Qualifier + ":" + t.Name
		}
		return t.Name
	case *IfNode:
		return "(if " + Dump(t.Cond) + " " + Dump(t.Then) + " " + Dump(t.Else) + ")"
	case *ApplyNode:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Dump(a)
		}
		s := "(" + Dump(t.Fn)
		if len(parts) > 0 {
			s += " " + strings.Join(parts, " ")
		}
		return s + ")"
	case *LambdaNode:
		return "(fn (" + strings.Join(t.Params, " ") + ") " + Dump(t.Body) + ")"
	case *QuoteNode:
		return "(quote <s-expr>)"
	case *LetRecNode:
		parts := make([]string, len(t.Bindings))
		for i, b := range t.Bindings {
			parts[i] = "(" + b.Name + " " + Dump(b.Init) + ")"
		}
		return "(letrec (" + strings.Join(parts, " ") + ") " + Dump(t.Body) + ")"
	case *DoNode:
		parts := make([]string, len(t.Exprs))
		for i, e := range t.Exprs {
			parts[i] = Dump(e)
		}
		return "(do " + strings.Join(parts, " ") + ")"
	default:
		return "#<node>"
	}
}
