package sexpr

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/rpucella/Ragnarok/internal/rgerrors"
)

// Grounded on original_source/src/lisp.py's parse_token/parse_seq/parse_first
// combinators: every recognizer below is a function String -> (SExpr,
// remainder, ok), tried in the priority order SPEC_FULL §4.1 specifies.
var (
	reComment  = regexp.MustCompile(`;[^\n]*`)
	reString   = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
	reInteger  = regexp.MustCompile(`^-?[0-9]+`)
	reBoolean  = regexp.MustCompile(`^#[tTfF]`)
	rePrimOpen = regexp.MustCompile(`^#[pP][rR][iI][mM]\(`)
	reNil      = regexp.MustCompile(`^#[nN][iI][lL]`)
	reDictOpen = regexp.MustCompile(`^#[dD][iI][cC][tT]\(`)
	reSymbol   = regexp.MustCompile(`^[^\s()'"]+`)
)

func stripLeading(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}

func stripComments(s string) string {
	return reComment.ReplaceAllString(s, "")
}

// Read strips comments from text and reads one s-expression. In strict
// mode, non-whitespace left over after the expression is a read-error; in
// streaming mode the remainder is returned for the caller to read again,
// the shape the CLI host uses to evaluate a file one top-level form at a
// time. An all-whitespace/comment input returns (nil, "", nil).
func Read(text string, strict bool) (*SExpr, string, error) {
	stripped := stripComments(text)
	if strings.TrimSpace(stripped) == "" {
		return nil, "", nil
	}
	expr, rest, err := readOne(stripped)
	if err != nil {
		return nil, "", err
	}
	if strict && strings.TrimSpace(rest) != "" {
		return nil, "", rgerrors.New(rgerrors.KindRead, "unexpected input after expression: %q", strings.TrimSpace(rest))
	}
	return expr, rest, nil
}

func readOne(s string) (*SExpr, string, error) {
	if e, rest, ok := parseString(s); ok {
		return e, rest, nil
	}
	if e, rest, ok := parseInteger(s); ok {
		return e, rest, nil
	}
	if e, rest, ok := parseBoolean(s); ok {
		return e, rest, nil
	}
	if e, rest, ok, err := parsePrimitive(s); err != nil {
		return nil, s, err
	} else if ok {
		return e, rest, nil
	}
	if e, rest, ok := parseNil(s); ok {
		return e, rest, nil
	}
	if e, rest, ok, err := parseDict(s); err != nil {
		return nil, s, err
	} else if ok {
		return e, rest, nil
	}
	if e, rest, ok, err := parseQuote(s); err != nil {
		return nil, s, err
	} else if ok {
		return e, rest, nil
	}
	if e, rest, ok, err := parseList(s); err != nil {
		return nil, s, err
	} else if ok {
		return e, rest, nil
	}
	if e, rest, ok := parseSymbol(s); ok {
		return e, rest, nil
	}
	stripped := stripLeading(s)
	if stripped == "" {
		return nil, s, rgerrors.New(rgerrors.KindRead, "unexpected end of input")
	}
	return nil, s, rgerrors.New(rgerrors.KindRead, "cannot read input near %q", firstRune(stripped))
}

func firstRune(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}

func matchToken(re *regexp.Regexp, s string) (string, string, bool) {
	stripped := stripLeading(s)
	loc := re.FindStringIndex(stripped)
	if loc == nil || loc[0] != 0 {
		return "", s, false
	}
	return stripped[:loc[1]], stripped[loc[1]:], true
}

func parseString(s string) (*SExpr, string, bool) {
	tok, rest, ok := matchToken(reString, s)
	if !ok {
		return nil, s, false
	}
	raw := tok[1 : len(tok)-1]
	return &SExpr{Kind: KindString, StrVal: raw}, rest, true
}

func parseInteger(s string) (*SExpr, string, bool) {
	tok, rest, ok := matchToken(reInteger, s)
	if !ok {
		return nil, s, false
	}
	n := new(big.Int)
	if _, success := n.SetString(tok, 10); !success {
		return nil, s, false
	}
	return &SExpr{Kind: KindInteger, IntVal: n}, rest, true
}

func parseBoolean(s string) (*SExpr, string, bool) {
	tok, rest, ok := matchToken(reBoolean, s)
	if !ok {
		return nil, s, false
	}
	b := strings.EqualFold(tok, "#t")
	return &SExpr{Kind: KindBoolean, BoolVal: b}, rest, true
}

func parseNil(s string) (*SExpr, string, bool) {
	_, rest, ok := matchToken(reNil, s)
	if !ok {
		return nil, s, false
	}
	return &SExpr{Kind: KindNil}, rest, true
}

func parsePrimitive(s string) (*SExpr, string, bool, error) {
	stripped := stripLeading(s)
	loc := rePrimOpen.FindStringIndex(stripped)
	if loc == nil || loc[0] != 0 {
		return nil, s, false, nil
	}
	rest := stripped[loc[1]:]
	idx := strings.IndexByte(rest, ')')
	if idx < 0 {
		return nil, s, false, rgerrors.New(rgerrors.KindRead, "unterminated #prim literal")
	}
	name := strings.ToUpper(strings.TrimSpace(rest[:idx]))
	return &SExpr{Kind: KindPrimitive, StrVal: name}, rest[idx+1:], true, nil
}

func parseDict(s string) (*SExpr, string, bool, error) {
	stripped := stripLeading(s)
	loc := reDictOpen.FindStringIndex(stripped)
	if loc == nil || loc[0] != 0 {
		return nil, s, false, nil
	}
	rest := stripped[loc[1]:]
	var pairs []DictPair
	for {
		rest = stripLeading(rest)
		if strings.HasPrefix(rest, ")") {
			return &SExpr{Kind: KindDict, Dict: pairs}, rest[1:], true, nil
		}
		if !strings.HasPrefix(rest, "(") {
			return nil, s, false, rgerrors.New(rgerrors.KindRead, "malformed #dict literal")
		}
		rest = rest[1:]
		key, r2, err := readOne(rest)
		if err != nil {
			return nil, s, false, err
		}
		rest = r2
		val, r3, err := readOne(rest)
		if err != nil {
			return nil, s, false, err
		}
		rest = stripLeading(r3)
		if !strings.HasPrefix(rest, ")") {
			return nil, s, false, rgerrors.New(rgerrors.KindRead, "malformed #dict entry")
		}
		rest = rest[1:]
		pairs = append(pairs, DictPair{Key: key, Value: val})
	}
}

func parseQuote(s string) (*SExpr, string, bool, error) {
	stripped := stripLeading(s)
	if !strings.HasPrefix(stripped, "'") {
		return nil, s, false, nil
	}
	inner, rest, err := readOne(stripped[1:])
	if err != nil {
		return nil, s, false, err
	}
	quoted := &SExpr{
		Kind: KindCons,
		Car:  &SExpr{Kind: KindSymbol, StrVal: "quote"},
		Cdr:  &SExpr{Kind: KindCons, Car: inner, Cdr: &SExpr{Kind: KindEmpty}},
	}
	return quoted, rest, true, nil
}

func parseList(s string) (*SExpr, string, bool, error) {
	stripped := stripLeading(s)
	if !strings.HasPrefix(stripped, "(") {
		return nil, s, false, nil
	}
	rest := stripped[1:]
	items, rest2, err := readSeq(rest)
	if err != nil {
		return nil, s, false, err
	}
	rest2 = stripLeading(rest2)
	if !strings.HasPrefix(rest2, ")") {
		return nil, s, false, rgerrors.New(rgerrors.KindRead, "expected ')'")
	}
	return items, rest2[1:], true, nil
}

func readSeq(s string) (*SExpr, string, error) {
	stripped := stripLeading(s)
	if strings.HasPrefix(stripped, ")") {
		return &SExpr{Kind: KindEmpty}, stripped, nil
	}
	if stripped == "" {
		return nil, s, rgerrors.New(rgerrors.KindRead, "unterminated list")
	}
	car, rest, err := readOne(stripped)
	if err != nil {
		return nil, s, err
	}
	cdr, rest2, err := readSeq(rest)
	if err != nil {
		return nil, s, err
	}
	return &SExpr{Kind: KindCons, Car: car, Cdr: cdr}, rest2, nil
}

func parseSymbol(s string) (*SExpr, string, bool) {
	tok, rest, ok := matchToken(reSymbol, s)
	if !ok {
		return nil, s, false
	}
	return &SExpr{Kind: KindSymbol, StrVal: tok}, rest, true
}
