package rgparser

import (
	"regexp"
	"strings"

	"github.com/rpucella/Ragnarok/internal/rgerrors"
	"github.com/rpucella/Ragnarok/internal/sexpr"
)

// reIdentifier matches a binding-position name: SPEC_FULL §4.5's identifier
// character class, leading digit excluded so IntegerNode and SymbolNode
// stay unambiguous at the reader layer, colon excluded because ':' is
// reserved for MODULE:NAME qualification and never appears in a name a
// var/def/fn/let form can bind.
var reIdentifier = regexp.MustCompile(`^[A-Za-z\-+*/_.?!@$<>=][A-Za-z0-9\-+*/_.?!@$<>=]*$`)

// identifierName validates s as a bindable name and returns it upper-cased,
// the same folding NewSymbol and Environment apply everywhere else. A
// space-prefixed gensym name (see gensym) is also accepted, so the
// temporaries the and/or desugaring binds can appear in a let.
func identifierName(s *sexpr.SExpr) (string, bool) {
	if s.Kind != sexpr.KindSymbol {
		return "", false
	}
	if strings.HasPrefix(s.StrVal, " ") {
		return strings.ToUpper(s.StrVal), true
	}
	if !reIdentifier.MatchString(s.StrVal) {
		return "", false
	}
	return strings.ToUpper(s.StrVal), true
}

// normalizeKeyword folds a head-position symbol's text the same way so a
// keyword comparison ("let" vs "LET" vs "Let") and a macro-table lookup
// agree with identifierName's folding.
func normalizeKeyword(s string) string { return strings.ToUpper(s) }

func symbolSExpr(name string) *sexpr.SExpr {
	return &sexpr.SExpr{Kind: sexpr.KindSymbol, StrVal: name}
}

func parseErrf(format string, args ...interface{}) error {
	return rgerrors.New(rgerrors.KindParse, format, args...)
}

func parseErr(msg string) error { return parseErrf("%s", msg) }
