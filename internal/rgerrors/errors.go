// Package rgerrors defines the structured error taxonomy raised by every
// layer of the Ragnarok core: reader, parser, environment, evaluator and
// primitives all construct *Error values carrying one of the eight kinds
// below (quit is signalled separately, see quit.go) rather than ad-hoc fmt.Errorf strings, so a host can render or
// branch on the kind without parsing messages.
package rgerrors

import (
	"fmt"
	"strings"
)

// Kind tags the condition that produced an Error. The names match the
// vocabulary a host is expected to print verbatim after ";; ".
type Kind string

const (
	KindRead          Kind = "READ-ERROR"
	KindParse         Kind = "PARSE-ERROR"
	KindWrongArgCount Kind = "WRONG-ARG-COUNT"
	KindWrongArgType  Kind = "WRONG-ARG-TYPE"
	KindUnboundSymbol Kind = "UNBOUND-SYMBOL"
	KindNotCallable   Kind = "NOT-CALLABLE"
	KindModule        Kind = "MODULE-ERROR"
	KindRuntime       Kind = "RUNTIME-ERROR"
)

// Position records where in some source text a condition was raised. A
// zero Position (Valid == false) means no position is available, which is
// the common case for conditions raised deep in evaluation rather than
// during reading.
type Position struct {
	Line   int
	Column int
	Valid  bool
}

// Error is the one exported error type for the whole core. Every raised
// condition except Quit (see quit.go) is an *Error.
type Error struct {
	Kind    Kind
	Message string
	Pos     Position
}

// New builds an Error with no position information.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error tagged with a source position, for a caller that
// can point at an offending line and column. The reader raises its errors
// through New, without a position.
func NewAt(kind Kind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *Error) Error() string {
	return e.Format()
}

// Format renders the condition the way shell.py and this module's own CLI
// host print it: ";; KIND: message".
func (e *Error) Format() string {
	return fmt.Sprintf(";; %s: %s", e.Kind, e.Message)
}

// FormatWithSource renders Format plus a source line and a caret pointing
// at e.Pos, reusing the teacher's CompilerError presentation idiom (the
// "%4d | " gutter and caret line) for a host that has the original text
// and a filename on hand. Falls back to Format when no position is set or
// the position falls outside the given source.
func (e *Error) FormatWithSource(source string) string {
	if !e.Pos.Valid || source == "" {
		return e.Format()
	}
	lines := strings.Split(source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return e.Format()
	}
	line := lines[e.Pos.Line-1]
	gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", gutter, line)
	fmt.Fprintf(&b, "%s^\n", strings.Repeat(" ", len(gutter)+col-1))
	b.WriteString(e.Format())
	return b.String()
}
