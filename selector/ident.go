package selector

import (
	"errors"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// IsIdent reports whether s lexes as exactly one plain CSS identifier.
// It is a screening helper for caller-supplied tokens, not a selector
// parser: fragments that carry their own syntax (attribute bodies,
// functional pseudo-classes) legitimately fail this check and the core
// builder accepts them regardless.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	l := css.NewLexer(parse.NewInputString(s))

	tt, _ := l.Next()
	if tt != css.IdentToken {
		return false
	}
	tt, _ = l.Next()
	return tt == css.ErrorToken && errors.Is(l.Err(), io.EOF)
}
