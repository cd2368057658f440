package selector

import (
	"go.uber.org/zap"
)

// Factory is a stateless facade for creating builders. Every builder in
// a program is expected to come from a factory entry point: each entry
// point allocates a fresh builder seeded with one fragment, and Combine
// joins two builders with a combinator. The factory never fails -
// seeding an empty builder cannot violate ordering or cardinality.
type Factory struct {
	log *zap.Logger
}

// NewFactory creates a builder factory.
func NewFactory(log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{log: log.Named("selector")}
}

// seed applies one fragment to a fresh builder. The add cannot fail on
// an empty builder, the error is checked to keep that invariant honest.
func (f *Factory) seed(kind Kind, token string, add func(*Builder) error) *Builder {
	b := NewBuilder()
	if err := add(b); err != nil {
		// unreachable for an empty builder
		panic("selector: seeding empty builder failed: " + err.Error())
	}
	if !IsIdent(tokenForIdentCheck(kind, token)) {
		f.log.Debug("token is not a plain CSS identifier", zap.Stringer("kind", kind), zap.String("token", token))
	}
	return b
}

// tokenForIdentCheck returns the part of the token expected to be a
// plain identifier. Attribute bodies carry operators and values, only
// the attribute name is screened.
func tokenForIdentCheck(kind Kind, token string) string {
	if kind != KindAttr {
		return token
	}
	name := token
	for i, r := range token {
		if r == '=' || r == '~' || r == '|' || r == '^' || r == '$' || r == '*' || r == ']' {
			name = token[:i]
			break
		}
	}
	return name
}

// Element returns a new builder seeded with an element fragment.
func (f *Factory) Element(name string) *Builder {
	return f.seed(KindElement, name, func(b *Builder) error { return b.Element(name) })
}

// ID returns a new builder seeded with an id fragment.
func (f *Factory) ID(name string) *Builder {
	return f.seed(KindID, name, func(b *Builder) error { return b.ID(name) })
}

// Class returns a new builder seeded with a class fragment.
func (f *Factory) Class(name string) *Builder {
	return f.seed(KindClass, name, func(b *Builder) error { return b.Class(name) })
}

// Attr returns a new builder seeded with an attribute selector body.
func (f *Factory) Attr(body string) *Builder {
	return f.seed(KindAttr, body, func(b *Builder) error { return b.Attr(body) })
}

// PseudoClass returns a new builder seeded with a pseudo-class fragment.
func (f *Factory) PseudoClass(name string) *Builder {
	return f.seed(KindPseudoClass, name, func(b *Builder) error { return b.PseudoClass(name) })
}

// PseudoElement returns a new builder seeded with a pseudo-element
// fragment.
func (f *Factory) PseudoElement(name string) *Builder {
	return f.seed(KindPseudoElement, name, func(b *Builder) error { return b.PseudoElement(name) })
}

// Combine renders (and thereby consumes) left and right and returns a
// new builder whose output is the two rendered selectors joined by
// combinator with a single space on each side. The combinator string is
// interpolated verbatim - callers normally pass ">", "+", "~" or " ",
// but any token is accepted. Operand builders must not be reused after
// the call.
func (f *Factory) Combine(left *Builder, combinator string, right *Builder) *Builder {
	l := left.Render()
	r := right.Render()
	b := NewBuilder()
	b.setCombined(l + " " + combinator + " " + r)
	f.log.Debug("combined selectors", zap.String("left", l), zap.String("combinator", combinator), zap.String("right", r))
	return b
}
