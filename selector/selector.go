// Package selector builds CSS selector strings from typed fragments.
//
// A Builder accumulates selector fragments (element, id, classes,
// attributes, pseudo-classes, pseudo-element) and renders them as a
// canonical selector string. CSS structural rules are enforced on every
// add: element and pseudo-element may appear at most once, and fragment
// kinds must arrive in the order element, id, class, attribute,
// pseudo-class, pseudo-element. The package does not parse selectors and
// does not match them against documents.
package selector

import (
	"fmt"
	"strings"
)

// Kind identifies a selector fragment category.
type Kind int

const (
	KindElement Kind = iota // tag name or "*"
	KindID
	KindClass
	KindAttr
	KindPseudoClass
	KindPseudoElement
)

// String returns the human readable fragment kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindAttr:
		return "attribute"
	case KindPseudoClass:
		return "pseudo-class"
	case KindPseudoElement:
		return "pseudo-element"
	default:
		return "unknown"
	}
}

// Builder accumulates selector fragments until rendered. A Builder is
// exclusively owned by the call chain that constructs it and must not be
// shared across goroutines. The zero value is an empty builder ready for
// use.
type Builder struct {
	element       string   // bare tag token
	id            string   // stored decorated: "#token"
	classes       []string // stored decorated: ".token"
	attrs         []string // stored decorated: "[token]"
	pseudoClasses []string // stored decorated: ":token"
	pseudoElement string   // stored decorated: "::token"

	combined   string
	isCombined bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// firstAfter returns the lowest populated kind strictly after k, or
// (0, false) when nothing later has content.
func (b *Builder) firstAfter(k Kind) (Kind, bool) {
	checks := []struct {
		kind Kind
		set  bool
	}{
		{KindID, b.id != ""},
		{KindClass, len(b.classes) > 0},
		{KindAttr, len(b.attrs) > 0},
		{KindPseudoClass, len(b.pseudoClasses) > 0},
		{KindPseudoElement, b.pseudoElement != ""},
	}
	for _, c := range checks {
		if c.kind > k && c.set {
			return c.kind, true
		}
	}
	return 0, false
}

// checkOrder verifies that no later ranked fragment kind is already
// present. A failed check leaves the builder untouched and usable.
func (b *Builder) checkOrder(k Kind) error {
	if b.isCombined {
		return fmt.Errorf("cannot add %s to a combined selector: %w", k, ErrOutOfOrder)
	}
	if later, ok := b.firstAfter(k); ok {
		return fmt.Errorf("cannot add %s after %s: %w", k, later, ErrOutOfOrder)
	}
	return nil
}

// Element sets the element (tag) fragment. It fails with
// ErrDuplicateFragment when an element is already set and with
// ErrOutOfOrder when any other fragment kind is already present.
func (b *Builder) Element(token string) error {
	if b.element != "" {
		return fmt.Errorf("%s already present: %w", KindElement, ErrDuplicateFragment)
	}
	if err := b.checkOrder(KindElement); err != nil {
		return err
	}
	b.element = token
	return nil
}

// ID sets the id fragment. A repeated call overwrites the previous id.
func (b *Builder) ID(token string) error {
	if err := b.checkOrder(KindID); err != nil {
		return err
	}
	b.id = "#" + token
	return nil
}

// Class appends a class fragment. Classes render in insertion order.
func (b *Builder) Class(token string) error {
	if err := b.checkOrder(KindClass); err != nil {
		return err
	}
	b.classes = append(b.classes, "."+token)
	return nil
}

// Attr appends an attribute selector body, e.g. `href$=".png"`. The body
// is wrapped in brackets verbatim; no syntax checking is performed.
func (b *Builder) Attr(token string) error {
	if err := b.checkOrder(KindAttr); err != nil {
		return err
	}
	b.attrs = append(b.attrs, "["+token+"]")
	return nil
}

// PseudoClass appends a pseudo-class fragment.
func (b *Builder) PseudoClass(token string) error {
	if err := b.checkOrder(KindPseudoClass); err != nil {
		return err
	}
	b.pseudoClasses = append(b.pseudoClasses, ":"+token)
	return nil
}

// PseudoElement sets the pseudo-element fragment. It fails with
// ErrDuplicateFragment when one is already set.
func (b *Builder) PseudoElement(token string) error {
	if b.pseudoElement != "" {
		return fmt.Errorf("%s already present: %w", KindPseudoElement, ErrDuplicateFragment)
	}
	if err := b.checkOrder(KindPseudoElement); err != nil {
		return err
	}
	b.pseudoElement = "::" + token
	return nil
}

// Empty reports whether the builder holds no fragments and no combined
// value.
func (b *Builder) Empty() bool {
	return !b.isCombined &&
		b.element == "" && b.id == "" && b.pseudoElement == "" &&
		len(b.classes) == 0 && len(b.attrs) == 0 && len(b.pseudoClasses) == 0
}

// Render produces the selector string and consumes the builder: all
// accumulated state is cleared, so a second Render returns "". For a
// combined builder the precomputed combined string is returned verbatim;
// otherwise fragments are concatenated in the fixed kind order with no
// separators between kinds - the decoration characters delimit the
// output.
func (b *Builder) Render() string {
	if b.isCombined {
		s := b.combined
		b.combined = ""
		b.isCombined = false
		return s
	}

	var sb strings.Builder
	sb.WriteString(b.element)
	sb.WriteString(b.id)
	for _, c := range b.classes {
		sb.WriteString(c)
	}
	for _, a := range b.attrs {
		sb.WriteString(a)
	}
	for _, p := range b.pseudoClasses {
		sb.WriteString(p)
	}
	sb.WriteString(b.pseudoElement)

	b.element = ""
	b.id = ""
	b.classes = nil
	b.attrs = nil
	b.pseudoClasses = nil
	b.pseudoElement = ""

	return sb.String()
}

// setCombined turns b into a combined builder holding the precomputed
// selector string. Only the factory Combine path uses it.
func (b *Builder) setCombined(s string) {
	b.combined = s
	b.isCombined = true
}
