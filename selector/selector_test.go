package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

func TestBuilder_FixedOrderRendering(t *testing.T) {
	b := selector.NewBuilder()

	steps := []struct {
		name string
		add  func() error
	}{
		{"element", func() error { return b.Element("a") }},
		{"id", func() error { return b.ID("main") }},
		{"class", func() error { return b.Class("nav") }},
		{"class again", func() error { return b.Class("active") }},
		{"attr", func() error { return b.Attr(`href$=".png"`) }},
		{"pseudo-class", func() error { return b.PseudoClass("focus") }},
		{"pseudo-element", func() error { return b.PseudoElement("before") }},
	}
	for _, s := range steps {
		if err := s.add(); err != nil {
			t.Fatalf("adding %s: %v", s.name, err)
		}
	}

	want := `a#main.nav.active[href$=".png"]:focus::before`
	if got := b.Render(); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestBuilder_RenderIsDestructive(t *testing.T) {
	b := selector.NewBuilder()
	if err := b.ID("main"); err != nil {
		t.Fatal(err)
	}
	if err := b.Class("container"); err != nil {
		t.Fatal(err)
	}

	if got, want := b.Render(), "#main.container"; got != want {
		t.Fatalf("first render %q, want %q", got, want)
	}
	if got := b.Render(); got != "" {
		t.Errorf("second render %q, want empty string", got)
	}
	if !b.Empty() {
		t.Error("builder should be empty after render")
	}

	// a consumed builder can be re-seeded
	if err := b.Element("p"); err != nil {
		t.Fatalf("re-seeding rendered builder: %v", err)
	}
	if got, want := b.Render(), "p"; got != want {
		t.Errorf("re-seeded render %q, want %q", got, want)
	}
}

func TestBuilder_DuplicateElement(t *testing.T) {
	b := selector.NewBuilder()
	if err := b.Element("div"); err != nil {
		t.Fatal(err)
	}
	err := b.Element("span")
	if !errors.Is(err, selector.ErrDuplicateFragment) {
		t.Fatalf("expected ErrDuplicateFragment, got %v", err)
	}
	// failed call must not disturb accumulated state
	if got, want := b.Render(), "div"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestBuilder_DuplicatePseudoElement(t *testing.T) {
	b := selector.NewBuilder()
	if err := b.PseudoElement("before"); err != nil {
		t.Fatal(err)
	}
	err := b.PseudoElement("after")
	if !errors.Is(err, selector.ErrDuplicateFragment) {
		t.Fatalf("expected ErrDuplicateFragment, got %v", err)
	}
	if got, want := b.Render(), "::before"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestBuilder_OutOfOrderPairs(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *selector.Builder) error
		late  func(b *selector.Builder) error
	}{
		{"element after id", func(b *selector.Builder) error { return b.ID("x") }, func(b *selector.Builder) error { return b.Element("a") }},
		{"element after class", func(b *selector.Builder) error { return b.Class("x") }, func(b *selector.Builder) error { return b.Element("a") }},
		{"element after attr", func(b *selector.Builder) error { return b.Attr("x") }, func(b *selector.Builder) error { return b.Element("a") }},
		{"element after pseudo-class", func(b *selector.Builder) error { return b.PseudoClass("x") }, func(b *selector.Builder) error { return b.Element("a") }},
		{"element after pseudo-element", func(b *selector.Builder) error { return b.PseudoElement("x") }, func(b *selector.Builder) error { return b.Element("a") }},
		{"id after class", func(b *selector.Builder) error { return b.Class("x") }, func(b *selector.Builder) error { return b.ID("a") }},
		{"id after attr", func(b *selector.Builder) error { return b.Attr("x") }, func(b *selector.Builder) error { return b.ID("a") }},
		{"id after pseudo-class", func(b *selector.Builder) error { return b.PseudoClass("x") }, func(b *selector.Builder) error { return b.ID("a") }},
		{"id after pseudo-element", func(b *selector.Builder) error { return b.PseudoElement("x") }, func(b *selector.Builder) error { return b.ID("a") }},
		{"class after attr", func(b *selector.Builder) error { return b.Attr("x") }, func(b *selector.Builder) error { return b.Class("a") }},
		{"class after pseudo-class", func(b *selector.Builder) error { return b.PseudoClass("x") }, func(b *selector.Builder) error { return b.Class("a") }},
		{"class after pseudo-element", func(b *selector.Builder) error { return b.PseudoElement("x") }, func(b *selector.Builder) error { return b.Class("a") }},
		{"attr after pseudo-class", func(b *selector.Builder) error { return b.PseudoClass("x") }, func(b *selector.Builder) error { return b.Attr("a") }},
		{"attr after pseudo-element", func(b *selector.Builder) error { return b.PseudoElement("x") }, func(b *selector.Builder) error { return b.Attr("a") }},
		{"pseudo-class after pseudo-element", func(b *selector.Builder) error { return b.PseudoElement("x") }, func(b *selector.Builder) error { return b.PseudoClass("a") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := selector.NewBuilder()
			if err := tt.setup(b); err != nil {
				t.Fatalf("setup: %v", err)
			}
			err := tt.late(b)
			if !errors.Is(err, selector.ErrOutOfOrder) {
				t.Fatalf("expected ErrOutOfOrder, got %v", err)
			}
		})
	}
}

func TestBuilder_SameRankRepeats(t *testing.T) {
	b := selector.NewBuilder()
	for _, c := range []string{"one", "two", "three"} {
		if err := b.Class(c); err != nil {
			t.Fatalf("class %q: %v", c, err)
		}
	}
	for _, a := range []string{"lang", `type="text"`} {
		if err := b.Attr(a); err != nil {
			t.Fatalf("attr %q: %v", a, err)
		}
	}
	for _, p := range []string{"hover", "focus"} {
		if err := b.PseudoClass(p); err != nil {
			t.Fatalf("pseudo-class %q: %v", p, err)
		}
	}

	want := `.one.two.three[lang][type="text"]:hover:focus`
	if got := b.Render(); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestBuilder_IDOverwrites(t *testing.T) {
	b := selector.NewBuilder()
	if err := b.ID("first"); err != nil {
		t.Fatal(err)
	}
	if err := b.ID("second"); err != nil {
		t.Fatalf("re-setting id: %v", err)
	}
	if got, want := b.Render(), "#second"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestBuilder_FailedCallKeepsBuilderUsable(t *testing.T) {
	b := selector.NewBuilder()
	if err := b.Class("container"); err != nil {
		t.Fatal(err)
	}
	if err := b.Element("div"); !errors.Is(err, selector.ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got %v", err)
	}
	// valid operations still work after the failure
	if err := b.Class("editable"); err != nil {
		t.Fatalf("class after failed element: %v", err)
	}
	if err := b.PseudoClass("hover"); err != nil {
		t.Fatalf("pseudo-class after failed element: %v", err)
	}
	if got, want := b.Render(), ".container.editable:hover"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind selector.Kind
		want string
	}{
		{selector.KindElement, "element"},
		{selector.KindID, "id"},
		{selector.KindClass, "class"},
		{selector.KindAttr, "attribute"},
		{selector.KindPseudoClass, "pseudo-class"},
		{selector.KindPseudoElement, "pseudo-element"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
