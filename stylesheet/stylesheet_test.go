package stylesheet_test

import (
	"strings"
	"testing"

	"cssel/stylesheet"
)

func TestStylesheet_String(t *testing.T) {
	sheet := &stylesheet.Stylesheet{
		Rules: []stylesheet.Rule{
			{
				Selector: "p.warning",
				Properties: map[string]string{
					"font-style": "italic",
					"color":      "red",
				},
			},
			{
				Selector:   "#main",
				Properties: map[string]string{"margin": "0"},
			},
		},
	}

	want := `p.warning {
  color: red;
  font-style: italic;
}

#main {
  margin: 0;
}
`
	if got := sheet.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStylesheet_WriteTo_Empty(t *testing.T) {
	sheet := &stylesheet.Stylesheet{}
	var sb strings.Builder
	n, err := sheet.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != 0 || sb.Len() != 0 {
		t.Errorf("empty stylesheet wrote %d bytes: %q", n, sb.String())
	}
}

func TestStylesheet_WriteTo_CountsBytes(t *testing.T) {
	sheet := &stylesheet.Stylesheet{
		Rules: []stylesheet.Rule{
			{Selector: "div", Properties: map[string]string{"display": "none"}},
		},
	}
	var sb strings.Builder
	n, err := sheet.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if int(n) != sb.Len() {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, sb.Len())
	}
}

func TestStylesheet_PropertiesSorted(t *testing.T) {
	sheet := &stylesheet.Stylesheet{
		Rules: []stylesheet.Rule{
			{
				Selector: "a",
				Properties: map[string]string{
					"z-index":    "1",
					"background": "blue",
					"margin":     "0",
				},
			},
		},
	}

	out := sheet.String()
	bg := strings.Index(out, "background")
	mg := strings.Index(out, "margin")
	zi := strings.Index(out, "z-index")
	if bg < 0 || mg < 0 || zi < 0 || !(bg < mg && mg < zi) {
		t.Errorf("properties not in alphabetical order:\n%s", out)
	}
}
