// Package stylesheet generates CSS text from selector definitions.
package stylesheet

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Rule is a single CSS rule: a rendered selector plus its property
// declarations.
type Rule struct {
	Selector   string            // rendered selector string
	Properties map[string]string // property name -> raw value
}

// Stylesheet is an ordered collection of rules.
type Stylesheet struct {
	Rules []Rule
}

// WriteTo writes the stylesheet to w in rule order, implementing
// io.WriterTo. Property order within a rule is sorted alphabetically for
// deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, rule := range s.Rules {
		n, err := writeRule(w, &rule)
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
