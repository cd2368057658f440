package stylesheet

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cssel/selector"
)

// SelectorDef describes one selector in a definition document. Either
// the fragment fields or Combine is used - a definition cannot mix the
// two construction paths.
type SelectorDef struct {
	Element       string   `yaml:"element,omitempty"`
	ID            string   `yaml:"id,omitempty"`
	Classes       []string `yaml:"classes,omitempty"`
	Attrs         []string `yaml:"attrs,omitempty"`
	PseudoClasses []string `yaml:"pseudo_classes,omitempty"`
	PseudoElement string   `yaml:"pseudo_element,omitempty"`

	Combine *CombineDef `yaml:"combine,omitempty"`
}

// CombineDef joins two selector definitions with a combinator.
// Definitions nest: either side may itself be a combine.
type CombineDef struct {
	Left       SelectorDef `yaml:"left"`
	Combinator string      `yaml:"combinator"`
	Right      SelectorDef `yaml:"right"`
}

// RuleDef pairs a selector definition with property declarations.
type RuleDef struct {
	Selector   SelectorDef       `yaml:"selector"`
	Properties map[string]string `yaml:"properties"`
}

// Document is the top level of a YAML definition file.
type Document struct {
	Rules []RuleDef `yaml:"rules"`
}

// hasFragments reports whether any fragment field is set.
func (d *SelectorDef) hasFragments() bool {
	return d.Element != "" || d.ID != "" || d.PseudoElement != "" ||
		len(d.Classes) > 0 || len(d.Attrs) > 0 || len(d.PseudoClasses) > 0
}

// LoadDocument decodes a YAML definition document. Unknown fields are
// rejected so typos in definition files surface as errors.
func LoadDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode selector definitions: %w", err)
	}
	return doc, nil
}

// Compiler turns selector definitions into rendered selector strings and
// stylesheets.
type Compiler struct {
	log     *zap.Logger
	factory *selector.Factory
	strict  bool
}

// NewCompiler creates a definition compiler. In strict mode element, id,
// class and pseudo-element tokens must be plain CSS identifiers;
// attribute bodies and pseudo-classes carry their own syntax and are
// never screened.
func NewCompiler(log *zap.Logger, strict bool) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("compiler")
	return &Compiler{log: log, factory: selector.NewFactory(log), strict: strict}
}

// CompileSelector renders a single selector definition.
func (c *Compiler) CompileSelector(def SelectorDef) (string, error) {
	b, err := c.buildSelector(def)
	if err != nil {
		return "", err
	}
	return b.Render(), nil
}

// Compile renders every rule in the document into a stylesheet. Rules
// that fail to compile are skipped and their errors aggregated;
// compilation continues so one bad definition does not hide the rest.
func (c *Compiler) Compile(doc *Document) (*Stylesheet, error) {
	sheet := &Stylesheet{}

	var errs error
	for i, rd := range doc.Rules {
		sel, err := c.CompileSelector(rd.Selector)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		c.log.Debug("Compiled rule", zap.Int("rule", i), zap.String("selector", sel), zap.Int("properties", len(rd.Properties)))
		sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Properties: rd.Properties})
	}
	return sheet, errs
}

func (c *Compiler) buildSelector(def SelectorDef) (*selector.Builder, error) {
	if def.Combine != nil {
		if def.hasFragments() {
			return nil, errors.New("selector definition cannot mix fragments with combine")
		}
		if def.Combine.Combinator == "" {
			return nil, errors.New("combine definition requires a combinator")
		}
		left, err := c.buildSelector(def.Combine.Left)
		if err != nil {
			return nil, fmt.Errorf("combine left: %w", err)
		}
		right, err := c.buildSelector(def.Combine.Right)
		if err != nil {
			return nil, fmt.Errorf("combine right: %w", err)
		}
		return c.factory.Combine(left, def.Combine.Combinator, right), nil
	}

	if !def.hasFragments() {
		return nil, errors.New("empty selector definition")
	}
	if c.strict {
		if err := c.screenTokens(def); err != nil {
			return nil, err
		}
	}

	// Fragments are applied in the canonical kind order, so a
	// well-formed definition can never trip the ordering rules.
	var b *selector.Builder
	if def.Element != "" {
		b = c.factory.Element(def.Element)
	}
	if def.ID != "" {
		if b == nil {
			b = c.factory.ID(def.ID)
		} else if err := b.ID(def.ID); err != nil {
			return nil, err
		}
	}
	for _, class := range def.Classes {
		if b == nil {
			b = c.factory.Class(class)
		} else if err := b.Class(class); err != nil {
			return nil, err
		}
	}
	for _, attr := range def.Attrs {
		if b == nil {
			b = c.factory.Attr(attr)
		} else if err := b.Attr(attr); err != nil {
			return nil, err
		}
	}
	for _, pc := range def.PseudoClasses {
		if b == nil {
			b = c.factory.PseudoClass(pc)
		} else if err := b.PseudoClass(pc); err != nil {
			return nil, err
		}
	}
	if def.PseudoElement != "" {
		if b == nil {
			b = c.factory.PseudoElement(def.PseudoElement)
		} else if err := b.PseudoElement(def.PseudoElement); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// screenTokens validates identifier-shaped tokens in strict mode.
func (c *Compiler) screenTokens(def SelectorDef) error {
	var errs error
	if def.Element != "" && def.Element != "*" && !selector.IsIdent(def.Element) {
		errs = multierr.Append(errs, fmt.Errorf("element %q is not a CSS identifier", def.Element))
	}
	if def.ID != "" && !selector.IsIdent(def.ID) {
		errs = multierr.Append(errs, fmt.Errorf("id %q is not a CSS identifier", def.ID))
	}
	for _, class := range def.Classes {
		if !selector.IsIdent(class) {
			errs = multierr.Append(errs, fmt.Errorf("class %q is not a CSS identifier", class))
		}
	}
	if def.PseudoElement != "" && !selector.IsIdent(def.PseudoElement) {
		errs = multierr.Append(errs, fmt.Errorf("pseudo-element %q is not a CSS identifier", def.PseudoElement))
	}
	return errs
}
