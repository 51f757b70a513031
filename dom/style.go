package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// parseDeclarations reads a style attribute. Property names are lowercased
// and a repeated property keeps its first position with the last value.
// Declarations after a malformed one are dropped.
func parseDeclarations(style string) []*css.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	// the last declaration is only closed by ';' or '}'
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	parsed, _ := parser.ParseDeclarations(style)

	var decls []*css.Declaration
	for _, d := range parsed {
		d.Property = strings.ToLower(d.Property)
		if d.Property == "" {
			continue
		}
		if i := indexOf(decls, d.Property); i >= 0 {
			decls[i].Value, decls[i].Important = d.Value, d.Important
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

func indexOf(decls []*css.Declaration, name string) int {
	for i, d := range decls {
		if d.Property == name {
			return i
		}
	}
	return -1
}

func serializeDeclarations(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}

// StyleProperty reads a property from the inline style attribute. There is
// no cascade, so this is also what the computed style reports.
func (e *Element) StyleProperty(name string) (string, bool) {
	style, ok := e.GetAttribute("style")
	if !ok {
		return "", false
	}
	decls := parseDeclarations(style)
	if i := indexOf(decls, strings.ToLower(strings.TrimSpace(name))); i >= 0 {
		return decls[i].Value, true
	}
	return "", false
}

// SetStyleProperty is https://drafts.csswg.org/cssom/#dom-cssstyledeclaration-setproperty.
// An empty value removes the property.
func (e *Element) SetStyleProperty(name, value string) {
	if e == nil {
		return
	}
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if value == "" {
		e.RemoveStyleProperty(name)
		return
	}
	style, _ := e.GetAttribute("style")
	decls := parseDeclarations(style)
	if i := indexOf(decls, name); i >= 0 {
		decls[i].Value, decls[i].Important = value, false
	} else {
		decls = append(decls, &css.Declaration{Property: name, Value: value})
	}
	e.SetAttribute("style", serializeDeclarations(decls))
}

func (e *Element) RemoveStyleProperty(name string) {
	style, ok := e.GetAttribute("style")
	if !ok {
		return
	}
	name = strings.ToLower(strings.TrimSpace(name))
	decls := parseDeclarations(style)
	kept := decls[:0]
	for _, d := range decls {
		if d.Property != name {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttribute("style")
		return
	}
	e.SetAttribute("style", serializeDeclarations(kept))
}
