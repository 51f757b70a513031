package dom

import "strings"

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// Element is https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI      Namespace
	Prefix, LocalName string
	Attributes        *NamedNodeMap
}

func (e *Element) HasAttributes() bool {
	return e != nil && e.Attributes.Length > 0
}

func (e *Element) GetAttributeNames() []string {
	if e == nil {
		return nil
	}
	return e.Attributes.Names()
}

// GetAttribute reports the value of the named attribute and whether it is
// present at all.
func (e *Element) GetAttribute(qualifiedName string) (string, bool) {
	if e == nil {
		return "", false
	}
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		return attr.Value, true
	}
	return "", false
}

func (e *Element) SetAttribute(qualifiedName, value string) {
	if e == nil {
		return
	}
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		attr.Value = value
		return
	}
	e.Attributes.SetNamedItem(NewAttr(qualifiedName, value, nil))
}

func (e *Element) RemoveAttribute(qualifiedName string) {
	if e == nil {
		return
	}
	e.Attributes.RemoveNamedItem(qualifiedName)
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	_, ok := e.GetAttribute(qualifiedName)
	return ok
}

// ToggleAttribute is https://dom.spec.whatwg.org/#dom-element-toggleattribute
func (e *Element) ToggleAttribute(qualifiedName string, force ...bool) bool {
	has := e.HasAttribute(qualifiedName)
	want := !has
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !has:
		e.SetAttribute(qualifiedName, "")
	case !want && has:
		e.RemoveAttribute(qualifiedName)
	}
	return want
}

func (e *Element) ID() string {
	id, _ := e.GetAttribute("id")
	return id
}

func (e *Element) ClassName() string {
	c, _ := e.GetAttribute("class")
	return c
}

// ClassList is the ordered set of tokens of the class attribute.
// https://dom.spec.whatwg.org/#dom-element-classlist
func (e *Element) ClassList() []string {
	return tokenSet(e.ClassName())
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends every token not already present. Empty names are ignored.
func (e *Element) AddClass(names ...string) {
	if e == nil {
		return
	}
	list := e.ClassList()
	changed := false
	for _, name := range names {
		for _, tok := range strings.Fields(name) {
			if !contains(list, tok) {
				list = append(list, tok)
				changed = true
			}
		}
	}
	if changed {
		e.SetAttribute("class", strings.Join(list, " "))
	}
}

func (e *Element) RemoveClass(names ...string) {
	if e == nil || !e.HasAttribute("class") {
		return
	}
	var drop []string
	for _, name := range names {
		drop = append(drop, strings.Fields(name)...)
	}
	var kept []string
	for _, c := range e.ClassList() {
		if !contains(drop, c) {
			kept = append(kept, c)
		}
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass flips name and reports whether it is present afterwards.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

func tokenSet(s string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if !contains(out, tok) {
			out = append(out, tok)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
