package zebra

import (
	"fmt"
	"strconv"
	"strings"
)

// AddClass adds each class to every element.
func (s *Selection) AddClass(names ...string) *Selection {
	for _, n := range s.set.Nodes() {
		n.AddClass(names...)
	}
	return s
}

func (s *Selection) RemoveClass(names ...string) *Selection {
	for _, n := range s.set.Nodes() {
		n.RemoveClass(names...)
	}
	return s
}

// ToggleClass flips each class on every element independently.
func (s *Selection) ToggleClass(names ...string) *Selection {
	for _, n := range s.set.Nodes() {
		for _, name := range names {
			for _, tok := range strings.Fields(name) {
				n.ToggleClass(tok)
			}
		}
	}
	return s
}

// HasClass reports whether any element carries the class.
func (s *Selection) HasClass(name string) bool {
	for _, n := range s.set.Nodes() {
		if n.HasClass(name) {
			return true
		}
	}
	return false
}

// Css returns a style property of the first element, or "" when there is
// no element or no such property.
func (s *Selection) Css(prop string) string {
	n, err := s.set.At(0)
	if err != nil {
		return ""
	}
	v, _ := n.StyleProperty(prop)
	return v
}

// SetCss sets a style property on every element. An empty value removes
// the property.
func (s *Selection) SetCss(prop, value string) *Selection {
	for _, n := range s.set.Nodes() {
		n.SetStyleProperty(prop, value)
	}
	return s
}

// Height returns the height of the first element as a float, 0 when it is
// missing or not numeric.
func (s *Selection) Height() float64 {
	return parseLeadingFloat(s.Css("height"))
}

// SetHeight sets the height of every element. Numbers, and strings holding
// only a number, get a "px" suffix.
func (s *Selection) SetHeight(v interface{}) *Selection {
	return s.SetCss("height", normalizeLength(v))
}

func (s *Selection) Width() float64 {
	return parseLeadingFloat(s.Css("width"))
}

func (s *Selection) SetWidth(v interface{}) *Selection {
	return s.SetCss("width", normalizeLength(v))
}

func normalizeLength(v interface{}) string {
	var str string
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n) + "px"
	case int64:
		return strconv.FormatInt(n, 10) + "px"
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64) + "px"
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32) + "px"
	case string:
		str = strings.TrimSpace(n)
	default:
		str = strings.TrimSpace(fmt.Sprint(v))
	}
	if isPlainNumber(str) {
		return str + "px"
	}
	return str
}

func isPlainNumber(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
		case (r == '-' || r == '+') && i == 0:
		default:
			return false
		}
	}
	return digits > 0 && strings.Count(s, ".") <= 1
}

// parseLeadingFloat reads the longest numeric prefix of s, so "12.5px" is
// 12.5, "1.2.3" is 1.2 and "1e3px" is 1000. No prefix reads as 0.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := digitsAt(s, i)
	i += mantissa
	if i < len(s) && s[i] == '.' {
		if frac := digitsAt(s, i+1); frac > 0 {
			mantissa += frac
			i += 1 + frac
		}
	}
	if mantissa == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if exp := digitsAt(s, j); exp > 0 {
			i = j + exp
		}
	}
	// the prefix is well formed; out of range values come back as ±Inf
	f, _ := strconv.ParseFloat(s[:i], 64)
	return f
}

func digitsAt(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] >= '0' && s[i+n] <= '9' {
		n++
	}
	return n
}
