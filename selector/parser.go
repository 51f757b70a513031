package selector

import (
	"fmt"
	"strings"
)

type parser struct {
	source string
	tokens []token
	i      int
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

func (p *parser) next() token {
	t := p.tokens[p.i]
	if t.tokenType != eofToken {
		p.i++
	}
	return t
}

func (p *parser) skipWhitespace() bool {
	skipped := false
	for p.peek().tokenType == whitespaceToken {
		p.next()
		skipped = true
	}
	return skipped
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &SyntaxError{Selector: p.source, Offset: t.offset, Reason: fmt.Sprintf(format, args...)}
}

func describe(t token) string {
	switch t.tokenType {
	case eofToken:
		return "end of input"
	case whitespaceToken:
		return "whitespace"
	case stringToken:
		return fmt.Sprintf("string %q", t.value)
	case hashToken:
		return "#" + t.value
	default:
		return fmt.Sprintf("%q", t.value)
	}
}

// parseSelectorList reads comma separated complex selectors until end of
// input, or until a ')' when nested inside :not().
func (p *parser) parseSelectorList(nested bool) ([]complexSelector, error) {
	var list []complexSelector
	for {
		p.skipWhitespace()
		c, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		list = append(list, c)

		t := p.peek()
		switch {
		case t.is(","):
			p.next()
		case t.tokenType == eofToken && !nested:
			return list, nil
		case t.is(")") && nested:
			return list, nil
		default:
			return nil, p.errorf(t, "unexpected %s", describe(t))
		}
	}
}

func (p *parser) parseComplex() (complexSelector, error) {
	var c complexSelector
	first, err := p.parseCompound()
	if err != nil {
		return c, err
	}
	c.compounds = append(c.compounds, first)
	for {
		sawWhitespace := p.skipWhitespace()
		t := p.peek()
		var comb combinator
		switch {
		case t.tokenType == eofToken || t.is(",") || t.is(")"):
			return c, nil
		case t.is(">"):
			comb = child
		case t.is("+"):
			comb = nextSibling
		case t.is("~"):
			comb = subsequentSibling
		case sawWhitespace:
			comb = descendant
		default:
			return c, p.errorf(t, "unexpected %s", describe(t))
		}
		if comb != descendant {
			p.next()
			p.skipWhitespace()
		}
		compound, err := p.parseCompound()
		if err != nil {
			return c, err
		}
		c.combinators = append(c.combinators, comb)
		c.compounds = append(c.compounds, compound)
	}
}

func (p *parser) parseCompound() (compound, error) {
	var c compound
	start := p.peek()
	switch {
	case start.tokenType == identToken:
		p.next()
		c.tag = start.value
	case start.is("*"):
		p.next()
		c.universal = true
	}

	for {
		t := p.peek()
		switch {
		case t.tokenType == hashToken:
			p.next()
			c.matchers = append(c.matchers, idMatcher(t.value))
		case t.is("."):
			p.next()
			name := p.next()
			if name.tokenType != identToken {
				return c, p.errorf(name, "expected a class name, got %s", describe(name))
			}
			c.matchers = append(c.matchers, classMatcher(name.value))
		case t.is("["):
			p.next()
			m, err := p.parseAttribute()
			if err != nil {
				return c, err
			}
			c.matchers = append(c.matchers, m)
		case t.is(":"):
			p.next()
			m, err := p.parsePseudo()
			if err != nil {
				return c, err
			}
			c.matchers = append(c.matchers, m)
		default:
			if c.tag == "" && !c.universal && len(c.matchers) == 0 {
				return c, p.errorf(t, "expected a selector, got %s", describe(t))
			}
			return c, nil
		}
	}
}

var attributeOperators = map[string]attributeOp{
	"~": includesOp,
	"|": dashOp,
	"^": prefixOp,
	"$": suffixOp,
	"*": substringOp,
}

func (p *parser) parseAttribute() (matcher, error) {
	p.skipWhitespace()
	name := p.next()
	if name.tokenType != identToken {
		return nil, p.errorf(name, "expected an attribute name, got %s", describe(name))
	}
	// names are lowercased by the element itself, and only for HTML
	m := &attributeMatcher{name: name.value, op: existsOp}
	p.skipWhitespace()

	t := p.next()
	if t.is("]") {
		return m, nil
	}
	if t.is("=") {
		m.op = equalsOp
	} else if op, ok := attributeOperators[t.value]; ok && t.tokenType == delimToken && p.peek().is("=") {
		p.next()
		m.op = op
	} else {
		return nil, p.errorf(t, "expected an attribute operator, got %s", describe(t))
	}

	p.skipWhitespace()
	v := p.next()
	if v.tokenType != identToken && v.tokenType != stringToken {
		return nil, p.errorf(v, "expected an attribute value, got %s", describe(v))
	}
	m.value = v.value

	p.skipWhitespace()
	if end := p.next(); !end.is("]") {
		return nil, p.errorf(end, "expected ']', got %s", describe(end))
	}
	return m, nil
}

func (p *parser) parsePseudo() (matcher, error) {
	name := p.next()
	if name.tokenType != identToken {
		return nil, p.errorf(name, "expected a pseudo-class name, got %s", describe(name))
	}
	switch strings.ToLower(name.value) {
	case "first-child":
		return firstChildMatcher{}, nil
	case "last-child":
		return lastChildMatcher{}, nil
	case "only-child":
		return onlyChildMatcher{}, nil
	case "empty":
		return emptyMatcher{}, nil
	case "root":
		return rootMatcher{}, nil
	case "not":
		if open := p.next(); !open.is("(") {
			return nil, p.errorf(open, "expected '(' after :not, got %s", describe(open))
		}
		list, err := p.parseSelectorList(true)
		if err != nil {
			return nil, err
		}
		p.next()
		return notMatcher(list), nil
	default:
		return nil, p.errorf(name, "unsupported pseudo-class :%s", name.value)
	}
}
