package selector

import (
	"fmt"
	"strings"
)

type tokenType uint

const (
	identToken tokenType = iota
	hashToken
	stringToken
	delimToken
	whitespaceToken
	eofToken
)

type token struct {
	tokenType tokenType
	value     string
	offset    int
}

func (t token) is(delim string) bool {
	return t.tokenType == delimToken && t.value == delim
}

type tokenizerState uint

const (
	dataState tokenizerState = iota
	nameState
	whitespaceState
	stringState
	escapeState
)

type stateHandler func(r rune, eof bool) (bool, tokenizerState)

const delimiters = ".*[]=~|^$>+,:()"

// tokenizer splits a selector string into tokens. Each state handler
// returns whether the current rune must be reconsumed and the next state.
type tokenizer struct {
	source                    string
	input                     []rune
	pos, start                int
	currentState, returnState tokenizerState
	kind                      tokenType
	quote                     rune
	buf                       strings.Builder
	tokens                    []token
	err                       *SyntaxError
}

func tokenize(source string) ([]token, error) {
	z := &tokenizer{source: source, input: []rune(source)}
	for z.pos = 0; z.pos <= len(z.input); z.pos++ {
		var r rune
		eof := z.pos == len(z.input)
		if !eof {
			r = z.input[z.pos]
		}
		reconsume := true
		for reconsume {
			reconsume, z.currentState = z.stateToParser(z.currentState)(r, eof)
			if z.err != nil {
				return nil, z.err
			}
		}
	}
	return z.tokens, nil
}

func (z *tokenizer) stateToParser(state tokenizerState) stateHandler {
	switch state {
	case nameState:
		return z.nameStateParser
	case whitespaceState:
		return z.whitespaceStateParser
	case stringState:
		return z.stringStateParser
	case escapeState:
		return z.escapeStateParser
	default:
		return z.dataStateParser
	}
}

func (z *tokenizer) emit(kind tokenType, value string, offset int) {
	z.tokens = append(z.tokens, token{tokenType: kind, value: value, offset: offset})
}

func (z *tokenizer) fail(format string, args ...interface{}) {
	z.err = &SyntaxError{Selector: z.source, Offset: z.pos, Reason: fmt.Sprintf(format, args...)}
}

func (z *tokenizer) begin(kind tokenType) {
	z.kind = kind
	z.start = z.pos
	z.buf.Reset()
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '-' || r == '_' || r >= 0x80
}

func (z *tokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(eofToken, "", z.pos)
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		z.emit(whitespaceToken, " ", z.pos)
		return false, whitespaceState
	case r == '"' || r == '\'':
		z.begin(stringToken)
		z.quote = r
		return false, stringState
	case r == '#':
		z.begin(hashToken)
		return false, nameState
	case r == '\\':
		z.begin(identToken)
		z.returnState = nameState
		return false, escapeState
	case isNameChar(r):
		z.begin(identToken)
		return true, nameState
	case strings.ContainsRune(delimiters, r):
		z.emit(delimToken, string(r), z.pos)
		return false, dataState
	default:
		z.fail("unexpected character %q", r)
		return false, dataState
	}
}

func (z *tokenizer) nameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && isNameChar(r):
		z.buf.WriteRune(r)
		return false, nameState
	case !eof && r == '\\':
		z.returnState = nameState
		return false, escapeState
	}
	if z.buf.Len() == 0 {
		z.fail("expected a name after '#'")
		return false, dataState
	}
	z.emit(z.kind, z.buf.String(), z.start)
	return true, dataState
}

func (z *tokenizer) whitespaceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isWhitespace(r) {
		return false, whitespaceState
	}
	return true, dataState
}

func (z *tokenizer) stringStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		z.fail("unterminated string")
	case r == z.quote:
		z.emit(stringToken, z.buf.String(), z.start)
		return false, dataState
	case r == '\\':
		z.returnState = stringState
		return false, escapeState
	default:
		z.buf.WriteRune(r)
	}
	return false, stringState
}

func (z *tokenizer) escapeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.fail("dangling escape")
		return false, dataState
	}
	z.buf.WriteRune(r)
	return false, z.returnState
}
