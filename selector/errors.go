package selector

import "fmt"

// SyntaxError reports a selector string that could not be compiled. Offset
// counts runes from the start of Selector.
type SyntaxError struct {
	Selector string
	Offset   int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q: %s at offset %d", e.Selector, e.Reason, e.Offset)
}
