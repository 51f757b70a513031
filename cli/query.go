package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heathj/gozebra/dom"
	"github.com/heathj/gozebra/parser"
	"github.com/heathj/gozebra/selector"
	"github.com/heathj/gozebra/zebra"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Step is one traversal of a query, written name(arg) on the command line.
type Step struct {
	Name string
	Arg  string
}

func (s Step) String() string {
	return s.Name + "(" + s.Arg + ")"
}

var steps = map[string]func(*zebra.Selection, string) *zebra.Selection{
	"children": func(s *zebra.Selection, a string) *zebra.Selection { return s.Children(a) },
	"siblings": func(s *zebra.Selection, a string) *zebra.Selection { return s.Siblings(a) },
	"parent":   func(s *zebra.Selection, a string) *zebra.Selection { return s.Parent(a) },
	"parents":  func(s *zebra.Selection, a string) *zebra.Selection { return s.Parents(a) },
	"next":     func(s *zebra.Selection, a string) *zebra.Selection { return s.Next(a) },
	"prev":     func(s *zebra.Selection, a string) *zebra.Selection { return s.Prev(a) },
	"find":     (*zebra.Selection).Find,
	"filter":   (*zebra.Selection).Filter,
	"closest":  (*zebra.Selection).Closest,
}

// StepNames lists the accepted step names.
func StepNames() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseStep reads "name(arg)", "name()" or a bare "name".
func ParseStep(s string) (Step, error) {
	s = strings.TrimSpace(s)
	name, arg := s, ""
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Step{}, errors.Errorf("malformed step %q: missing closing parenthesis", s)
		}
		name, arg = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:len(s)-1])
	} else if strings.ContainsAny(s, ") \t") {
		return Step{}, errors.Errorf("malformed step %q", s)
	}
	name = strings.ToLower(name)
	if _, ok := steps[name]; !ok {
		return Step{}, errors.Errorf("unknown step %q: must be one of %v", name, StepNames())
	}
	return Step{Name: name, Arg: arg}, nil
}

// Apply runs the step on sel.
func (s Step) Apply(sel *zebra.Selection) *zebra.Selection {
	return steps[s.Name](sel, s.Arg)
}

// ElementRecord is the structured form of a matched element.
type ElementRecord struct {
	Tag     string   `json:"tag" yaml:"tag"`
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Classes []string `json:"classes,omitempty" yaml:"classes,omitempty"`
	HTML    string   `json:"html" yaml:"html"`
}

// ElementList prints one outer HTML fragment per line in text output.
type ElementList []ElementRecord

func (l ElementList) String() string {
	lines := make([]string, len(l))
	for i, r := range l {
		lines[i] = r.HTML
	}
	return strings.Join(lines, "\n")
}

func newElementList(nodes []*dom.Node) ElementList {
	out := make(ElementList, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ElementRecord{
			Tag:     n.LocalName,
			ID:      n.ID(),
			Classes: n.ClassList(),
			HTML:    parser.OuterHTML(n),
		})
	}
	return out
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <selector> [step...]",
		Short: "Select elements and apply traversal steps",
		Long: fmt.Sprintf(`Select the elements of the document matching <selector>, then apply each
step in order. A step is written name(arg) where the argument is an optional
selector, required for find, filter and closest.

Steps: %s`, strings.Join(StepNames(), ", ")),
		Args: checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], args[1:], cmd)
		},
	}
	return cmd
}

func runQuery(opts *RootOptions, sel string, rawSteps []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	parsed := make([]Step, 0, len(rawSteps))
	for _, raw := range rawSteps {
		st, err := ParseStep(raw)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStep, err, nil)
		}
		parsed = append(parsed, st)
	}

	doc, err := loadDocument(opts, cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, err, nil)
	}

	result := doc.Find(sel)
	for _, st := range parsed {
		result = st.Apply(result)
	}
	if err := result.Err(); err != nil {
		var syntaxErr *selector.SyntaxError
		if errors.As(err, &syntaxErr) {
			return formatter.Fail(ExitCommandError, ErrCodeSelector, err, map[string]interface{}{
				"selector": syntaxErr.Selector,
				"offset":   syntaxErr.Offset,
			})
		}
		return formatter.Fail(ExitFailure, ErrCodeQuery, err, nil)
	}

	formatter.VerboseLog("%d element(s) matched", result.Len())
	return formatter.Success(newElementList(result.Nodes()))
}
