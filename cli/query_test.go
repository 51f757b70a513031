package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		in       string
		expected Step
	}{
		{"children", Step{Name: "children"}},
		{"children()", Step{Name: "children"}},
		{"children(li)", Step{Name: "children", Arg: "li"}},
		{" Parents( .box ) ", Step{Name: "parents", Arg: ".box"}},
		{"filter(:not(.x))", Step{Name: "filter", Arg: ":not(.x)"}},
		{"find(ul > li, p)", Step{Name: "find", Arg: "ul > li, p"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStep(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseStepErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"cousins(p)", "unknown step"},
		{"", "unknown step"},
		{"children(li", "missing closing parenthesis"},
		{"children)", "malformed step"},
		{"next p", "malformed step"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			_, err := ParseStep(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, []string{
		"children", "closest", "filter", "find", "next", "parent", "parents", "prev", "siblings",
	}, StepNames())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "closest(div)", Step{Name: "closest", Arg: "div"}.String())
}
