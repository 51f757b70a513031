package cli

import (
	"github.com/spf13/cobra"
)

// TreeDump is the parsed document in the html5lib tree format.
type TreeDump struct {
	Tree string `json:"tree" yaml:"tree"`
}

func (t TreeDump) String() string {
	return t.Tree
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the parsed document tree",
		Args:  checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			doc, err := loadDocument(rootOpts, cmd)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeInput, err, nil)
			}
			return formatter.Success(TreeDump{Tree: doc.Root().String()})
		},
	}
}
