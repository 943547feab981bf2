// Package decompile provides the decompile command.
package decompile

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/cmd/completion"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

type decompileOptions struct {
	out string

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdDecompile creates the decompile command.
func NewCmdDecompile() *cobra.Command {
	opts := &decompileOptions{}

	cmd := &cobra.Command{
		Use:   "decompile [file]",
		Short: "Convert HTML back to markdown",
		Long: `Convert HTML to markdown.

The result is CommonMark. Single-block output of 'mdc compile' converts back
to markdown the native engine accepts; multi-block documents come back with
blank lines between blocks, which only the commonmark engine reads.`,
		Example: `  # Convert a page
  mdc decompile page.html

  # Round-trip through the compiler
  echo "See [home](/) now" | mdc compile | mdc decompile`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completion.HTMLFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()

			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return runDecompile(file, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "O", "", "Write output to file instead of stdout")

	return cmd
}

func runDecompile(file string, opts *decompileOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	data, name, err := cmdutil.ReadInput(file, opts.stdin)
	if err != nil {
		return err
	}

	markdown, err := md.FromHTML(string(data))
	if err != nil {
		return fmt.Errorf("%s: failed to convert HTML: %w", name, err)
	}
	log.Printf("decompiled %s (%d -> %d bytes)", name, len(data), len(markdown))

	return cmdutil.WriteOutput(opts.out, opts.stdout, cmdutil.WithNewline(markdown))
}
