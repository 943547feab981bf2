// Package tokens provides the tokens command.
package tokens

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/cmd/completion"
	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/internal/view"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

type tokensOptions struct {
	configPath string
	output     string
	noColor    bool

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a markdown file",
		Long: `Tokenize markdown and print one row per token.

Tokenizing never fails: text the native grammar cannot use still produces
tokens, and the parse error only surfaces in 'mdc tree' or 'mdc compile'.`,
		Example: `  # Show tokens as a table
  mdc tokens README.md

  # Show tokens as JSON
  echo "# Hi" | mdc tokens -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completion.MarkdownFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cmdutil.Globals(cmd)
			opts.configPath = g.ConfigPath
			opts.output = g.Output
			opts.noColor = g.NoColor
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()

			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return runTokens(file, opts)
		},
	}

	return cmd
}

func runTokens(file string, opts *tokensOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = cfg.OutputFormat
	}
	renderer, err := cmdutil.NewRenderer(output, opts.noColor, opts.stdout)
	if err != nil {
		return err
	}

	data, _, err := cmdutil.ReadInput(file, opts.stdin)
	if err != nil {
		return err
	}

	tokens := md.Tokenize(string(data))

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(tokens)
	}

	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		var level, text string
		if tok.Level > 0 {
			level = strconv.Itoa(tok.Level)
		}
		if tok.Text != "" {
			text = strconv.Quote(tok.Text)
		}
		rows = append(rows, []string{
			tok.Kind.String(),
			level,
			text,
			tok.Href,
			strconv.Itoa(tok.Pos),
		})
	}
	renderer.RenderTable([]string{"KIND", "LEVEL", "TEXT", "HREF", "POS"}, rows)
	return nil
}
