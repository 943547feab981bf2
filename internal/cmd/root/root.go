// Package root provides the root command for the mdc CLI.
package root

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/compile"
	"github.com/open-cli-collective/md-compiler/internal/cmd/completion"
	"github.com/open-cli-collective/md-compiler/internal/cmd/configcmd"
	"github.com/open-cli-collective/md-compiler/internal/cmd/decompile"
	initcmd "github.com/open-cli-collective/md-compiler/internal/cmd/init"
	"github.com/open-cli-collective/md-compiler/internal/cmd/tokens"
	"github.com/open-cli-collective/md-compiler/internal/cmd/tree"
	"github.com/open-cli-collective/md-compiler/internal/version"
)

// NewCmdRoot creates the root command for mdc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdc",
		Short: "A compiler from a strict markdown subset to HTML",
		Long: `mdc compiles markdown to HTML.

The native engine accepts headers, paragraphs, bold spans and links, and
reports a parse error for anything else. Use 'mdc tokens' and 'mdc tree' to
see how a document is read, and the commonmark engine for full markdown.

Get started by running: mdc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			configureLogging(verbose, cmd.ErrOrStderr())
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default from config, else table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(compile.NewCmdCompile())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(tree.NewCmdTree())
	cmd.AddCommand(decompile.NewCmdDecompile())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// configureLogging routes the standard logger to w when verbose and
// discards it otherwise.
func configureLogging(verbose bool, w io.Writer) {
	log.SetFlags(0)
	log.SetPrefix("mdc: ")
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}
