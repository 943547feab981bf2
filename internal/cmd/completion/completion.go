// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

// shell describes one supported completion target.
type shell struct {
	name    string
	long    string
	example string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		long: `To load completions in your current shell session:

  source <(mdc completion bash)

To load completions for every new session:

  # Linux
  mdc completion bash > /etc/bash_completion.d/mdc

  # macOS (requires bash-completion)
  mdc completion bash > $(brew --prefix)/etc/bash_completion.d/mdc`,
		example: `  # Load in current session
  source <(mdc completion bash)

  # Install permanently (Linux)
  mdc completion bash | sudo tee /etc/bash_completion.d/mdc > /dev/null`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		long: `To load completions in your current shell session:

  source <(mdc completion zsh)

To load completions for every new session, make sure compinit is enabled in
~/.zshrc and add the script to your fpath:

  mdc completion zsh > "${fpath[1]}/_mdc"`,
		example: `  # Load in current session
  source <(mdc completion zsh)

  # Install permanently
  mkdir -p ~/.zsh/completions
  mdc completion zsh > ~/.zsh/completions/_mdc`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		long: `To load completions in your current shell session:

  mdc completion fish | source

To load completions for every new session:

  mdc completion fish > ~/.config/fish/completions/mdc.fish`,
		example: `  # Load in current session
  mdc completion fish | source`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		long: `To load completions in your current shell session:

  mdc completion powershell | Out-String | Invoke-Expression

To load completions for every new session, add the output to your profile.`,
		example: `  # Install permanently
  mdc completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mdc.

These scripts enable tab-completion for commands, flags, and arguments.
File arguments complete to markdown files for compile, tokens and tree, and
to HTML files for decompile. See each sub-command's help for installation
instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.name + " completion script",
		Long:                  "Generate " + sh.name + " completion script for mdc.\n\n" + sh.long,
		Example:               sh.example,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// MarkdownFiles completes file arguments to markdown sources.
func MarkdownFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"md", "markdown"}, cobra.ShellCompDirectiveFilterFileExt
}

// HTMLFiles completes file arguments to HTML documents.
func HTMLFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"html", "htm"}, cobra.ShellCompDirectiveFilterFileExt
}
