package configcmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

// sampleDocument exercises every construct the native engine accepts.
const sampleDocument = `Sample
======
Some **bold** text with [a link](/docs)
## Section
[Standalone](/link)
`

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured compiler",
		Long:  `Validate the current configuration and compile a sample document with the configured engine.`,
		Example: `  # Test configuration
  mdc config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runTest(g.ConfigPath, g.NoColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runTest(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	cfg, err := config.Resolve(configPath)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Configuration invalid:", err)
		return err
	}
	_, _ = green.Fprintln(w, "✓ Configuration valid")

	fmt.Fprintf(w, "Compiling sample document with the %s engine...\n", cfg.Engine)

	html, err := md.CompileWith(md.Engine(cfg.Engine), []byte(sampleDocument))
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Compilation failed:", err)
		fmt.Fprintln(w, "\nReconfigure with: mdc init")
		return fmt.Errorf("sample compilation failed: %w", err)
	}

	_, _ = green.Fprintln(w, "✓ Sample compiled")
	fmt.Fprintf(w, "\n%s\n", html)

	return nil
}
