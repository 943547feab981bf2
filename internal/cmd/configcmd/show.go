package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective mdc configuration and where each value comes from.`,
		Example: `  # Show current config
  mdc config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runShow(g.ConfigPath, g.NoColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}
	defaults := *cfg
	defaults.ApplyDefaults()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, defaultValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")

		source := "config"
		switch {
		case value == "" && defaultValue == "":
			_, _ = dim.Fprintln(w, "-")
			return
		case value == "":
			value = defaultValue
			source = "default"
		case os.Getenv(envVar) != "" && os.Getenv(envVar) == value:
			source = envVar
		case fileValue != value:
			source = "-"
		}

		fmt.Fprint(w, value)
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Engine", cfg.Engine, fileCfg.Engine, defaults.Engine, "MDC_ENGINE")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, defaults.OutputFormat, "MDC_OUTPUT_FORMAT")
	printField("Extension", cfg.Extension, fileCfg.Extension, defaults.Extension, "MDC_EXTENSION")
	printField("Title", cfg.DocumentTitle, fileCfg.DocumentTitle, defaults.DocumentTitle, "MDC_DOCUMENT_TITLE")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
