// Package init provides the init command for mdc.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/internal/view"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

type initOptions struct {
	configPath string
	engine     string
	format     string
	extension  string
	title      string
	defaults   bool
	force      bool

	stdout io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mdc configuration",
		Long: `Initialize mdc with your preferred compiler settings.

This command will guide you through choosing the default engine, the output
format for summaries, and the extension of compiled files. The configuration
will be saved to ~/.config/mdc/config.yml.`,
		Example: `  # Interactive setup
  mdc init

  # Pre-select the engine
  mdc init --engine commonmark

  # Non-interactive setup with defaults
  mdc init --defaults --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.Globals(cmd).ConfigPath
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.engine, "engine", "", "Default compiler engine (native, commonmark)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Default output format (table, json, plain)")
	cmd.Flags().StringVar(&opts.extension, "extension", "", "Extension for compiled files (e.g., .html)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Default title for --document output")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Skip prompts and save flags plus defaults")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.defaults {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.stdout, "Initialization cancelled.")
			return nil
		}
	}

	cfg := prefill(opts)

	if !opts.defaults {
		if err := newForm(cfg).Run(); err != nil {
			return err
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Smoke-test the chosen engine before saving
	if _, err := md.CompileWith(md.Engine(cfg.Engine), []byte("# mdc\n")); err != nil {
		return fmt.Errorf("engine check failed: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(opts.stdout, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(opts.stdout, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.stdout, "  mdc compile README.md")
	fmt.Fprintln(opts.stdout, "  mdc compile docs/*.md --out-dir site")

	return nil
}

// prefill builds the starting configuration from flags and defaults.
func prefill(opts *initOptions) *config.Config {
	cfg := &config.Config{
		Engine:        opts.engine,
		OutputFormat:  opts.format,
		Extension:     opts.extension,
		DocumentTitle: opts.title,
	}
	cfg.ApplyDefaults()
	return cfg
}

func newForm(cfg *config.Config) *huh.Form {
	engines := make([]huh.Option[string], 0, len(md.Engines()))
	for _, e := range md.Engines() {
		engines = append(engines, huh.NewOption(e, e))
	}
	formats := make([]huh.Option[string], 0, len(view.ValidFormats()))
	for _, f := range view.ValidFormats() {
		formats = append(formats, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Engine").
				Description("native accepts the strict subset; commonmark renders everything").
				Options(engines...).
				Value(&cfg.Engine),

			huh.NewSelect[string]().
				Title("Output format").
				Description("Format for summaries, token dumps and trees").
				Options(formats...).
				Value(&cfg.OutputFormat),

			huh.NewInput().
				Title("Output extension").
				Description("Extension of files written by --out-dir").
				Placeholder(config.DefaultExtension).
				Value(&cfg.Extension).
				Validate(validateExtension),

			huh.NewInput().
				Title("Document title (optional)").
				Description("Default <title> for --document; file name when empty").
				Value(&cfg.DocumentTitle),
		),
	)
}

func validateExtension(s string) error {
	if s == "" {
		return errors.New("extension is required")
	}
	if s[0] != '.' {
		return errors.New("extension must start with a dot")
	}
	if len(s) == 1 {
		return errors.New("extension needs a name after the dot")
	}
	return nil
}
