// Package cmdutil holds helpers shared by the mdc subcommands.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/view"
)

// StdinName is the display name used for input read from standard input.
const StdinName = "<stdin>"

// GlobalOptions carries the persistent flags defined on the root command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	NoColor    bool
}

// Globals reads the root command's persistent flags.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	return g
}

// ReadInput reads path, or stdin when path is empty or "-". It returns the
// content and a display name for messages.
func ReadInput(path string, stdin io.Reader) ([]byte, string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, StdinName, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, StdinName, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read file: %w", err)
	}
	return data, path, nil
}

// WriteOutput writes content to path, or to w when path is empty or "-".
func WriteOutput(path string, w io.Writer, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NewRenderer validates the output format and returns a renderer writing to w.
func NewRenderer(output string, noColor bool, w io.Writer) (*view.Renderer, error) {
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}
	r := view.NewRenderer(view.Format(output), noColor)
	if w != nil {
		r.SetWriter(w)
	}
	return r, nil
}

// WithNewline appends a trailing newline unless s is empty or has one.
func WithNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
