// Package tree provides the tree command.
package tree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/cmd/completion"
	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/internal/view"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

type treeOptions struct {
	configPath string
	output     string
	noColor    bool

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdTree creates the tree command.
func NewCmdTree() *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the syntax tree of a markdown file",
		Long: `Parse markdown with the native engine and print its syntax tree.

Parse errors are reported exactly as 'mdc compile' reports them.`,
		Example: `  # Show the tree
  mdc tree README.md

  # Show the tree as JSON
  mdc tree README.md -o json`,
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
			return runTree(file, opts)
		},
	}

	return cmd
}

func runTree(file string, opts *treeOptions) error {
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

	data, name, err := cmdutil.ReadInput(file, opts.stdin)
	if err != nil {
		return err
	}

	root, err := md.Parse(md.Tokenize(string(data)))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(toTreeNode(root))
	}

	var sb strings.Builder
	md.Walk(root, func(n md.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(describe(n))
		sb.WriteByte('\n')
		return true
	})
	renderer.RenderText(strings.TrimSuffix(sb.String(), "\n"))
	return nil
}

// describe renders one node as a single line.
func describe(n md.Node) string {
	switch n := n.(type) {
	case *md.Root:
		return "Root"
	case *md.Header:
		return fmt.Sprintf("Header(%d) %q", n.Level, n.Text)
	case *md.Paragraph:
		return "Paragraph"
	case *md.Text:
		if n.Bold {
			return fmt.Sprintf("Bold %q", n.Text)
		}
		return fmt.Sprintf("Text %q", n.Text)
	case *md.Link:
		return fmt.Sprintf("Link %q -> %s", n.Text, n.Href)
	default:
		return fmt.Sprintf("%T", n)
	}
}

// treeNode is the JSON shape of a syntax tree node.
type treeNode struct {
	Type     string      `json:"type"`
	Level    int         `json:"level,omitempty"`
	Text     string      `json:"text,omitempty"`
	Href     string      `json:"href,omitempty"`
	Bold     bool        `json:"bold,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

func toTreeNode(n md.Node) *treeNode {
	switch n := n.(type) {
	case *md.Root:
		node := &treeNode{Type: "root"}
		for _, child := range n.Children {
			node.Children = append(node.Children, toTreeNode(child))
		}
		return node
	case *md.Header:
		return &treeNode{Type: "header", Level: n.Level, Text: n.Text}
	case *md.Paragraph:
		node := &treeNode{Type: "paragraph"}
		for _, child := range n.Children {
			node.Children = append(node.Children, toTreeNode(child))
		}
		return node
	case *md.Text:
		return &treeNode{Type: "text", Text: n.Text, Bold: n.Bold}
	case *md.Link:
		return &treeNode{Type: "link", Text: n.Text, Href: n.Href}
	default:
		return &treeNode{Type: fmt.Sprintf("%T", n)}
	}
}
