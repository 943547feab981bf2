// Package compile provides the compile command.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/md-compiler/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-compiler/internal/cmd/completion"
	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/internal/view"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

type compileOptions struct {
	engine   string
	out      string
	outDir   string
	jobs     int
	document bool
	title    string
	check    bool

	configPath string
	output     string
	noColor    bool

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdCompile creates the compile command.
func NewCmdCompile() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [file...]",
		Short: "Compile markdown to HTML",
		Long: `Compile markdown files to HTML.

With no file (or "-") the markdown is read from standard input. A single
input is written to standard output unless --out is given. Several inputs
are compiled concurrently and require --out-dir; each output file keeps the
input's base name with the configured extension (default .html).

The native engine supports ATX and underline headers, paragraphs, bold
spans and links, and fails on anything else. The commonmark engine renders
full CommonMark for comparison.`,
		Example: `  # Compile a file to stdout
  mdc compile README.md

  # Compile from stdin
  echo "# Hello" | mdc compile

  # Compile several files into a directory
  mdc compile docs/*.md --out-dir site

  # Produce a standalone HTML page
  mdc compile notes.md --document --title "Notes" -O notes.html

  # Check files without writing output
  mdc compile docs/*.md --check`,
		ValidArgsFunction: completion.MarkdownFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cmdutil.Globals(cmd)
			opts.configPath = g.ConfigPath
			opts.output = g.Output
			opts.noColor = g.NoColor
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runCompile(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "Compiler engine: native, commonmark (default from config, else native)")
	cmd.Flags().StringVarP(&opts.out, "out", "O", "", "Write output to file instead of stdout")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "d", "", "Write one output file per input into this directory")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Maximum files compiled concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Wrap output in a complete HTML document")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title for --document (default from config, else file name)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Compile and report element counts without writing output")

	return cmd
}

// compiled is the outcome for one input.
type compiled struct {
	input  string
	output string
	html   string
}

func runCompile(ctx context.Context, files []string, opts *compileOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}

	engine := opts.engine
	if engine == "" {
		engine = cfg.Engine
	}
	if !slices.Contains(md.Engines(), engine) {
		return fmt.Errorf("invalid engine %q (valid: %s)", engine, strings.Join(md.Engines(), ", "))
	}

	output := opts.output
	if output == "" {
		output = cfg.OutputFormat
	}
	renderer, err := cmdutil.NewRenderer(output, opts.noColor, opts.stdout)
	if err != nil {
		return err
	}

	if opts.out != "" && opts.outDir != "" {
		return errors.New("--out and --out-dir cannot be used together")
	}
	if len(files) > 1 && opts.out != "" {
		return errors.New("--out cannot be used with multiple input files; use --out-dir")
	}
	if len(files) > 1 && opts.outDir == "" && !opts.check {
		return errors.New("multiple input files require --out-dir")
	}
	if len(files) == 0 {
		files = []string{""}
	}

	if err := checkInputs(files); err != nil {
		return err
	}

	writeFiles := opts.outDir != "" && !opts.check
	var outputs []string
	if writeFiles {
		outputs, err = outputPaths(opts.outDir, files, cfg.Extension)
		if err != nil {
			return err
		}
	}

	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]compiled, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, name, err := cmdutil.ReadInput(file, opts.stdin)
			if err != nil {
				return err
			}

			html, err := md.CompileWith(md.Engine(engine), data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if opts.document {
				html = md.WrapDocument(documentTitle(opts.title, cfg.DocumentTitle, file), html)
			}
			log.Printf("compiled %s with %s engine (%d -> %d bytes)", name, engine, len(data), len(html))

			results[i] = compiled{input: name, html: html}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Nothing is written until every input has compiled.
	if writeFiles {
		if err := os.MkdirAll(opts.outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for i := range results {
			results[i].output = outputs[i]
			if err := os.WriteFile(outputs[i], []byte(results[i].html), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputs[i], err)
			}
		}
	}

	switch {
	case opts.check:
		return renderCheck(renderer, results)
	case opts.outDir != "":
		renderSummary(renderer, results)
		return nil
	default:
		res := results[0]
		if opts.out == "" {
			return cmdutil.WriteOutput("", opts.stdout, cmdutil.WithNewline(res.html))
		}
		return cmdutil.WriteOutput(opts.out, opts.stdout, res.html)
	}
}

// documentTitle picks the --document title: flag, then config, then the
// input's base name.
func documentTitle(flag, configured, file string) string {
	if flag != "" {
		return flag
	}
	if configured != "" {
		return configured
	}
	if file == "" || file == "-" {
		return ""
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath maps an input file to its file in dir with extension ext.
func outputPath(dir, file, ext string) string {
	base := "stdin"
	if file != "" && file != "-" {
		base = filepath.Base(file)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, base+ext)
}

// checkInputs rejects reading standard input more than once.
func checkInputs(files []string) error {
	stdin := 0
	for _, file := range files {
		if file == "" || file == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("standard input can only be read once")
	}
	return nil
}

// outputPaths maps every input to its output file and fails when two inputs
// would write the same file.
func outputPaths(dir string, files []string, ext string) ([]string, error) {
	paths := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		path := outputPath(dir, file, ext)
		if prev, ok := seen[path]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, inputName(file), path)
		}
		seen[path] = inputName(file)
		paths[i] = path
	}
	return paths, nil
}

func inputName(file string) string {
	if file == "" || file == "-" {
		return cmdutil.StdinName
	}
	return file
}

func renderSummary(renderer *view.Renderer, results []compiled) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{res.input, res.output, humanize.Bytes(uint64(len(res.html)))})
	}
	renderer.RenderTable([]string{"INPUT", "OUTPUT", "SIZE"}, rows)
}

// htmlStats counts the elements of a compiled document.
type htmlStats struct {
	Headings   int
	Paragraphs int
	Links      int
}

func inspect(html string) (htmlStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return htmlStats{}, err
	}
	return htmlStats{
		Headings:   doc.Find("h1, h2, h3, h4, h5, h6").Length(),
		Paragraphs: doc.Find("p").Length(),
		Links:      doc.Find("a[href]").Length(),
	}, nil
}

func renderCheck(renderer *view.Renderer, results []compiled) error {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		stats, err := inspect(res.html)
		if err != nil {
			return fmt.Errorf("%s: failed to inspect output: %w", res.input, err)
		}
		rows = append(rows, []string{
			res.input,
			strconv.Itoa(stats.Headings),
			strconv.Itoa(stats.Paragraphs),
			strconv.Itoa(stats.Links),
			humanize.Bytes(uint64(len(res.html))),
		})
	}
	renderer.RenderTable([]string{"INPUT", "HEADINGS", "PARAGRAPHS", "LINKS", "SIZE"}, rows)
	return nil
}
