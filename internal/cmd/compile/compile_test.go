package compile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md-compiler/internal/config"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

// newOptions returns options isolated from the user's config and environment.
func newOptions(t *testing.T, stdin string) (*compileOptions, *bytes.Buffer) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	var stdout bytes.Buffer
	return &compileOptions{
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		noColor:    true,
		stdin:      strings.NewReader(stdin),
		stdout:     &stdout,
	}, &stdout
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunCompile_Stdin(t *testing.T) {
	opts, stdout := newOptions(t, "# Hello\nSome **bold** text\n")

	err := runCompile(context.Background(), nil, opts)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello</h1><p>Some <em>bold</em> text</p>\n", stdout.String())
}

func TestRunCompile_DashReadsStdin(t *testing.T) {
	opts, stdout := newOptions(t, "Title\n=====\n")

	err := runCompile(context.Background(), []string{"-"}, opts)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", stdout.String())
}

func TestRunCompile_FileToOut(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "doc.md", "[home](/index.html)\n")
	opts, stdout := newOptions(t, "")
	opts.out = filepath.Join(dir, "doc.html")

	err := runCompile(context.Background(), []string{input}, opts)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(opts.out)
	require.NoError(t, err)
	assert.Equal(t, `<a href="/index.html">home</a>`, string(data))
}

func TestRunCompile_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.md", "# One\n\n# Two\n")
	opts, stdout := newOptions(t, "")

	err := runCompile(context.Background(), []string{input}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, md.ErrParse)
	assert.Contains(t, err.Error(), "broken.md")
	assert.Empty(t, stdout.String())
}

func TestRunCompile_MissingFile(t *testing.T) {
	opts, _ := newOptions(t, "")

	err := runCompile(context.Background(), []string{filepath.Join(t.TempDir(), "missing.md")}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCompile_CommonMarkEngine(t *testing.T) {
	opts, stdout := newOptions(t, "# Hello\n\n- item\n")
	opts.engine = "commonmark"

	err := runCompile(context.Background(), nil, opts)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "<h1>Hello</h1>")
	assert.Contains(t, stdout.String(), "<li>item</li>")
}

func TestRunCompile_EngineFromConfig(t *testing.T) {
	opts, stdout := newOptions(t, "- item\n")
	require.NoError(t, (&config.Config{Engine: "commonmark"}).Save(opts.configPath))

	err := runCompile(context.Background(), nil, opts)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "<li>item</li>")
}

func TestRunCompile_InvalidEngine(t *testing.T) {
	opts, _ := newOptions(t, "# Hello\n")
	opts.engine = "pandoc"

	err := runCompile(context.Background(), nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid engine "pandoc"`)
}

func TestRunCompile_InvalidOutputFormat(t *testing.T) {
	opts, _ := newOptions(t, "# Hello\n")
	opts.output = "xml"

	err := runCompile(context.Background(), nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunCompile_FlagConflicts(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		out    string
		outDir string
		errMsg string
	}{
		{
			name:   "out and out-dir",
			files:  []string{"a.md"},
			out:    "a.html",
			outDir: "site",
			errMsg: "cannot be used together",
		},
		{
			name:   "out with several files",
			files:  []string{"a.md", "b.md"},
			out:    "a.html",
			errMsg: "use --out-dir",
		},
		{
			name:   "several files without out-dir",
			files:  []string{"a.md", "b.md"},
			errMsg: "multiple input files require --out-dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := newOptions(t, "")
			opts.out = tt.out
			opts.outDir = tt.outDir

			err := runCompile(context.Background(), tt.files, opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRunCompile_OutDir(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.md", "# A\n"),
		writeFile(t, dir, "b.md", "B body\n"),
		writeFile(t, dir, "c.markdown", "C\n-\n"),
	}
	outDir := filepath.Join(dir, "site")

	opts, stdout := newOptions(t, "")
	opts.outDir = outDir
	opts.output = "plain"
	opts.jobs = 2

	err := runCompile(context.Background(), files, opts)
	require.NoError(t, err)

	want := map[string]string{
		"a.html": "<h1>A</h1>",
		"b.html": "<p>B body</p>",
		"c.html": "<h2>C</h2>",
	}
	for name, html := range want {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, html, string(data), name)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		cells := strings.Split(line, "\t")
		require.Len(t, cells, 3)
		assert.Equal(t, files[i], cells[0])
		assert.Equal(t, filepath.Join(outDir, []string{"a.html", "b.html", "c.html"}[i]), cells[1])
	}
	assert.Equal(t, "10 B", strings.Split(lines[0], "\t")[2])
}

func TestRunCompile_OutDirExtensionFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "page.md", "# Page\n")
	outDir := filepath.Join(dir, "out")

	opts, _ := newOptions(t, "")
	t.Setenv("MDC_EXTENSION", ".htm")
	opts.outDir = outDir
	opts.output = "plain"

	err := runCompile(context.Background(), []string{input}, opts)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "page.htm"))
}

func TestRunCompile_OutDirStopsOnError(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "good.md", "# Good\n"),
		writeFile(t, dir, "bad.md", "one\n\ntwo\n"),
	}

	opts, stdout := newOptions(t, "")
	opts.outDir = filepath.Join(dir, "site")
	opts.jobs = 1

	err := runCompile(context.Background(), files, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, md.ErrParse)
	assert.Contains(t, err.Error(), "bad.md")
	assert.Empty(t, stdout.String())
	assert.NoDirExists(t, opts.outDir)
}

func TestRunCompile_OutDirDuplicateOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))
	files := []string{
		writeFile(t, dir, filepath.Join("a", "x.md"), "# A\n"),
		writeFile(t, dir, filepath.Join("b", "x.md"), "# B\n"),
	}

	opts, stdout := newOptions(t, "")
	opts.outDir = filepath.Join(dir, "out")

	err := runCompile(context.Background(), files, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would both be written to "+filepath.Join(opts.outDir, "x.html"))
	assert.Contains(t, err.Error(), files[0])
	assert.Contains(t, err.Error(), files[1])
	assert.Empty(t, stdout.String())
	assert.NoDirExists(t, opts.outDir)
}

func TestRunCompile_StdinOnlyOnce(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"repeated dash", []string{"-", "-"}},
		{"dash and empty", []string{"-", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, stdout := newOptions(t, "# Hello\n")
			opts.check = true

			err := runCompile(context.Background(), tt.files, opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "standard input can only be read once")
			assert.Empty(t, stdout.String())
		})
	}
}

func TestOutputPaths(t *testing.T) {
	paths, err := outputPaths("site", []string{"docs/a.md", "docs/b.md", "-"}, ".html")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("site", "a.html"),
		filepath.Join("site", "b.html"),
		filepath.Join("site", "stdin.html"),
	}, paths)

	_, err = outputPaths("site", []string{"a.md", "a.markdown"}, ".html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.md and a.markdown")
}

func TestRunCompile_Document(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "release-notes.md", "# Notes\n")

	t.Run("title from file name", func(t *testing.T) {
		opts, stdout := newOptions(t, "")
		opts.document = true

		err := runCompile(context.Background(), []string{input}, opts)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<!DOCTYPE html>")
		assert.Contains(t, stdout.String(), "<title>release-notes</title>")
		assert.Contains(t, stdout.String(), "<h1>Notes</h1>")
	})

	t.Run("title flag wins over config", func(t *testing.T) {
		opts, stdout := newOptions(t, "")
		t.Setenv("MDC_DOCUMENT_TITLE", "From Config")
		opts.document = true
		opts.title = "From Flag"

		err := runCompile(context.Background(), []string{input}, opts)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<title>From Flag</title>")
	})

	t.Run("title from config", func(t *testing.T) {
		opts, stdout := newOptions(t, "")
		t.Setenv("MDC_DOCUMENT_TITLE", "From Config")
		opts.document = true

		err := runCompile(context.Background(), []string{input}, opts)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<title>From Config</title>")
	})
}

func TestRunCompile_Check(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "guide.md", "# Guide\nRead [this](/a) and [that](/b)\n"),
		writeFile(t, dir, "index.md", "Index\n=====\n[Start](/start)\n"),
	}
	outDir := filepath.Join(dir, "site")

	opts, stdout := newOptions(t, "")
	opts.check = true
	opts.outDir = outDir
	opts.output = "json"

	err := runCompile(context.Background(), files, opts)
	require.NoError(t, err)
	assert.NoDirExists(t, outDir)

	out := stdout.String()
	assert.Contains(t, out, `"headings": "1"`)
	assert.Contains(t, out, `"paragraphs": "1"`)
	assert.Contains(t, out, `"links": "2"`)
	assert.Contains(t, out, `"paragraphs": "0"`)
	assert.Contains(t, out, `"links": "1"`)
	assert.Contains(t, out, filepath.Base(files[0]))
}

func TestRunCompile_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.md", "# A\n"),
		writeFile(t, dir, "b.md", "# B\n"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _ := newOptions(t, "")
	opts.outDir = filepath.Join(dir, "site")

	err := runCompile(ctx, files, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInspect(t *testing.T) {
	stats, err := inspect(`<h1>A</h1><h3>B</h3><p>x <a href="/y">y</a></p><a href="/z">z</a>`)
	require.NoError(t, err)
	assert.Equal(t, htmlStats{Headings: 2, Paragraphs: 1, Links: 2}, stats)
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		configured string
		file       string
		expected   string
	}{
		{"flag", "Flag", "Config", "doc.md", "Flag"},
		{"config", "", "Config", "doc.md", "Config"},
		{"file base name", "", "", "docs/getting-started.md", "getting-started"},
		{"stdin", "", "", "", ""},
		{"dash", "", "", "-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, documentTitle(tt.flag, tt.configured, tt.file))
		})
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("site", "intro.html"), outputPath("site", "docs/intro.md", ".html"))
	assert.Equal(t, filepath.Join("site", "README.htm"), outputPath("site", "README", ".htm"))
	assert.Equal(t, filepath.Join("site", "stdin.html"), outputPath("site", "", ".html"))
}

func TestNewCmdCompile(t *testing.T) {
	cmd := NewCmdCompile()
	assert.Equal(t, "compile [file...]", cmd.Use)

	for _, name := range []string{"engine", "out", "out-dir", "jobs", "document", "title", "check"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "O", cmd.Flags().Lookup("out").Shorthand)
}
