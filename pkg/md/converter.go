package md

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Engine names a markdown-to-HTML implementation.
type Engine string

const (
	// EngineNative is the compiler in this package.
	EngineNative Engine = "native"
	// EngineCommonMark is goldmark's CommonMark renderer, useful for
	// comparing output against a full implementation.
	EngineCommonMark Engine = "commonmark"
)

// Engines returns all engine names.
func Engines() []string {
	return []string{string(EngineNative), string(EngineCommonMark)}
}

// commonMark is a pre-configured goldmark instance with the GFM table extension.
var commonMark = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// RenderCommonMark converts markdown to HTML with goldmark.
func RenderCommonMark(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := commonMark.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CompileWith converts markdown to HTML using the named engine.
func CompileWith(engine Engine, markdown []byte) (string, error) {
	switch engine {
	case EngineNative, "":
		return Compile(string(markdown))
	case EngineCommonMark:
		return RenderCommonMark(markdown)
	default:
		return "", fmt.Errorf("unknown engine %q (valid: %s)", engine, strings.Join(Engines(), ", "))
	}
}

// WrapDocument embeds an HTML fragment in a minimal HTML5 document.
func WrapDocument(title, body string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		sb.WriteString("<title>")
		sb.WriteString(html.EscapeString(title))
		sb.WriteString("</title>\n")
	}
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
