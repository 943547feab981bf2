// render.go renders a syntax tree to HTML.
package md

import (
	"strconv"
	"strings"
)

// Render converts a syntax tree to HTML. Children are concatenated left to
// right with no separating whitespace. Text is written verbatim; escaping
// is left to the caller.
func Render(root *Root) (string, error) {
	if root == nil {
		return "", &CodeGenError{}
	}
	return RenderNode(root)
}

// RenderNode renders a single node and its children.
func RenderNode(n Node) (string, error) {
	var sb strings.Builder
	if err := renderNode(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderNode(sb *strings.Builder, n Node) error {
	switch n := n.(type) {
	case *Root:
		if n == nil {
			return &CodeGenError{Node: n}
		}
		for _, child := range n.Children {
			if err := renderNode(sb, child); err != nil {
				return err
			}
		}
	case *Header:
		if n == nil {
			return &CodeGenError{Node: n}
		}
		level := strconv.Itoa(n.Level)
		sb.WriteString("<h" + level + ">")
		sb.WriteString(n.Text)
		sb.WriteString("</h" + level + ">")
	case *Paragraph:
		if n == nil {
			return &CodeGenError{Node: n}
		}
		sb.WriteString("<p>")
		for _, child := range n.Children {
			if err := renderNode(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("</p>")
	case *Text:
		if n == nil {
			return &CodeGenError{Node: n}
		}
		if n.Bold {
			sb.WriteString("<em>")
			sb.WriteString(n.Text)
			sb.WriteString("</em>")
		} else {
			sb.WriteString(n.Text)
		}
	case *Link:
		if n == nil {
			return &CodeGenError{Node: n}
		}
		sb.WriteString(`<a href="`)
		sb.WriteString(n.Href)
		sb.WriteString(`">`)
		sb.WriteString(n.Text)
		sb.WriteString(`</a>`)
	default:
		return &CodeGenError{Node: n}
	}
	return nil
}
