// ast.go defines the syntax tree produced by Parse and consumed by Render.
package md

// Node is any syntax tree node. The set of implementations is closed:
// Root, Header, Paragraph, Text and Link.
type Node interface {
	node()
}

// Block is a node that may appear directly under Root.
type Block interface {
	Node
	block()
}

// Inline is a node that may appear inside a Paragraph.
type Inline interface {
	Node
	inline()
}

// Root is the document node.
type Root struct {
	Children []Block `json:"children"`
}

// Header is an ATX or underline-style heading.
type Header struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Paragraph is a run of inline nodes terminated by a line break.
type Paragraph struct {
	Children []Inline `json:"children"`
}

// Text is a plain or bold inline text run.
type Text struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Link is a hyperlink, either standalone on its own line or inline.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

func (*Root) node()      {}
func (*Header) node()    {}
func (*Paragraph) node() {}
func (*Text) node()      {}
func (*Link) node()      {}

func (*Header) block()    {}
func (*Paragraph) block() {}
func (*Link) block()      {}

func (*Text) inline() {}
func (*Link) inline() {}

// WalkFunc is called for every node visited by Walk with the node's depth
// below the starting node. Returning false skips the node's children.
type WalkFunc func(n Node, depth int) bool

// Walk traverses the tree rooted at n depth-first, left to right.
func Walk(n Node, fn WalkFunc) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) {
	if n == nil || !fn(n, depth) {
		return
	}
	switch n := n.(type) {
	case *Root:
		for _, child := range n.Children {
			walk(child, depth+1, fn)
		}
	case *Paragraph:
		for _, child := range n.Children {
			walk(child, depth+1, fn)
		}
	}
}
