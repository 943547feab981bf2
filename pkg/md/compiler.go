// Package md compiles a small subset of markdown to HTML.
//
// Compilation runs in three strictly sequential stages:
//
//	Tokenize: text   -> []Token
//	Parse:    []Token -> *Root
//	Render:   *Root  -> HTML
//
// Supported constructs are ATX headers ("# Title"), underline headers
// ("Title" over "===" or "---"), paragraphs of plain text, bold spans
// ("**b**" or "__b__", rendered as <em>) and links ("[text](href)"). A link
// alone on its line is emitted as a top-level <a> without a paragraph.
//
// Every function in this package is pure; documents may be compiled from
// any number of goroutines concurrently.
package md

// Compile converts markdown to HTML. It returns a *ParseError when the
// token stream does not match the grammar; there is never partial output.
func Compile(markdown string) (string, error) {
	root, err := Parse(Tokenize(markdown))
	if err != nil {
		return "", err
	}
	return Render(root)
}
