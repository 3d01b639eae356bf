// Parses vector markup into a mutable document tree, rejects
// malformed input with displayable errors, and strips executable
// content. The tree is mutated in place by the sanitizer and by
// downstream consumers (metrics write-back, background pruning) and
// serialized back with the untouched input texture preserved.
package svgdom

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ParseError describes why markup could not be ingested. Reason is
// short and displayable on its own; Err carries the underlying
// decoder error when there is one.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document owns a parsed markup tree. Mutations are destructive and
// irreversible; callers needing the original source must retain
// their own copy.
type Document struct {
	tree *etree.Document
}

// Parse reads the document from a source string.
func Parse(source string) (*Document, error) {
	return ParseReader(strings.NewReader(source))
}

// ParseReader reads the document from the given io.Reader. Parsing
// is strict: mismatched or unterminated tags and invalid entities
// fail, as does input whose root element is not <svg>.
func ParseReader(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, &ParseError{Reason: "malformed markup", Err: err}
	}
	root := tree.Root()
	if root == nil {
		return nil, &ParseError{Reason: "no markup element found"}
	}
	if root.Tag != "svg" {
		return nil, &ParseError{Reason: "root element <" + root.Tag + "> is not an svg root"}
	}
	return &Document{tree: tree}, nil
}

// Root returns the top-level svg element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// Walk visits every element in document order. inDefs reports
// whether an ancestor is a defs container; such elements are not
// directly rendered.
func (d *Document) Walk(visit func(el *etree.Element, inDefs bool)) {
	walk(d.Root(), false, visit)
}

func walk(el *etree.Element, inDefs bool, visit func(*etree.Element, bool)) {
	if el == nil {
		return
	}
	visit(el, inDefs)
	for _, child := range el.ChildElements() {
		walk(child, inDefs || el.Tag == "defs", visit)
	}
}

// Markup serializes the document back to a string.
func (d *Document) Markup() (string, error) {
	return d.tree.WriteToString()
}
