// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stylemap maps law-document classes onto docx custom styles.
//
// Law pages tag section numbers and descriptions with a small set of classes
// (law-number, law-desc, ...). Pandoc's docx writer turns a custom-style
// attribute into a named paragraph or character style, so the filter copies
// the first recognised class into custom-style on every Div, Link and Span.
package stylemap

import (
	"fmt"
	"io"
	"slices"

	"github.com/pdiddy/lawbook/internal/pandoc"
)

// Recognised classes.
const (
	LawNumber     = "law-number"
	LawNumber1    = "law-number1"
	LawNumber2    = "law-number2"
	LawNumber3    = "law-number3"
	LawNumberLink = "law-number-link"
	LawDesc       = "law-desc"
)

var (
	// ContainerClasses are the classes recognised on Div blocks.
	ContainerClasses = []string{LawNumber, LawNumber1, LawNumber2, LawNumber3, LawDesc}

	// InlineClasses are the classes recognised on Link and Span inlines.
	InlineClasses = []string{LawNumber, LawNumber1, LawNumber2, LawNumber3, LawNumberLink, LawDesc}
)

// Styleable is a node whose classes can be read and whose custom-style
// attribute can be set.
type Styleable interface {
	Classes() []string
	SetCustomStyle(style string)
}

// MapStyle sets the custom-style of node to the first of its classes found in
// allowed. A node with no recognised class is left untouched. The class list
// itself is never modified.
func MapStyle[N Styleable](node N, allowed []string) N {
	for _, c := range node.Classes() {
		if slices.Contains(allowed, c) {
			node.SetCustomStyle(c)
			break
		}
	}
	return node
}

// NewFilter returns the pandoc filter that applies MapStyle with the
// container allow-list to Divs and the inline allow-list to Links and Spans.
func NewFilter() pandoc.Filter {
	return pandoc.Filter{
		Div:  func(d *pandoc.Div) *pandoc.Div { return MapStyle(d, ContainerClasses) },
		Link: func(l *pandoc.Link) *pandoc.Link { return MapStyle(l, InlineClasses) },
		Span: func(s *pandoc.Span) *pandoc.Span { return MapStyle(s, InlineClasses) },
	}
}

// Apply runs the style filter over doc in place.
func Apply(doc *pandoc.Document) error {
	return doc.Apply(NewFilter())
}

// Run reads a pandoc JSON document from r, applies the style filter, and
// writes the result to w. This is the JSON filter protocol pandoc speaks to
// --filter executables.
func Run(r io.Reader, w io.Writer) error {
	doc, err := pandoc.ReadDocument(r)
	if err != nil {
		return err
	}
	if err := Apply(doc); err != nil {
		return fmt.Errorf("applying style filter: %w", err)
	}
	return pandoc.WriteDocument(w, doc)
}
