// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotDocument is returned when the input JSON has no "blocks" list.
var ErrNotDocument = errors.New("not a pandoc JSON document")

// Document is a decoded pandoc JSON document. The tree stays generic
// (maps, slices, strings, json.Number) so that elements this package has no
// view for round-trip unchanged.
type Document struct {
	root map[string]any
}

// Filter holds per-element functions. Each non-nil function is called once for
// every element of its kind, and the node it returns replaces the input.
// Children are visited before their parent. The attribute triple is written
// back only when SetCustomStyle changed it.
type Filter struct {
	Div  func(*Div) *Div
	Link func(*Link) *Link
	Span func(*Span) *Span
}

// ReadDocument decodes a pandoc JSON document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding pandoc JSON: %w", err)
	}
	if _, ok := root["blocks"].([]any); !ok {
		return nil, ErrNotDocument
	}
	return &Document{root: root}, nil
}

// ParseDocument decodes a pandoc JSON document held in memory.
func ParseDocument(data []byte) (*Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

// WriteDocument encodes doc to w as a single line of JSON.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.root); err != nil {
		return fmt.Errorf("encoding pandoc JSON: %w", err)
	}
	return nil
}

// APIVersion returns the pandoc-api-version field as written, or nil.
func (d *Document) APIVersion() []any {
	v, _ := d.root["pandoc-api-version"].([]any)
	return v
}

// Apply runs f over the document metadata, then the blocks.
func (d *Document) Apply(f Filter) error {
	if meta, ok := d.root["meta"]; ok {
		out, err := f.walk(meta)
		if err != nil {
			return fmt.Errorf("meta: %w", err)
		}
		d.root["meta"] = out
	}
	out, err := f.walk(d.root["blocks"])
	if err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	d.root["blocks"] = out
	return nil
}

func (f Filter) walk(v any) (any, error) {
	switch n := v.(type) {
	case []any:
		for i, child := range n {
			out, err := f.walk(child)
			if err != nil {
				return nil, err
			}
			n[i] = out
		}
		return n, nil
	case map[string]any:
		for k, child := range n {
			out, err := f.walk(child)
			if err != nil {
				return nil, err
			}
			n[k] = out
		}
		if tag, ok := n["t"].(string); ok {
			if err := f.visit(tag, n); err != nil {
				return nil, err
			}
		}
		return n, nil
	default:
		return v, nil
	}
}

// visit applies the filter function for tag to the element object el.
func (f Filter) visit(tag string, el map[string]any) error {
	switch tag {
	case TagDiv:
		if f.Div == nil {
			return nil
		}
		c, attr, err := elementAttr(tag, el, 2)
		if err != nil {
			return err
		}
		blocks, _ := c[1].([]any)
		out := f.Div(&Div{Attr: attr, Blocks: blocks})
		if out == nil {
			return nil
		}
		storeAttr(c, &out.Attr)
		if out.Blocks != nil {
			c[1] = out.Blocks
		}
	case TagLink:
		if f.Link == nil {
			return nil
		}
		c, attr, err := elementAttr(tag, el, 3)
		if err != nil {
			return err
		}
		inlines, _ := c[1].([]any)
		out := f.Link(&Link{Attr: attr, Inlines: inlines, Target: c[2]})
		if out == nil {
			return nil
		}
		storeAttr(c, &out.Attr)
		if out.Inlines != nil {
			c[1] = out.Inlines
		}
		if out.Target != nil {
			c[2] = out.Target
		}
	case TagSpan:
		if f.Span == nil {
			return nil
		}
		c, attr, err := elementAttr(tag, el, 2)
		if err != nil {
			return err
		}
		inlines, _ := c[1].([]any)
		out := f.Span(&Span{Attr: attr, Inlines: inlines})
		if out == nil {
			return nil
		}
		storeAttr(c, &out.Attr)
		if out.Inlines != nil {
			c[1] = out.Inlines
		}
	}
	return nil
}

// elementAttr returns the element's content array and its decoded attribute.
func elementAttr(tag string, el map[string]any, size int) ([]any, Attr, error) {
	c, ok := el["c"].([]any)
	if !ok || len(c) != size {
		return nil, Attr{}, fmt.Errorf("%s: %w", tag, ErrMalformedAttr)
	}
	attr, err := decodeAttr(c[0])
	if err != nil {
		return nil, Attr{}, fmt.Errorf("%s: %w", tag, err)
	}
	return c, attr, nil
}

func storeAttr(c []any, a *Attr) {
	if a.Changed() {
		c[0] = a.encode()
	}
}
