// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc reads and writes pandoc's JSON document representation and
// walks it with per-element filter functions, the way pandoc --filter
// executables do.
//
// Only Div, Link and Span get typed views. Everything else in the tree is kept
// as decoded JSON and written back as read.
package pandoc

import (
	"errors"
	"fmt"
)

// CustomStyleKey is the attribute pandoc's docx writer maps to a named
// paragraph (Div) or character (Span, Link) style.
const CustomStyleKey = "custom-style"

// Element tags handled by Filter.
const (
	TagDiv  = "Div"
	TagLink = "Link"
	TagSpan = "Span"
)

// ErrMalformedAttr is returned when an element's attribute triple does not
// have the [identifier, [classes], [[key, value]]] shape.
var ErrMalformedAttr = errors.New("malformed attribute triple")

// KeyVal is one pass-through attribute pair.
type KeyVal struct {
	Key   string
	Value string
}

// Attr is the attribute record shared by Div, Link and Span. The custom-style
// key is lifted out of the pair list into its own field; all other pairs are
// kept in source order.
type Attr struct {
	Identifier string
	classes    []string

	// CustomStyle is the custom-style value; empty when the key is absent.
	CustomStyle string

	// KeyVals holds every other attribute pair in source order.
	KeyVals []KeyVal

	changed bool
}

// NewAttr builds an attribute record. Used mostly by tests and callers that
// construct nodes by hand.
func NewAttr(id string, classes []string, kvs ...KeyVal) Attr {
	a := Attr{Identifier: id, classes: classes}
	for _, kv := range kvs {
		if kv.Key == CustomStyleKey {
			a.CustomStyle = kv.Value
			continue
		}
		a.KeyVals = append(a.KeyVals, kv)
	}
	return a
}

// Classes returns the element's classes. Callers must not modify the slice.
func (a *Attr) Classes() []string { return a.classes }

// SetCustomStyle sets the custom-style attribute. Writing the value already
// present is a no-op and does not mark the record changed.
func (a *Attr) SetCustomStyle(style string) {
	if a.CustomStyle == style {
		return
	}
	a.CustomStyle = style
	a.changed = true
}

// Changed reports whether SetCustomStyle modified the record since decoding.
func (a *Attr) Changed() bool { return a.changed }

// Get returns the value for key, including custom-style.
func (a *Attr) Get(key string) (string, bool) {
	if key == CustomStyleKey {
		return a.CustomStyle, a.CustomStyle != ""
	}
	for _, kv := range a.KeyVals {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// decodeAttr converts the generic JSON triple into an Attr.
func decodeAttr(v any) (Attr, error) {
	triple, ok := v.([]any)
	if !ok || len(triple) != 3 {
		return Attr{}, ErrMalformedAttr
	}
	id, ok := triple[0].(string)
	if !ok {
		return Attr{}, fmt.Errorf("%w: identifier is not a string", ErrMalformedAttr)
	}

	rawClasses, ok := triple[1].([]any)
	if !ok {
		return Attr{}, fmt.Errorf("%w: classes is not a list", ErrMalformedAttr)
	}
	classes := make([]string, 0, len(rawClasses))
	for _, c := range rawClasses {
		s, ok := c.(string)
		if !ok {
			return Attr{}, fmt.Errorf("%w: class is not a string", ErrMalformedAttr)
		}
		classes = append(classes, s)
	}

	rawKVs, ok := triple[2].([]any)
	if !ok {
		return Attr{}, fmt.Errorf("%w: attributes is not a list", ErrMalformedAttr)
	}
	kvs := make([]KeyVal, 0, len(rawKVs))
	for _, p := range rawKVs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			return Attr{}, fmt.Errorf("%w: attribute is not a pair", ErrMalformedAttr)
		}
		k, kok := pair[0].(string)
		val, vok := pair[1].(string)
		if !kok || !vok {
			return Attr{}, fmt.Errorf("%w: attribute pair is not strings", ErrMalformedAttr)
		}
		kvs = append(kvs, KeyVal{Key: k, Value: val})
	}

	return NewAttr(id, classes, kvs...), nil
}

// encode converts the record back into the generic JSON triple. custom-style
// goes last.
func (a *Attr) encode() []any {
	classes := make([]any, len(a.classes))
	for i, c := range a.classes {
		classes[i] = c
	}
	kvs := make([]any, 0, len(a.KeyVals)+1)
	for _, kv := range a.KeyVals {
		kvs = append(kvs, []any{kv.Key, kv.Value})
	}
	if a.CustomStyle != "" {
		kvs = append(kvs, []any{CustomStyleKey, a.CustomStyle})
	}
	return []any{a.Identifier, classes, kvs}
}

// Div is a block container. Blocks is the decoded block list, opaque here.
type Div struct {
	Attr
	Blocks []any
}

// Link is a hyperlink. Inlines and Target are opaque decoded JSON.
type Link struct {
	Attr
	Inlines []any
	Target  any
}

// Span is a generic inline container.
type Span struct {
	Attr
	Inlines []any
}
