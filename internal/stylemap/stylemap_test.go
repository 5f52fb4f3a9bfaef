// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stylemap

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lawbook/internal/pandoc"
)

func div(classes ...string) *pandoc.Div {
	return &pandoc.Div{Attr: pandoc.NewAttr("", classes)}
}

func link(classes ...string) *pandoc.Link {
	return &pandoc.Link{Attr: pandoc.NewAttr("", classes)}
}

func span(classes ...string) *pandoc.Span {
	return &pandoc.Span{Attr: pandoc.NewAttr("", classes)}
}

func TestMapStyle(t *testing.T) {
	tests := []struct {
		name      string
		node      Styleable
		allowed   []string
		wantStyle string
	}{
		{
			name:      "container law-desc with other class",
			node:      div("law-desc", "other-class"),
			allowed:   ContainerClasses,
			wantStyle: "law-desc",
		},
		{
			name:      "hyperlink law-number-link",
			node:      link("law-number-link"),
			allowed:   InlineClasses,
			wantStyle: "law-number-link",
		},
		{
			name:    "container ignores law-number-link",
			node:    div("law-number-link"),
			allowed: ContainerClasses,
		},
		{
			name:      "span first match wins",
			node:      span("law-number1", "law-desc"),
			allowed:   InlineClasses,
			wantStyle: "law-number1",
		},
		{
			name:    "empty classes on container",
			node:    div(),
			allowed: ContainerClasses,
		},
		{
			name:    "empty classes on link",
			node:    link(),
			allowed: InlineClasses,
		},
		{
			name:    "empty classes on span",
			node:    span(),
			allowed: InlineClasses,
		},
		{
			name:      "unrecognised classes before a match are skipped",
			node:      div("wikitable", "mw-parser-output", "law-number3"),
			allowed:   ContainerClasses,
			wantStyle: "law-number3",
		},
		{
			name:    "class match is case sensitive",
			node:    span("Law-Desc"),
			allowed: InlineClasses,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := slices.Clone(tt.node.Classes())
			got := MapStyle(tt.node, tt.allowed)

			attr := attrOf(t, got)
			style, ok := attr.Get(pandoc.CustomStyleKey)
			if tt.wantStyle == "" {
				assert.False(t, ok, "custom-style must not be set")
				assert.False(t, attr.Changed())
			} else {
				assert.True(t, ok)
				assert.Equal(t, tt.wantStyle, style)
			}
			assert.Equal(t, before, got.Classes(), "classes must not change")
		})
	}
}

func TestMapStyle_Idempotent(t *testing.T) {
	for _, classes := range [][]string{
		{"law-number2"},
		{"x", "law-desc", "law-number"},
		{"none"},
		nil,
	} {
		once := MapStyle(span(classes...), InlineClasses)
		twice := MapStyle(MapStyle(span(classes...), InlineClasses), InlineClasses)
		assert.Equal(t, once.CustomStyle, twice.CustomStyle, "classes %v", classes)
		assert.Equal(t, once.KeyVals, twice.KeyVals, "classes %v", classes)
	}
}

func TestMapStyle_KeepsOtherAttributes(t *testing.T) {
	d := &pandoc.Div{Attr: pandoc.NewAttr("s1", []string{"law-number"},
		pandoc.KeyVal{Key: "dir", Value: "rtl"},
		pandoc.KeyVal{Key: "lang", Value: "he"},
	)}

	got := MapStyle(d, ContainerClasses)

	assert.Equal(t, "s1", got.Identifier)
	assert.Equal(t, "law-number", got.CustomStyle)
	assert.Equal(t, []pandoc.KeyVal{{Key: "dir", Value: "rtl"}, {Key: "lang", Value: "he"}}, got.KeyVals)
}

func TestAllowLists(t *testing.T) {
	assert.Len(t, ContainerClasses, 5)
	assert.Len(t, InlineClasses, 6)
	assert.NotContains(t, ContainerClasses, LawNumberLink)
	for _, c := range ContainerClasses {
		assert.Contains(t, InlineClasses, c)
	}
}

func TestRun(t *testing.T) {
	in := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
		`{"t":"Div","c":[["",["law-number-link","law-desc"],[]],[` +
		`{"t":"Plain","c":[` +
		`{"t":"Link","c":[["",["law-number-link"],[]],[{"t":"Str","c":"5"}],["#s5",""]]},` +
		`{"t":"Span","c":[["",["note"],[["title","t"]]],[{"t":"Str","c":"הגדרות"}]]}` +
		`]}]]}]}`

	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader(in), &out))
	s := out.String()

	assert.Contains(t, s, `["",["law-number-link","law-desc"],[["custom-style","law-desc"]]]`)
	assert.Contains(t, s, `["",["law-number-link"],[["custom-style","law-number-link"]]]`)
	assert.Contains(t, s, `["",["note"],[["title","t"]]]`)
	assert.Contains(t, s, "הגדרות")
}

func TestRun_RejectsNonDocument(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader(`[1,2,3]`), &out)
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}

func attrOf(t *testing.T, n Styleable) *pandoc.Attr {
	t.Helper()
	switch v := n.(type) {
	case *pandoc.Div:
		return &v.Attr
	case *pandoc.Link:
		return &v.Attr
	case *pandoc.Span:
		return &v.Attr
	}
	t.Fatalf("unexpected node type %T", n)
	return nil
}
