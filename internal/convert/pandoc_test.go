// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lawbook/internal/container"
)

const pandocAST = `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
	`{"t":"Div","c":[["",["law-number"],[]],[{"t":"Plain","c":[{"t":"Str","c":"1."}]}]]}]}`

// fakeRuntime records container runs and answers like pandoc would.
type fakeRuntime struct {
	imageErr error
	runs     []container.RunSpec
	docxIn   string
	docxOut  string
	fail     int // 1-based run index that fails; 0 = none
}

func (f *fakeRuntime) Name() string    { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, spec container.RunSpec, stdin io.Reader, stdout io.Writer) error {
	f.runs = append(f.runs, spec)
	if f.fail == len(f.runs) {
		return errors.New("exit status 64")
	}
	in, _ := io.ReadAll(stdin)
	if strings.Contains(strings.Join(spec.Args, " "), "--to json") {
		_, err := io.WriteString(stdout, pandocAST)
		return err
	}
	f.docxIn = string(in)
	_, err := io.WriteString(stdout, f.docxOut)
	return err
}

func TestNewPandocConverter_ImageMissing(t *testing.T) {
	_, err := NewPandocConverter(&fakeRuntime{imageErr: errors.New("no such image")}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc image not available")
}

func TestPandocConverter_Convert(t *testing.T) {
	rt := &fakeRuntime{docxOut: "PK\x03\x04"}
	c, err := NewPandocConverter(rt, "", "")
	require.NoError(t, err)

	out, err := c.Convert(context.Background(), []byte(`<div class="law-number">1.</div>`))
	require.NoError(t, err)

	assert.Equal(t, "PK\x03\x04", string(out))
	require.Len(t, rt.runs, 2)
	assert.Equal(t, DefaultImage, rt.runs[0].Image)
	assert.Equal(t, []string{"--from", "html", "--to", "json"}, rt.runs[0].Args)
	assert.Equal(t, []string{"--from", "json", "--to", "docx", "--output", "-"}, rt.runs[1].Args)
	assert.Empty(t, rt.runs[1].Mounts)

	// The docx writer receives the AST with custom-style applied.
	assert.Contains(t, rt.docxIn, `["",["law-number"],[["custom-style","law-number"]]]`)
}

func TestPandocConverter_ReferenceDoc(t *testing.T) {
	rt := &fakeRuntime{docxOut: "PK"}
	c, err := NewPandocConverter(rt, "pandoc/latex:3.6", "/styles/lawbook-reference.docx")
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), []byte("<p/>"))
	require.NoError(t, err)

	require.Len(t, rt.runs, 2)
	assert.Equal(t, "pandoc/latex:3.6", rt.runs[1].Image)
	assert.Equal(t, []container.Mount{{Source: "/styles", Target: "/ref"}}, rt.runs[1].Mounts)
	assert.Contains(t, rt.runs[1].Args, "/ref/lawbook-reference.docx")
}

func TestPandocConverter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rt      *fakeRuntime
		wantErr string
	}{
		{name: "reader fails", rt: &fakeRuntime{fail: 1}, wantErr: "reading HTML with pandoc"},
		{name: "writer fails", rt: &fakeRuntime{fail: 2}, wantErr: "writing docx with pandoc"},
		{name: "empty output", rt: &fakeRuntime{}, wantErr: "empty docx output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewPandocConverter(tt.rt, "", "")
			require.NoError(t, err)
			_, err = c.Convert(context.Background(), []byte("<p/>"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
