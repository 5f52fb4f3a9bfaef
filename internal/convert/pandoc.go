// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/pdiddy/lawbook/internal/container"
	"github.com/pdiddy/lawbook/internal/stylemap"
)

// DefaultImage is the pandoc image used when none is configured.
const DefaultImage = "pandoc/core:latest"

// referenceMount is where the reference doc's directory is mounted.
const referenceMount = "/ref"

// PandocConverter turns law HTML into docx by running pandoc in a container
// twice: HTML to pandoc JSON, then, after the style filter has run in
// process, JSON to docx.
type PandocConverter struct {
	runtime      container.Runtime
	image        string
	referenceDoc string
}

// NewPandocConverter creates a converter that uses the given container
// runtime. It verifies that image exists locally before returning. When
// referenceDoc is non-empty its styles are used for the output.
func NewPandocConverter(rt container.Runtime, image, referenceDoc string) (*PandocConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	if referenceDoc != "" {
		abs, err := filepath.Abs(referenceDoc)
		if err != nil {
			return nil, fmt.Errorf("resolving reference doc %s: %w", referenceDoc, err)
		}
		referenceDoc = abs
	}
	return &PandocConverter{runtime: rt, image: image, referenceDoc: referenceDoc}, nil
}

// Convert returns the docx bytes for html.
func (p *PandocConverter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	var ast bytes.Buffer
	toJSON := container.RunSpec{
		Image: p.image,
		Args:  []string{"--from", "html", "--to", "json"},
	}
	if err := p.runtime.Run(ctx, toJSON, bytes.NewReader(html), &ast); err != nil {
		return nil, fmt.Errorf("reading HTML with pandoc: %w", err)
	}

	var styled bytes.Buffer
	if err := stylemap.Run(&ast, &styled); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := p.runtime.Run(ctx, p.docxSpec(), &styled, &out); err != nil {
		return nil, fmt.Errorf("writing docx with pandoc: %w", err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("pandoc produced empty docx output")
	}
	return out.Bytes(), nil
}

func (p *PandocConverter) docxSpec() container.RunSpec {
	spec := container.RunSpec{
		Image: p.image,
		Args:  []string{"--from", "json", "--to", "docx", "--output", "-"},
	}
	if p.referenceDoc != "" {
		spec.Mounts = []container.Mount{{Source: filepath.Dir(p.referenceDoc), Target: referenceMount}}
		spec.Args = append(spec.Args, "--reference-doc", referenceMount+"/"+filepath.Base(p.referenceDoc))
	}
	return spec
}
