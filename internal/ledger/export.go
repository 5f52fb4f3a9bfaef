// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lawbook/pkg/types"
)

// ExportFile is the YAML export name inside the output directory.
const ExportFile = "documents.yaml"

// exportDoc is the on-disk shape of the ledger export.
type exportDoc struct {
	LastUpdated string              `yaml:"last_updated,omitempty"`
	Documents   []types.LawDocument `yaml:"documents"`
}

// ExportYAML writes the ledger to dir/documents.yaml and returns its path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	last, _, err := s.LastUpdated(ctx)
	if err != nil {
		return "", err
	}
	docs, err := s.Documents(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(&exportDoc{LastUpdated: last, Documents: docs})
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, ExportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
