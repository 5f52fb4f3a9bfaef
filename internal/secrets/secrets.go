// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: wikimedia-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// WikimediaToken is the key of the Wikimedia API bearer token.
const WikimediaToken = "wikimedia-api-token"

// Secrets maps key names to values.
type Secrets map[string]string

// Value returns fallback when it is non-empty, otherwise the stored value for key.
// Explicit configuration always wins over files.
func (s Secrets) Value(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("Could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
