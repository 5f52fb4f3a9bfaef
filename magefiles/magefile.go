//go:build mage

// Package main contains Mage build targets for lawbook developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a sync expects.
var projectDirs = []string{
	"extracted_rules",
	".secrets",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir      = "bin"
	binName     = "lawbook"
	filterAlias = "lawbook-filter"
	cmdPkg      = "./cmd/lawbook"
)

func binPath() string { return filepath.Join(binDir, binName) }

// Build compiles the CLI binary into bin/ and links bin/lawbook-filter to it
// for use with pandoc --filter.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}

	alias := filepath.Join(binDir, filterAlias)
	os.Remove(alias)
	if err := os.Symlink(binName, alias); err != nil {
		return fmt.Errorf("linking %s: %w", alias, err)
	}
	fmt.Printf("Built %s (filter: %s)\n", out, alias)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports directories that are not part of the project sources.
func skipDir(path string, d fs.DirEntry) bool {
	name := d.Name()
	return path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == binDir || name == projectDirs[0])
}

// countGoLines counts non-blank lines in production and _test.go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countDocWords counts words in the Markdown files of the project.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}

// Sync builds the CLI and mirrors the law book into extracted_rules/.
func Sync() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "sync")
}

// Convert builds the CLI and converts every saved .htm file to docx.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "convert")
}
