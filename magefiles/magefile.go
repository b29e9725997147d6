//go:build mage

// Package main contains Mage build targets for venue-harvester developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "venue-harvester"
	cmdPkg  = "./cmd/venue-harvester"
)

// projectDirs lists the working directories a harvest expects.
var projectDirs = []string{
	".secrets",
	"output",
}

const sampleConfig = `# venue-harvester configuration
min_year: 2005
max_year: 2025
min_papers_per_author: 1
min_papers_per_institution: 3
max_institutions: 1000
delay: 200ms
workers: 1
cache_path: openalex_cache.json
output_json: output/data.json
output_js: output/data.js
`

// Init creates the working directories and a sample config file.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	const cfg = "venue-harvester.yaml"
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		if err := os.WriteFile(cfg, []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg, err)
		}
		fmt.Println("  ", cfg)
	}
	fmt.Println("Project initialized. Put your contact email in .secrets/openalex-email.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Harvest builds the CLI and runs a harvest with the local config.
func Harvest() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "harvest")
}

// Stats prints project metrics: Go production and test lines.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines counts non-blank lines in production and test Go files,
// skipping hidden and underscore-prefixed directories.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
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
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
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
