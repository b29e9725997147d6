// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files. The
// filename is the key and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// OpenAlexEmail is the file holding the catalog identity token.
const OpenAlexEmail = "openalex-email"

// Store is a loaded secrets directory.
type Store map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty Store. Unreadable files are reported to w
// and skipped.
func Load(dir string, w io.Writer) (Store, error) {
	if w == nil {
		w = io.Discard
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Mailto returns the first non-empty value among explicit and the stored
// openalex-email secret.
func (s Store) Mailto(explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	return s[OpenAlexEmail]
}
