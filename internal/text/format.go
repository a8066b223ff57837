// Package text extracts plain text from book files and splits it into words
// and sentences.
package text

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files with no registered format.
var ErrUnsupportedFormat = errors.New("unsupported book format")

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Extract extracts text from a book file using the format registered for its
// extension.
func Extract(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Extract(filename)
			}
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, filename, strings.Join(SupportedFormats(), ", "))
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
