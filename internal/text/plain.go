package text

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PlainFormat reads plain text files. Files that are not valid UTF-8 are
// decoded as Windows-1251.
type PlainFormat struct{}

func init() {
	Register(&PlainFormat{})
}

func (f *PlainFormat) Name() string         { return "Plain text" }
func (f *PlainFormat) Extensions() []string { return []string{".txt"} }

func (f *PlainFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return decodePlain(data)
}

func decodePlain(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(decoded), nil
}

// MarkdownFormat reads Markdown files as plain text.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown: %w", err)
	}
	return decodePlain(data)
}
