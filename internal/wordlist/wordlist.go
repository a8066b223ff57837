// Package wordlist loads word lists and ranked frequency corpora from files.
package wordlist

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const maxLineSize = 1 << 20

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadRanked reads a frequency corpus ranked by descending frequency.
func LoadRanked(path string, logger *slog.Logger) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	words, err := ParseRanked(file, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return words, nil
}

// ParseRanked parses corpus lines of the form "word [count ...]".
//
// The first whitespace-delimited token of each line is the word. Lines without
// a token are skipped with a warning. Tokens rejected by IsWord are dropped and
// repeated words keep their first rank.
func ParseRanked(r io.Reader, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var words []string
	seen := make(map[string]struct{})
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			skipped++
			logger.Warn("skipping malformed corpus line", "line", lineNo)
			continue
		}
		word := fields[0]
		if !IsWord(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("corpus contained no words")
	}
	logger.Debug("parsed corpus", "words", len(words), "skipped", skipped)
	return words, nil
}

// CorpusFile is a ranked word source backed by a corpus file on disk.
type CorpusFile struct {
	Path   string
	Logger *slog.Logger

	id string
}

// ID returns a content hash identifying the corpus. The hash is computed once
// per CorpusFile.
func (c *CorpusFile) ID() (string, error) {
	if c.id != "" {
		return c.id, nil
	}
	file, err := os.Open(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash corpus: %w", err)
	}
	c.id = hex.EncodeToString(h.Sum(nil))[:16]
	return c.id, nil
}

// RankedWords loads the filtered ranked word list.
func (c *CorpusFile) RankedWords() ([]string, error) {
	return LoadRanked(c.Path, c.Logger)
}
