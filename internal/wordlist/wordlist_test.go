package wordlist

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRankedSkipsMalformedLines(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	input := "the 100\nof 90\n\n   \n123 80\nand 70\nthe 60\nwell-known 50\nto\n"
	words, err := ParseRanked(strings.NewReader(input), logger)
	if err != nil {
		t.Fatalf("ParseRanked failed: %v", err)
	}

	expected := []string{"the", "of", "and", "well-known", "to"}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %d: %v", len(expected), len(words), words)
	}
	for i, word := range expected {
		if words[i] != word {
			t.Fatalf("expected %q at rank %d, got %q", word, i, words[i])
		}
	}
	if got := strings.Count(logs.String(), "skipping malformed corpus line"); got != 2 {
		t.Fatalf("expected 2 warnings, got %d:\n%s", got, logs.String())
	}
}

func TestParseRankedEmpty(t *testing.T) {
	if _, err := ParseRanked(strings.NewReader("1 2\n\n"), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))); err == nil {
		t.Fatalf("expected error for corpus without words")
	}
}

func TestCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("the 3\nof 2\nand 1\n"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	corpus := CorpusFile{Path: path}

	id1, err := corpus.ID()
	if err != nil {
		t.Fatalf("ID failed: %v", err)
	}
	id2, err := corpus.ID()
	if err != nil {
		t.Fatalf("ID failed: %v", err)
	}
	if id1 == "" || id1 != id2 {
		t.Fatalf("expected stable non-empty id, got %q and %q", id1, id2)
	}

	words, err := corpus.RankedWords()
	if err != nil {
		t.Fatalf("RankedWords failed: %v", err)
	}
	if strings.Join(words, ",") != "the,of,and" {
		t.Fatalf("unexpected words: %v", words)
	}

	if err := os.WriteFile(path, []byte("of 3\nthe 2\n"), 0o644); err != nil {
		t.Fatalf("rewrite corpus: %v", err)
	}
	if cached, err := corpus.ID(); err != nil || cached != id1 {
		t.Fatalf("expected the hash to be computed once, got %q (%v)", cached, err)
	}
	fresh := CorpusFile{Path: path}
	id3, err := fresh.ID()
	if err != nil {
		t.Fatalf("ID failed: %v", err)
	}
	if id3 == id1 {
		t.Fatalf("expected id to change with content")
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common.txt")
	if err := os.WriteFile(path, []byte("the\n\n  of \n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 2 || words[1] != "of" {
		t.Fatalf("unexpected words: %v", words)
	}
}
