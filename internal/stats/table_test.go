package stats

import (
	"bytes"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	headers := []string{"Band", "Words", "Share"}
	rows := [][]string{
		{"block [0-2]", "3", "50.0%"},
		{"out_of_range", "12", "8.0%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := newTable(headers, rows, rightAlign).lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Band         Words Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "block [0-2]      3 50.0%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "out_of_range    12  8.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableWideRunes(t *testing.T) {
	lines := newTable([]string{"Book", "V2"}, [][]string{{"本.txt", "1"}, {"ab.txt", "22"}}, map[int]bool{1: true}).lines()
	// 本 occupies two terminal cells, so both book names are six cells wide.
	if lines[1] != "本.txt  1" || lines[2] != "ab.txt 22" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWriteTableTrimsTrailingSpace(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTable(&buf, []string{"Band", ""}, [][]string{{"a", "###"}, {"bb", ""}}, nil); err != nil {
		t.Fatalf("writeTable failed: %v", err)
	}
	want := "Band\na    ###\nbb\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestTableShortRowsAndEmpty(t *testing.T) {
	lines := newTable(nil, [][]string{{"a", "1"}, {"bbb"}}, map[int]bool{1: true}).lines()
	if len(lines) != 2 || lines[0] != "a   1" || lines[1] != "bbb  " {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if got := newTable(nil, nil, nil).lines(); got != nil {
		t.Fatalf("expected no lines for an empty table, got %q", got)
	}
}
