package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIHandlerPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo))

	logger.Info("built bands", "bands", 12, "words", 1000)
	logger.Warn("skipping malformed corpus line", "line", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "built bands: bands=12 words=1000" {
		t.Fatalf("unexpected info line: %q", lines[0])
	}
	if lines[1] != "WARN skipping malformed corpus line: line=3" {
		t.Fatalf("unexpected warn line: %q", lines[1])
	}
	if strings.Contains(buf.String(), colorRed) {
		t.Fatalf("expected no colour for non-terminal writer")
	}
}

func TestCLIHandlerLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		logFunc      func(*slog.Logger)
		shouldLog    bool
	}{
		{"info handler logs info", slog.LevelInfo, func(l *slog.Logger) { l.Info("test") }, true},
		{"info handler filters debug", slog.LevelInfo, func(l *slog.Logger) { l.Debug("test") }, false},
		{"debug handler logs debug", slog.LevelDebug, func(l *slog.Logger) { l.Debug("test") }, true},
		{"error handler filters warn", slog.LevelError, func(l *slog.Logger) { l.Warn("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(slog.New(NewCLIHandler(&buf, tt.handlerLevel)))
			if got := buf.Len() > 0; got != tt.shouldLog {
				t.Fatalf("expected output=%v, got %q", tt.shouldLog, buf.String())
			}
		})
	}
}

func TestCLIHandlerGroupAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo)).WithGroup("score").With("book", "a.txt")

	logger.Info("scored", "total", 4)

	if got := strings.TrimSpace(buf.String()); got != "[score] scored: book=a.txt total=4" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLogLevel(input); got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestSetDefaultCLILogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetDefaultCLILogger("warn")
	if slog.Default() != logger {
		t.Fatalf("expected returned logger to be the default")
	}
	if logger.Enabled(t.Context(), slog.LevelInfo) || !logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Fatalf("expected warn level logger")
	}
}
