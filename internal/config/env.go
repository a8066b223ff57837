package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "BOOKSCORE_"

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. With no
// arguments ".env" in the working directory is used. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays BOOKSCORE_* variables onto cfg. A nil lookup reads the
// process environment.
func ApplyEnv(cfg *FileConfig, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("CORPUS"); ok {
		cfg.Corpus.Path = &v
	}
	if v, ok := get("CACHE"); ok {
		cfg.Corpus.Cache = &v
	}
	if v, ok := get("CACHE_DIR"); ok {
		cfg.Corpus.CacheDir = &v
	}
	if v, ok := get("DB"); ok {
		cfg.Corpus.DB = &v
	}
	if v, ok := get("BOUNDARIES"); ok {
		boundaries, err := parseIntList(v)
		if err != nil {
			return fmt.Errorf("invalid %sBOUNDARIES: %w", EnvPrefix, err)
		}
		cfg.Corpus.Boundaries = boundaries
	}
	if v, ok := get("FORMAT"); ok {
		cfg.Score.Format = &v
	}
	if v, ok := get("COMMON_FILE"); ok {
		cfg.V1.CommonFile = &v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = &v
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"NORMALIZATION", &cfg.Score.Normalization},
		{"WEIGHT_OFFSET", &cfg.Score.WeightOffset},
		{"WEIGHT_POWER", &cfg.Score.WeightPower},
		{"COMMON_WORDS", &cfg.V1.CommonWords},
	}
	for _, item := range ints {
		v, ok := get(item.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, item.name, err)
		}
		*item.dst = &n
	}

	if v, ok := get("SAVE"); ok {
		save, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSAVE: %w", EnvPrefix, err)
		}
		cfg.Score.Save = &save
	}
	return nil
}

func parseIntList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.ReplaceAll(f, "_", ""))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
