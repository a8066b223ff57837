// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Corpus CorpusConfig `toml:"corpus"`
	Score  ScoreConfig  `toml:"score"`
	V1     V1Config     `toml:"v1"`
	Log    LogConfig    `toml:"log"`
}

// CorpusConfig maps frequency corpus and band cache settings.
type CorpusConfig struct {
	Path       *string `toml:"path"`
	Boundaries []int   `toml:"boundaries"`
	Cache      *string `toml:"cache"`
	CacheDir   *string `toml:"cache-dir"`
	DB         *string `toml:"db"`
}

// ScoreConfig maps scoring settings.
type ScoreConfig struct {
	Normalization *int    `toml:"normalization"`
	WeightOffset  *int    `toml:"weight-offset"`
	WeightPower   *int    `toml:"weight-power"`
	Format        *string `toml:"format"`
	Save          *bool   `toml:"save"`
}

// V1Config maps settings of the sentence-statistics score.
type V1Config struct {
	CommonWords *int    `toml:"common-words"`
	CommonFile  *string `toml:"common-file"`
}

// LogConfig maps diagnostic output settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultTemplate is written by `bookscore config` when no file exists yet.
const DefaultTemplate = `# bookscore configuration

[corpus]
# path = "~/.local/share/bookscore/corpus.txt"
# boundaries = [0, 1000, 2000, 5000, 10000, 20000, 50000, 100000, 1000000]
# cache = "sqlite"   # none | memory | file | sqlite

[score]
# normalization = 10000
# weight-offset = 2
# weight-power = 2
# format = "table"   # table | json | yaml
# save = false

[v1]
# common-words = 5000
# common-file = "~/words.txt"

[log]
# level = "info"
`

// WriteTemplate creates the config file with DefaultTemplate if it does not exist.
func WriteTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
