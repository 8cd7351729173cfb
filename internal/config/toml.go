package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields are nil
// when the key is absent, so flags only get overridden by values that were
// actually written.
type FileConfig struct {
	Analysis    AnalysisConfig    `toml:"analysis"`
	Translation TranslationConfig `toml:"translation"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// AnalysisConfig maps pipeline settings.
type AnalysisConfig struct {
	Top            *int     `toml:"top"`
	Variant        *string  `toml:"variant"`
	Positive       *float64 `toml:"positive"`
	Negative       *float64 `toml:"negative"`
	Subjectivity   *float64 `toml:"subjectivity"`
	Scorer         *string  `toml:"scorer"`
	Segmenter      *string  `toml:"segmenter"`
	Stopwords      *string  `toml:"stopwords"`
	ExtraStopwords []string `toml:"extra-stopwords"`
	Lexicon        *string  `toml:"lexicon"`
}

// TranslationConfig maps translator settings.
type TranslationConfig struct {
	Translator  *string `toml:"translator"`
	Target      *string `toml:"target"`
	Timeout     *string `toml:"timeout"`
	Sentences   *bool   `toml:"sentences"`
	OpenAIModel *string `toml:"openai-model"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// LogConfig maps logging settings.
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
