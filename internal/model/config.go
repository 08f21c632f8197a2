package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration, assembled by the CLI from
// defaults, the config file, environment variables and flags.
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis" json:"analysis"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// AnalysisConfig selects the reasoning parameters. Tokens are validated by
// the CLI before any computation starts.
type AnalysisConfig struct {
	// Semantics: grounded, complete, preferred or stable (GR/CO/PR/ST).
	Semantics string `yaml:"semantics" json:"semantics"`

	// Measure: S (supported), D (disputed) or U (untouched).
	Measure string `yaml:"measure" json:"measure"`

	// Aggregation: sum, min, leximax or leximin.
	Aggregation string `yaml:"aggregation" json:"aggregation"`
}

// CacheConfig controls the selection-report cache. Extension enumeration is
// the only expensive step, so cached reports are keyed by input bytes plus
// analysis tokens.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool and throttles outbound
// LLM requests.
type ConcurrencyConfig struct {
	BatchWorkers int     `yaml:"batch_workers" json:"batch_workers"`
	LLMPerSecond float64 `yaml:"llm_per_second" json:"llm_per_second"`
	LLMBurst     int     `yaml:"llm_burst" json:"llm_burst"`
}

// OutputConfig controls rendering and result files.
type OutputConfig struct {
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	ResultsDir string `yaml:"results_dir" json:"results_dir"`
}

// LLMConfig configures the optional narration provider. Narration never
// affects scores or rankings.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "", openai, ollama
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := "cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".cosar", "cache")
	}

	return &Config{
		Analysis: AnalysisConfig{
			Semantics:   "grounded",
			Measure:     "U",
			Aggregation: "sum",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
			LLMPerSecond: 1,
			LLMBurst:     2,
		},
		Output: OutputConfig{
			Verbose:    false,
			ResultsDir: "results",
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 800,
		},
	}
}
