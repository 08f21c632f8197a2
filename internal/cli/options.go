package cli

import (
	"errors"
	"os"

	"github.com/cosar-tools/cosar/internal/model"
	"github.com/spf13/viper"
)

var errMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set")

// buildConfig assembles the runtime configuration: built-in defaults,
// overridden by the config file and COSAR_* environment variables, then
// by the flags each command applies on top.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("analysis.semantics"); v != "" {
		cfg.Analysis.Semantics = v
	}
	if v := viper.GetString("analysis.measure"); v != "" {
		cfg.Analysis.Measure = v
	}
	if v := viper.GetString("analysis.aggregation"); v != "" {
		cfg.Analysis.Aggregation = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v > 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v > 0 {
		cfg.Cache.DiskTTL = v
	}

	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if v := viper.GetFloat64("concurrency.llm_per_second"); v > 0 {
		cfg.Concurrency.LLMPerSecond = v
	}
	if v := viper.GetInt("concurrency.llm_burst"); v > 0 {
		cfg.Concurrency.LLMBurst = v
	}

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}

	if v := viper.GetString("output.results_dir"); v != "" {
		cfg.Output.ResultsDir = v
	}
	cfg.Output.Verbose = verbose || viper.GetBool("output.verbose")

	return cfg
}

// applyLLMFlags enables narration and resolves the API key from the
// environment.
func applyLLMFlags(cfg *model.Config, provider, llmModel string) error {
	cfg.LLM.Provider = provider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return errMissingAPIKey
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
