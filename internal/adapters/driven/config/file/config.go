// Package file loads the retrieval engine configuration from a TOML
// file, with environment variable overrides for deployment settings.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultTopK is the number of ranked chunks returned when the config
// and the caller are both silent.
const DefaultTopK = 6

// Config holds all retrieval engine configuration.
type Config struct {
	// DataDir is where the SQLite store lives.
	// Defaults to ~/.gsos/data.
	DataDir string `toml:"data_dir"`

	// LocalChunkDir is the local fallback corpus directory of JSON
	// chunk files. Defaults to ./data.
	LocalChunkDir string `toml:"local_chunk_dir"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Query configures retrieval behaviour.
	Query QueryConfig `toml:"query"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai", "ollama" or "local" (default: local).
	Provider string `toml:"provider"`

	// Model is the embedding model name (provider defaults apply).
	Model string `toml:"model"`

	// APIKey authenticates cloud providers. Usually supplied through
	// the environment rather than the file.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	// RequestsPerMinute throttles cloud calls when positive.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// QueryConfig configures retrieval behaviour.
type QueryConfig struct {
	// TopK is the default number of ranked chunks returned.
	TopK int `toml:"top_k"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LocalChunkDir: "data",
		Embedding: EmbeddingConfig{
			Provider: "local",
		},
		Query: QueryConfig{
			TopK: DefaultTopK,
		},
	}
}

// DefaultPath returns the default config file location, ~/.gsos/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".gsos", "config.toml"), nil
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Query.TopK <= 0 {
		cfg.Query.TopK = DefaultTopK
	}
	return cfg, nil
}

// applyEnv layers environment variables over the file values. The
// project-specific key wins over the global one so a shared shell does
// not leak an unrelated OpenAI account into this deployment.
func (c *Config) applyEnv() {
	// GSOS_DATA_DIR points at the local JSON chunk corpus, matching
	// how deployments already publish that directory.
	if v := os.Getenv("GSOS_DATA_DIR"); v != "" {
		c.LocalChunkDir = v
	}
	if v := os.Getenv("GSOS_OPENAI_API_KEY"); v != "" {
		c.Embedding.APIKey = v
		c.Embedding.Provider = "openai"
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Embedding.APIKey = v
		if c.Embedding.Provider == "" || c.Embedding.Provider == "local" {
			c.Embedding.Provider = "openai"
		}
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv("GSOS_EMBED_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Embedding.RequestsPerMinute = n
		}
	}
}
