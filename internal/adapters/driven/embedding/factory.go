// Package embedding provides a factory for embedding service adapters.
package embedding

import (
	"fmt"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/embedding/local"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/embedding/ollama"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/embedding/openai"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderLocal  = "local"
)

// Config selects and configures an embedding provider.
type Config struct {
	// Provider is one of "openai", "ollama" or "local".
	Provider string

	// Model is the embedding model name (provider defaults apply).
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// RequestsPerMinute throttles cloud calls when positive.
	RequestsPerMinute int
}

// New creates the embedding service for the configured provider.
// An empty provider falls back to the local embedder so the pipeline
// works out of the box.
func New(cfg Config) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
	case ProviderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case ProviderLocal, "":
		return local.NewEmbeddingService(), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
}
