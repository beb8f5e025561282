package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/embedding/local"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

func TestNew_DefaultsToLocal(t *testing.T) {
	service, err := New(Config{})

	require.NoError(t, err)
	assert.Equal(t, local.ModelName, service.ModelName())
}

func TestNew_OpenAI(t *testing.T) {
	service, err := New(Config{Provider: ProviderOpenAI, APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", service.ModelName())
}

func TestNew_OpenAIRequiresAPIKey(t *testing.T) {
	_, err := New(Config{Provider: ProviderOpenAI})

	assert.Error(t, err)
}

func TestNew_Ollama(t *testing.T) {
	service, err := New(Config{Provider: ProviderOllama, Model: "nomic-embed-text"})

	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", service.ModelName())
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "quantum"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
