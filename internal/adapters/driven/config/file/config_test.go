package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Embedding.Provider)
	assert.Equal(t, "data", cfg.LocalChunkDir)
	assert.Equal(t, DefaultTopK, cfg.Query.TopK)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/var/lib/gsos"
local_chunk_dir = "/srv/chunks"

[embedding]
provider = "ollama"
model = "nomic-embed-text"

[query]
top_k = 12
`), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/gsos", cfg.DataDir)
	assert.Equal(t, "/srv/chunks", cfg.LocalChunkDir)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 12, cfg.Query.TopK)
}

func TestLoad_RejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GSOS_DATA_DIR", "/env/chunks")
	t.Setenv("GSOS_OPENAI_API_KEY", "project-key")
	t.Setenv("EMBEDDING_MODEL", "text-embedding-3-large")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "/env/chunks", cfg.LocalChunkDir)
	assert.Equal(t, "project-key", cfg.Embedding.APIKey)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
}

func TestLoad_ProjectKeyWinsOverGlobal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "global-key")
	t.Setenv("GSOS_OPENAI_API_KEY", "project-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "project-key", cfg.Embedding.APIKey)
}

func TestLoad_GlobalKeyDoesNotOverrideExplicitProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "global-key")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[embedding]\nprovider = \"ollama\"\n"), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "global-key", cfg.Embedding.APIKey)
}

func TestLoad_NonPositiveTopKFixedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[query]\ntop_k = -3\n"), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, cfg.Query.TopK)
}
