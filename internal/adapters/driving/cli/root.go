// Package cli implements the gsos command line interface using cobra.
// Commands are thin: they parse flags, call the core services and
// format the output. Service wiring happens once in the persistent
// pre-run so every subcommand sees the same composition.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/config/file"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/embedding"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/storage/localdir"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driving"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/services"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/extractors"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/extractors/docx"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/extractors/plaintext"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services wired by initServices. Commands nil-check these so unit
// tests can execute commands without a full composition.
var (
	cfg *file.Config

	store         *sqlite.Store
	chunkStore    driven.ChunkStore
	settingsStore driven.SettingsStore
	embedder      driven.EmbeddingService
	ingestService driving.Ingestor
	rankService   driving.Ranker
)

var rootCmd = &cobra.Command{
	Use:   "gsos",
	Short: "Document ingestion and semantic retrieval for trade operations",
	Long: `gsos ingests operational documents (plain text, markdown, CSV, JSON
and DOCX), splits them into sentence-packed chunks, embeds them and
stores them in a local content-addressed chunk store. Queries are
answered by cosine similarity over the stored embeddings, falling back
to a local JSON corpus when the store is empty or unavailable.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// Commands that only print static information skip wiring.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.gsos/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices composes the adapters and core services from config.
// Safe to call more than once; the second call is a no-op.
func initServices() error {
	if ingestService != nil {
		return nil
	}

	// Deployments keep API keys in a .env next to the binary. Missing
	// files are fine.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	path := configPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
	}

	var err error
	cfg, err = file.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening chunk store: %w", err)
	}
	chunkStore = store.ChunkStore()
	settingsStore = store.SettingsStore()

	embedder, err = embedding.New(embedding.Config{
		Provider:          cfg.Embedding.Provider,
		Model:             cfg.Embedding.Model,
		APIKey:            cfg.Embedding.APIKey,
		BaseURL:           cfg.Embedding.BaseURL,
		RequestsPerMinute: cfg.Embedding.RequestsPerMinute,
	})
	if err != nil {
		return fmt.Errorf("configuring embedding provider: %w", err)
	}

	registry := extractors.NewRegistry(plaintext.New(), docx.New())
	localSource := localdir.NewStore(resolveLocalChunkDir(cfg.LocalChunkDir))

	ingestService = services.NewIngestor(registry, embedder, chunkStore)
	resolver := services.NewResolver(chunkStore, settingsStore, localSource)
	rankService = services.NewRankService(resolver, embedder)

	return nil
}

func closeServices() {
	if embedder != nil {
		if err := embedder.Close(); err != nil {
			logger.Debug("closing embedder: %v", err)
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Debug("closing store: %v", err)
		}
	}
	store = nil
	embedder = nil
	ingestService = nil
	rankService = nil
	chunkStore = nil
	settingsStore = nil
}

func resolveLocalChunkDir(dir string) string {
	if dir == "" {
		dir = "data"
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
