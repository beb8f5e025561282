package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/adapters/driven/storage/localdir"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

var (
	chunksListLimit  int
	chunksListJSON   bool
	chunksImportMode string
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Inspect and manage the chunk store",
}

var chunksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored chunks",
	RunE:  runChunksList,
}

var chunksCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored chunks",
	RunE:  runChunksCount,
}

var chunksImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import pre-chunked JSON files into the store",
	Long: `Reads JSON chunk files (a bare array of chunk objects, or an object
with a "chunks" array) from the directory and writes them to the store.

Modes:
  append   - upsert by chunk id, keeping existing chunks (default)
  replace  - replace the entire store with the imported chunks`,
	Args: cobra.ExactArgs(1),
	RunE: runChunksImport,
}

func init() {
	chunksListCmd.Flags().IntVarP(&chunksListLimit, "limit", "n", 20, "maximum number of chunks to list")
	chunksListCmd.Flags().BoolVar(&chunksListJSON, "json", false, "output chunks as JSON")
	chunksImportCmd.Flags().StringVar(&chunksImportMode, "mode", "append", "import mode: append or replace")

	chunksCmd.AddCommand(chunksListCmd)
	chunksCmd.AddCommand(chunksCountCmd)
	chunksCmd.AddCommand(chunksImportCmd)
	rootCmd.AddCommand(chunksCmd)
}

func runChunksList(cmd *cobra.Command, _ []string) error {
	if chunkStore == nil {
		return errors.New("chunk store not configured")
	}

	chunks, err := chunkStore.List(context.Background(), driven.ListOptions{Limit: chunksListLimit})
	if err != nil {
		return fmt.Errorf("listing chunks: %w", err)
	}

	if chunksListJSON {
		data, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chunks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(chunks) == 0 {
		cmd.Println("Store is empty.")
		return nil
	}
	for i := range chunks {
		title := chunks[i].Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  %s  %s\n", chunks[i].ID, title)
		cmd.Printf("      %s\n", snippet(chunks[i].Text, 120))
	}
	return nil
}

func runChunksCount(cmd *cobra.Command, _ []string) error {
	if chunkStore == nil {
		return errors.New("chunk store not configured")
	}

	n, err := chunkStore.Count(context.Background())
	if err != nil {
		return fmt.Errorf("counting chunks: %w", err)
	}
	cmd.Printf("%d\n", n)
	return nil
}

func runChunksImport(cmd *cobra.Command, args []string) error {
	if chunkStore == nil {
		return errors.New("chunk store not configured")
	}
	if chunksImportMode != "append" && chunksImportMode != "replace" {
		return fmt.Errorf("unknown import mode %q (want append or replace)", chunksImportMode)
	}

	source := localdir.NewStore(args[0])
	chunks, err := source.Load(context.Background())
	if err != nil {
		return fmt.Errorf("reading chunk files: %w", err)
	}
	if len(chunks) == 0 {
		cmd.Println("No chunks found to import.")
		return nil
	}

	ctx := context.Background()
	if chunksImportMode == "replace" {
		if err := chunkStore.ReplaceAll(ctx, chunks); err != nil {
			return fmt.Errorf("replacing store contents: %w", err)
		}
	} else {
		for i := range chunks {
			if err := chunkStore.UpsertByID(ctx, chunks[i]); err != nil {
				return fmt.Errorf("importing chunk %s: %w", chunks[i].ID, err)
			}
		}
	}

	total, err := chunkStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting chunks: %w", err)
	}
	cmd.Printf("Imported %d chunks (%s mode). Store now holds %d.\n", len(chunks), chunksImportMode, total)
	return nil
}
