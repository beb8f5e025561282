package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Retrieve the chunks most relevant to a query",
	Long: `Embeds the query and ranks stored chunks by cosine similarity.
When the chunk store is empty or unavailable, ranking falls back to the
local JSON corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to return (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if rankService == nil {
		return errors.New("rank service not configured")
	}

	k := queryTopK
	if k <= 0 && cfg != nil {
		k = cfg.Query.TopK
	}

	ranked, origin, err := rankService.Rank(context.Background(), args[0], k)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, ranked, origin)
	}
	return outputQueryText(cmd, ranked, origin)
}

func outputQueryJSON(cmd *cobra.Command, ranked []domain.RankedChunk, origin domain.Origin) error {
	payload := struct {
		Origin  domain.Origin        `json:"origin"`
		Results []domain.RankedChunk `json:"results"`
	}{Origin: origin, Results: ranked}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, ranked []domain.RankedChunk, origin domain.Origin) error {
	if len(ranked) == 0 {
		cmd.Printf("No results found (source: %s).\n", origin)
		return nil
	}

	cmd.Printf("Results (source: %s):\n\n", origin)
	for i := range ranked {
		title := ranked[i].Chunk.Title
		if title == "" {
			title = ranked[i].Chunk.ID
		}
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, ranked[i].Score)
		if ranked[i].Chunk.Source != "" {
			cmd.Printf("      Source: %s\n", ranked[i].Chunk.Source)
		}
		cmd.Printf("      %s\n", snippet(ranked[i].Chunk.Text, 160))
		cmd.Println()
	}
	return nil
}

// snippet truncates text to at most n runes on a rune boundary.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
