package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage retrieval settings",
	RunE:  runSettingsGet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [name] [value]",
	Short: "Change a setting",
	Long: `Change a persisted setting.

Available settings:
  force-local-chunks   true|false - always answer queries from the
                       local JSON corpus, ignoring the chunk store`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Read(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	cmd.Printf("  force-local-chunks: %t\n", settings.ForceLocalChunks)
	if !settings.UpdatedAt.IsZero() {
		cmd.Printf("  updated:            %s\n", settings.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	name, value := args[0], args[1]
	if name != "force-local-chunks" {
		return fmt.Errorf("unknown setting %q", name)
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s (want true or false)", value, name)
	}

	ctx := context.Background()
	settings, err := settingsStore.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	settings.ForceLocalChunks = enabled
	if err := settingsStore.Write(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %t\n", name, enabled)
	return nil
}
