package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View the resolved configuration or write it to the config file.

Flags such as --dataset, --url and --db override the file for one run;
"settings init" persists them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Long: `Saves the resolved settings, including any dataset flags given on the
command line, so later runs pick them up without flags.`,
	RunE: runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if svc == nil {
		return fmt.Errorf("settings service not configured: %w", domain.ErrInvalidInput)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if svc.ConfigPath != "" {
		cmd.Printf("Config file: %s\n", svc.ConfigPath)
	}
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Source: %s\n", settings.Dataset.Source)
	switch settings.Dataset.Source {
	case domain.DatasetSourceFile:
		cmd.Printf("  Path: %s\n", settings.Dataset.Path)
	case domain.DatasetSourceHTTP:
		cmd.Printf("  URL: %s\n", settings.Dataset.URL)
	case domain.DatasetSourceSQLite:
		cmd.Printf("  Database: %s\n", settings.Dataset.DB)
	case domain.DatasetSourceEmbedded:
	}
	cmd.Printf("  Watch: %s\n", yesNo(settings.Dataset.Watch))
	if settings.Dataset.Refresh > 0 {
		cmd.Printf("  Refresh: every %s\n", settings.Dataset.Refresh)
	} else {
		cmd.Printf("  Refresh: off\n")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Nearest count: %d\n", settings.Search.NearestCount)
	cmd.Println()

	cmd.Println("[Log]")
	logFile := settings.Log.File
	if logFile == "" {
		logFile = "(stderr)"
	}
	cmd.Printf("  File: %s\n", logFile)
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Log.Verbose))
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Settings == nil {
		return fmt.Errorf("settings service not configured: %w", domain.ErrInvalidInput)
	}
	if err := svc.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Saved settings to %s\n", svc.ConfigPath)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
