package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootFlags struct {
	backend  string
	profile  string
	dataDir  string
	draftKey string
}

var rootCmd = &cobra.Command{
	Use:   "listwiz",
	Short: "Step-by-step listing wizard with draft autosave",
	Long: `listwiz collects the metadata and files for a teaching material listing
in four steps: basics, classification, commercial terms, files & legal.

Every change is saved as a draft after a short pause, so work survives
closing the terminal. Drafts live in a file, SQLite, Redis or an embedded
NATS JetStream bucket, selected with --backend or the backend config key.

Use 'listwiz tui' for the interactive wizard, the one-shot commands for
scripting, or 'listwiz mcp' to let an agent fill in the listing.`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.backend, "backend", "", "Draft backend: file, sqlite, redis, nats or memory (default: from config)")
	pf.StringVar(&rootFlags.profile, "profile", "", "Profile name the draft key is derived from")
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory (default: from LISTWIZ_DATA_DIR or .listwiz)")
	pf.StringVar(&rootFlags.draftKey, "draft-key", "", "Explicit draft key, overrides --profile")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}
