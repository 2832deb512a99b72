package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/listwiz/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create listwiz configuration file",
	Long: `Create a listwiz configuration file with sensible defaults.

By default, creates a global config at ~/.config/listwiz/listwiz.yml.
Use --project to create a project-local config in the current directory.
The persistent flags (--backend, --profile, --data-dir, --draft-key) are
written into the file when given.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := defaultConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'listwiz tui' to get started.")
	return nil
}

func defaultConfig() *config.Config {
	return &config.Config{
		DataDir:       ".listwiz",
		LogLevel:      "info",
		Backend:       config.BackendFile,
		Profile:       "default",
		DebounceMs:    500,
		RedisAddr:     "localhost:6379",
		RedisTTLHours: 24,
		NATSBucket:    "listwiz_drafts",
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
