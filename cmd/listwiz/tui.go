package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/listwiz/internal/hooks"
	"github.com/mark3labs/listwiz/internal/tui"
	"github.com/mark3labs/listwiz/internal/wizard"
	"github.com/spf13/cobra"
)

var tuiFlags struct {
	out string
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the listing interactively",
	Long: `Open the interactive listing wizard. Changes are saved as a draft while
you type and restored the next time you start it.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiFlags.out, "out", "o", "", "Directory submitted listings are written to (default: <data_dir>/submissions)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	onStatus, statusCh := tui.StatusForwarder()

	w, cfg, cleanup, err := openWizard(cmd.Context(), onStatus)
	if err != nil {
		return err
	}
	defer cleanup()

	files := wizard.FileSubmitter{Dir: submissionDir(cfg, tuiFlags.out)}
	var last wizard.Submission
	sub := wizard.SubmitterFunc(func(ctx context.Context, s wizard.Submission) error {
		if err := files.Submit(ctx, s); err != nil {
			return err
		}
		last = s
		return nil
	})

	submitted, err := tui.Run(cmd.Context(), w, sub, statusCh)
	if err != nil {
		return err
	}
	if !submitted {
		return nil
	}
	path := files.Path(last.ID)
	fmt.Printf("Listing written to: %s\n", path)
	return runPostSubmitHooks(cmd.Context(), hooks.Variables{ID: last.ID, Path: path, Title: last.Listing.Title})
}
