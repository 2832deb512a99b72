package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/listwiz/internal/config"
	"github.com/mark3labs/listwiz/internal/hooks"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/wizard"
	"github.com/spf13/cobra"
)

var submitFlags struct {
	files    []string
	previews []string
	out      string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate the draft and write the finished listing",
	Long: `Validate every step and, when the listing is complete, write it as JSON
into the output directory and discard the draft.

Attached files are not part of the draft, so pass them again with --file.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringSliceVarP(&submitFlags.files, "file", "f", nil, "Material file to attach (repeatable)")
	submitCmd.Flags().StringSliceVar(&submitFlags.previews, "preview", nil, "Preview image to attach (repeatable)")
	submitCmd.Flags().StringVarP(&submitFlags.out, "out", "o", "", "Output directory (default: <data_dir>/submissions)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	files, err := listing.OpenFiles(submitFlags.files)
	if err != nil {
		return err
	}
	previews, err := listing.OpenFiles(submitFlags.previews)
	if err != nil {
		return err
	}

	w, cfg, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(files) > 0 {
		w.SetAttachedFiles(files)
	}
	if len(previews) > 0 {
		w.SetPreviewFiles(previews)
	}

	sub := wizard.FileSubmitter{Dir: submissionDir(cfg, submitFlags.out)}
	id := w.ID()
	title := w.Form().Title
	if err := w.Submit(cmd.Context(), sub); err != nil {
		var incomplete *wizard.IncompleteError
		if errors.As(err, &incomplete) {
			printIncomplete(incomplete)
		}
		return err
	}

	fmt.Printf("Listing written to: %s\n", sub.Path(id))
	return runPostSubmitHooks(cmd.Context(), hooks.Variables{ID: id, Path: sub.Path(id), Title: title})
}

func submissionDir(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(cfg.DataDir, "submissions")
}

func printIncomplete(e *wizard.IncompleteError) {
	for _, step := range listing.Steps() {
		errs := e.Errors[step]
		if len(errs) == 0 {
			continue
		}
		fmt.Printf("%d. %s\n", step, step)
		for _, fe := range errs {
			fmt.Printf("    - %s\n", fe)
		}
	}
}
