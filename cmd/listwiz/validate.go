package main

import (
	"fmt"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every step and list what is missing",
	Long: `Check every step of the draft. Prints the errors per step and exits
non-zero when any step is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	invalid := 0
	for _, step := range listing.Steps() {
		errs := w.ErrorsForStep(step)
		if len(errs) == 0 {
			fmt.Printf("✓ %d. %s\n", step, step)
			continue
		}
		invalid++
		fmt.Printf("✗ %d. %s\n", step, step)
		for _, fe := range errs {
			fmt.Printf("    - %s\n", fe)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d step(s) invalid", invalid)
	}
	return nil
}
