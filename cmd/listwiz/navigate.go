package main

import (
	"fmt"
	"strconv"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/wizard"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, (*wizard.Wizard).GoNext)
	},
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Return to the previous step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, (*wizard.Wizard).GoBack)
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <step>",
	Short: "Jump to a step that was already visited",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoto,
}

func runGoto(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid step %q: %w", args[0], err)
	}
	step := listing.Step(n)
	if !step.Valid() {
		return fmt.Errorf("step must be between %d and %d", listing.FirstStep, listing.LastStep)
	}
	return navigate(cmd, func(w *wizard.Wizard) bool { return w.GoToStep(step) })
}

func navigate(cmd *cobra.Command, move func(*wizard.Wizard) bool) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	moved := move(w)
	w.Flush(cmd.Context())

	step := w.CurrentStep()
	if moved {
		fmt.Printf("Step %d: %s\n", step, step)
	} else {
		fmt.Printf("Still at step %d: %s\n", step, step)
	}
	for _, fe := range w.VisibleErrors(step) {
		fmt.Printf("  - %s\n", fe)
	}
	return nil
}
