package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the draft and start over",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	w.ClearDraft(cmd.Context())
	if err := w.LastError(); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	fmt.Printf("Draft %s cleared\n", w.Key())
	return nil
}
