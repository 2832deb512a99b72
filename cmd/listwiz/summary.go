package main

import (
	"fmt"

	"github.com/mark3labs/listwiz/internal/summary"
	"github.com/spf13/cobra"
)

var summaryFlags struct {
	raw   bool
	width int
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render the draft as a readable overview",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryFlags.raw, "raw", false, "Print the markdown source instead of rendering it")
	summaryCmd.Flags().IntVarP(&summaryFlags.width, "width", "w", 80, "Wrap width for rendered output")
}

func runSummary(cmd *cobra.Command, args []string) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	md := summary.Markdown(w)
	if summaryFlags.raw {
		fmt.Print(md)
		return nil
	}
	fmt.Print(summary.Render(md, summaryFlags.width))
	return nil
}
