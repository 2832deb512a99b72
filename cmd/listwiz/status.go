package main

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/wizard"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current draft as JSON",
	Long: `Print the restored draft as JSON: current and visited steps, form values,
draft persistence state and the validation errors of every step.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

type stepStatus struct {
	Step     listing.Step         `json:"step"`
	Name     string               `json:"name"`
	Valid    bool                 `json:"valid"`
	Complete bool                 `json:"complete"`
	Errors   []listing.FieldError `json:"errors"`
}

type wizardStatus struct {
	Key          string           `json:"key"`
	Restored     bool             `json:"restored"`
	CurrentStep  listing.Step     `json:"currentStep"`
	VisitedSteps []listing.Step   `json:"visitedSteps"`
	Form         listing.FormData `json:"form"`
	Draft        draft.Status     `json:"draft"`
	Steps        []stepStatus     `json:"steps"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return printJSON(buildStatus(w))
}

func buildStatus(w *wizard.Wizard) wizardStatus {
	out := wizardStatus{
		Key:          w.Key(),
		Restored:     w.Restored(),
		CurrentStep:  w.CurrentStep(),
		VisitedSteps: w.VisitedSteps(),
		Form:         w.Form(),
		Draft:        w.Status(),
	}
	for _, step := range listing.Steps() {
		errs := w.ErrorsForStep(step)
		if errs == nil {
			errs = []listing.FieldError{}
		}
		out.Steps = append(out.Steps, stepStatus{
			Step:     step,
			Name:     step.String(),
			Valid:    len(errs) == 0,
			Complete: w.IsStepComplete(step),
			Errors:   errs,
		})
	}
	return out
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
