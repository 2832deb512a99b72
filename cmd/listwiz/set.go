package main

import (
	"fmt"
	"strings"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <field>=<value>...",
	Short: "Update one or more listing fields",
	Long: `Update listing fields and save the draft.

Each argument is field=value. Lists are comma separated, flags take
true/false. All values are checked before any is applied, so a bad
argument leaves the draft untouched.

Example:
  listwiz set title="Bruchrechnen Werkstatt" cycle=2 competencies=MA.1.A.1,MA.1.A.2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	values, err := parseAssignments(args)
	if err != nil {
		return err
	}

	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := w.UpdateFields(values); err != nil {
		return err
	}
	w.Flush(cmd.Context())
	if err := w.LastError(); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	fmt.Printf("Updated %d field(s)\n", len(values))
	return nil
}

// parseAssignments turns field=value arguments into typed values.
func parseAssignments(args []string) (map[listing.Field]any, error) {
	values := make(map[listing.Field]any, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q: want field=value", arg)
		}
		field := listing.Field(strings.TrimSpace(name))
		v, err := listing.ParseValue(field, raw)
		if err != nil {
			return nil, err
		}
		values[field] = v
	}
	return values, nil
}
