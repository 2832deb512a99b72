package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/listwiz/internal/hooks"
)

// runPostSubmitHooks runs the hooks from .listwiz.hooks.yml in the working
// directory. Hook failures are reported but never fail the submission.
func runPostSubmitHooks(ctx context.Context, vars hooks.Variables) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return err
	}

	results, err := hooks.RunPostSubmit(ctx, cfg, workDir, vars)
	for _, res := range results {
		if res.Failed() {
			fmt.Fprintf(os.Stderr, "Hook %q failed: %v\n", res.Command, res.Err)
		}
		if res.Output != "" {
			fmt.Print(res.Output)
		}
	}
	return err
}
