package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/wizardmcp"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the wizard as MCP tools",
	Long: `Serve the listing wizard as MCP tools so an agent can fill in the draft.

Serves over stdio by default. Use --http to serve streamable HTTP on the
given address instead, e.g. --http 127.0.0.1:8089.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.http, "http", "", "Serve over HTTP on this address instead of stdio")
}

func runMCP(cmd *cobra.Command, args []string) error {
	w, _, cleanup, err := openWizard(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := wizardmcp.New(w)
	if mcpFlags.http == "" {
		return srv.ServeStdio()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := srv.Start(ctx, mcpFlags.http); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Serving wizard MCP tools at %s\n", srv.URL())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("Stopping MCP server: %v", err)
	}
	return nil
}
