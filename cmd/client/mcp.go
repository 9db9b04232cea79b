package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/internal/client"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the notes to MCP clients over stdio",
	Long: `Start a Model Context Protocol server on stdin and stdout with tools to
list, read, create, update, delete and share notes of the signed-in user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// stdout carries the protocol.
		return withApp(cmd, cmd.ErrOrStderr(), func(ctx context.Context, app *client.App) error {
			return app.ServeMCP(ctx, os.Stdin, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
