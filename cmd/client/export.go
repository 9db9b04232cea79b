package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/internal/client"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every note into a directory as markdown with frontmatter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, cmd.OutOrStdout(), func(ctx context.Context, app *client.App) error {
			return app.Export(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
