package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/internal/client"
)

var importCmd = &cobra.Command{
	Use:   "import <glob>",
	Short: "Create notes from markdown and html files",
	Long: `Create a note from every .md, .markdown, .html and .htm file matching the
glob. Patterns may use ** to match nested directories. The title is taken from
the frontmatter, the first heading or the file name.`,
	Example: `  go-notes import "journal/**/*.md"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, cmd.OutOrStdout(), func(ctx context.Context, app *client.App) error {
			return app.Import(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
