package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/internal/client"
)

var watchCmd = &cobra.Command{
	Use:   "watch <note-id> <file>",
	Short: "Save a local file into a note every time it changes",
	Long: `Keep the note in sync with a file edited in any editor. Changes are
debounced and pushed until the command is interrupted. Failed pushes are
kept as drafts.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, cmd.OutOrStdout(), func(ctx context.Context, app *client.App) error {
			return app.Watch(ctx, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
