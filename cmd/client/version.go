package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/models"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
