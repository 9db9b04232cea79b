package main

import (
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
