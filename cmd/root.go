package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "issue-service",
	Short: "Issue & grievance API: create, list, update issues (PSDS)",
	RunE:  runAPI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(warmCacheCmd)
}
