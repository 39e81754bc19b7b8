package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe - diagram annotation for markdown documents",
	Long: `Scribe scans a markdown document for embedded diagram images,
classifies each one against a closed diagram taxonomy using surrounding
text context and a vision model, and writes an annotated document plus a
summary report with per-category counts and hypothesis accuracy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}
