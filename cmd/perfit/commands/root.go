package commands

import (
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "perfit",
	Short:   "PerFit - size recommendations from the command line",
	Version: "1.0.0",
	Long: `PerFit computes garment and shoe size recommendations from body
measurements and retailer size charts, using the same engine the backend
serves to the browser extension.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUI(noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "chart database path (defaults to the configured path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
