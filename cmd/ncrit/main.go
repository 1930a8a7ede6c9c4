package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncrit/internal/logger"
	"github.com/katalvlaran/ncrit/internal/logger/console"
)

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs root and returns the process exit code. Failures are logged
// at ERROR; a subcommand replaces the default logger once its config is known.
func execute(root *cobra.Command) int {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Prefix: "ncrit",
		Out:    root.ErrOrStderr(),
	}))
	if err := root.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ncrit",
		Short: "Critical densities of molecular transitions",
		Long: `Compute critical densities from LAMDA-style line and collision tables.

Settings come from NCRIT_* environment variables (and a .env file), then an
optional HCL run file (--config), then command-line flags.

Environment variables:
  NCRIT_DATA_DIR    - data directory holding Lines/ and Collisions/ (default: .)
  NCRIT_ABUNDANCES  - abundance table, relative to the data directory
  NCRIT_DEBUG       - "true" enables debug logging
  NCRIT_WORKERS     - concurrent curves (default: GOMAXPROCS)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.runFile, "config", "c", "", "HCL run file")
	rootCmd.PersistentFlags().StringVarP(&g.dataDir, "data-dir", "d", "", "data directory (overrides env and run file)")
	rootCmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "dotenv file to load (default: .env)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newCurvesCmd(g))
	rootCmd.AddCommand(newLevelsCmd(g))
	rootCmd.AddCommand(newInspectCmd(g))

	return rootCmd
}
