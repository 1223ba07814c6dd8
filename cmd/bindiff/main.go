package main

import (
	"log"
	"os"

	"github.com/diffnav/bindiff/internal/storage"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bindiff",
	Short: "Inspect BinDiff result files",
	Long: `bindiff inspects the SQLite result files produced by binary diffing:
which functions, basic blocks and instructions in one binary correspond
to which in the other, with per-match similarity and confidence scores.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("bindiff %s\n", version)
		cmd.Printf("Build Time: %s\n", buildTime)
		cmd.Printf("Build Mode: %s, SQLite Driver: %s\n", storage.BuildMode, storage.DriverName)
	},
}

func main() {
	log.SetOutput(os.Stderr)
	rootCmd.AddCommand(versionCmd, infoCmd, functionsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
