package cmd

import (
	"fmt"
	"os"

	"table-pack-maker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-pack-maker",
	Short: "Build BMS table packs from your beatoraja library",
	Long: `Table Pack Maker copies every chart folder a BMS difficulty table needs out of
your beatoraja library into a single pack directory.

Instructions:
1. Find the path to your beatoraja songdb (songdata.db) and the url of a table.
2. Run "find" to see which charts you have.
3. Run "make" to build the pack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// The debug level selects zap's development config, which prints
		// ISO8601 timestamps instead of epoch seconds.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
