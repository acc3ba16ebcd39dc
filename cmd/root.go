package cmd

import (
	"fmt"
	"os"

	"isoserve/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands.
// Running it bare starts the server.
var RootCmd = &cobra.Command{
	Use:   "isoserve",
	Short: "Cross-origin isolated static server",
	Long: `isoserve serves a prebuilt WebAssembly bundle over HTTP with the
Cross-Origin-Opener-Policy and Cross-Origin-Embedder-Policy headers that
browsers require before enabling SharedArrayBuffer.`,
	Args:          cobra.NoArgs,
	RunE:          runStart,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level for readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
			Output: "stderr",
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
