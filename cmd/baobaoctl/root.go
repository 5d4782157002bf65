package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "baobaoctl",
	Short: "Red packet bot control",
	Long:  `Run and manage the red packet Telegram bot, its deposit monitor and the admin server.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// newLogger builds the process logger. BAOBAO_LOG_LEVEL=debug enables
// debug output.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("BAOBAO_LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}
	return log
}
