package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/bot"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/db"
	gormstore "github.com/avagarcia28867-droid/baobaolebot/pkg/store/gorm"
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot on its own.

Requires the DATABASE_URL and BOT_TOKEN environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if cfg.BotToken == "" {
			fmt.Fprintln(os.Stderr, "BOT_TOKEN environment variable is required")
			os.Exit(1)
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		b, err := bot.New(
			log,
			cfg,
			gormstore.NewLedgerStore(gormDB),
			gormstore.NewDepositStore(gormDB),
			gormstore.NewWithdrawalStore(gormDB),
			gormstore.NewPacketStore(gormDB),
		)
		if err != nil {
			log.Fatal("failed to build bot", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := b.Run(ctx); err != nil {
			log.Fatal("bot failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
