package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/bot"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/db"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/monitor"
	gormstore "github.com/avagarcia28867-droid/baobaolebot/pkg/store/gorm"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/supervisor"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot, monitor and admin server under one supervisor",
	Long: `Run all three services in one process.

The admin server is the foreground service: if it stops, the process
exits. The bot and the monitor are restarted with backoff when they
fail. SIGINT and SIGTERM shut everything down in an orderly fashion.

Requires the DATABASE_URL and BOT_TOKEN environment variables.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}
		if cfg.BotToken == "" {
			fmt.Fprintln(os.Stderr, "BOT_TOKEN environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		b, err := bot.New(
			logger.Named("bot"),
			cfg,
			gormstore.NewLedgerStore(gormDB),
			gormstore.NewDepositStore(gormDB),
			gormstore.NewWithdrawalStore(gormDB),
			gormstore.NewPacketStore(gormDB),
		)
		if err != nil {
			logger.Fatal("failed to build bot", zap.Error(err))
		}

		m := monitor.New(
			logger.Named("monitor"),
			chainSource(cfg),
			gormstore.NewDepositStore(gormDB),
			gormstore.NewPacketStore(gormDB),
			b,
			cfg,
		)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		srv := newAdminServer(cfg, gormDB, host, port)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() { _ = config.Watch(ctx, logger.Named("config")) }()

		sup := supervisor.New(logger.Named("supervisor"))
		sup.Add(
			supervisor.Task{Name: "bot", Policy: supervisor.RestartOnFailure, Run: b.Run},
			supervisor.Task{Name: "monitor", Policy: supervisor.RestartOnFailure, Run: m.Run},
			// The admin server holds the container's foreground contract.
			supervisor.Task{Name: "server", Policy: supervisor.RestartNever, Run: srv.Run},
		)

		logger.Info("starting services", zap.String("addr", host+":"+port))
		if err := sup.Run(ctx); err != nil {
			logger.Error("shutdown with failures", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("all services stopped")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("port", "p", defaultPort(), "admin server listen port")
	runCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "admin server bind address")
	runCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
