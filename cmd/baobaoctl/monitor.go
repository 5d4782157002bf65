package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/db"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/monitor"
	gormstore "github.com/avagarcia28867-droid/baobaolebot/pkg/store/gorm"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/tron"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the deposit monitor",
	Long: `Run the background monitor on its own.

The monitor matches confirmed on-chain transfers to deposit orders,
expires stale orders and refunds unclaimed packets. Without a
configured deposit wallet only the expiry and refund sweeps run.

Requires the DATABASE_URL environment variable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		m := monitor.New(
			log,
			chainSource(cfg),
			gormstore.NewDepositStore(gormDB),
			gormstore.NewPacketStore(gormDB),
			nil,
			cfg,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := m.Run(ctx); err != nil {
			log.Fatal("monitor failed", zap.Error(err))
		}
	},
}

// chainSource returns the TronGrid client, or nil when no deposit
// wallet is configured.
func chainSource(cfg *config.Config) tron.Source {
	if !cfg.WatchEnabled() {
		return nil
	}
	return tron.NewClient(cfg.TronAPIURL, cfg.TronAPIKey, cfg.DepositWallet, cfg.USDTContract)
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
