package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/db"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server/endpoints"
	gormstore "github.com/avagarcia28867-droid/baobaolebot/pkg/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the admin server",
	Long: `Run the admin HTTP server on its own.

Requires the DATABASE_URL environment variable.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
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

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := newAdminServer(config.Get(), gormDB, host, port)

		log.Printf("Running admin server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

// newAdminServer wires the stores into a server with all endpoints
// registered.
func newAdminServer(cfg *config.Config, gormDB *gorm.DB, host, port string) *server.Server {
	s := server.NewServer(
		cfg,
		gormDB,
		gormstore.NewLedgerStore(gormDB),
		gormstore.NewDepositStore(gormDB),
		gormstore.NewWithdrawalStore(gormDB),
		gormstore.NewPacketStore(gormDB),
		gormstore.NewHealthStore(gormDB),
		host,
		port,
	)
	endpoints.RegisterAll(s)
	return s
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
