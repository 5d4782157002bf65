package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server/middleware"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

type Server struct {
	Config      *config.Config
	Router      *mux.Router
	DB          *gorm.DB
	Sessions    *middleware.SessionAuthenticator
	Ledger      store.LedgerStore
	Deposits    store.DepositStore
	Withdrawals store.WithdrawalStore
	Packets     store.PacketStore
	Health      store.HealthStore
	srv         *http.Server
}

func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	ledger store.LedgerStore,
	deposits store.DepositStore,
	withdrawals store.WithdrawalStore,
	packets store.PacketStore,
	health store.HealthStore,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:      cfg,
		Router:      router,
		DB:          db,
		Sessions:    middleware.NewSessionAuthenticator(cfg.JWTSecret, cfg.TokenTTL()),
		Ledger:      ledger,
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Packets:     packets,
		Health:      health,
		srv:         srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Run serves until the context is cancelled, then drains in-flight
// requests. A listen failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
