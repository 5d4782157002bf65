// Package monitor runs the background sweeps that keep the books
// settled: matching confirmed on-chain transfers to deposit orders,
// expiring stale orders and refunding unclaimed packets.
package monitor

import (
	"context"
	"time"

	"github.com/alitto/pond"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/tron"
)

// Notifier pushes settlement results back to users. The bot implements
// it; a nil notifier disables notifications.
type Notifier interface {
	DepositCredited(tgID int64, amount int64, orderID uint)
}

// Monitor owns the periodic sweep loop.
type Monitor struct {
	log      *zap.Logger
	chain    tron.Source
	deposits store.DepositStore
	packets  store.PacketStore
	notifier Notifier

	interval      time.Duration
	depositExpiry time.Duration
	refundAfter   time.Duration

	pool *pond.WorkerPool
}

// New creates a monitor. chain may be nil when no deposit wallet is
// configured; the order-expiry and packet-refund sweeps still run.
func New(
	log *zap.Logger,
	chain tron.Source,
	deposits store.DepositStore,
	packets store.PacketStore,
	notifier Notifier,
	cfg *config.Config,
) *Monitor {
	return &Monitor{
		log:           log,
		chain:         chain,
		deposits:      deposits,
		packets:       packets,
		notifier:      notifier,
		interval:      cfg.MonitorInterval(),
		depositExpiry: cfg.DepositExpiry(),
		refundAfter:   cfg.PacketRefundAfter(),
		pool:          pond.New(4, 64),
	}
}

// Run sweeps until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("monitor started",
		zap.Duration("interval", m.interval),
		zap.Bool("chain_watch", m.chain != nil),
	)
	defer m.pool.StopAndWait()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.sweep(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return nil
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	m.scanChain(ctx)
	m.expireOrders()
	m.refundPackets()
}

// scanChain matches confirmed inbound transfers against pending orders.
// Transfers settle concurrently; matching is idempotent on the tx hash.
func (m *Monitor) scanChain(ctx context.Context) {
	if m.chain == nil {
		return
	}

	transfers, err := m.chain.FetchTransfers(ctx)
	if err != nil {
		m.log.Error("chain scan failed", zap.Error(err))
		return
	}

	group := m.pool.Group()
	for _, transfer := range transfers {
		transfer := transfer
		group.Submit(func() {
			m.settleTransfer(transfer)
		})
	}
	group.Wait()
}

func (m *Monitor) settleTransfer(transfer tron.Transfer) {
	order, err := m.deposits.MatchTransfer(transfer.TxID, transfer.Amount)
	if errors.Is(err, store.ErrDuplicateTransfer) || errors.Is(err, store.ErrNoMatchingOrder) {
		return
	}
	if err != nil {
		m.log.Error("transfer settlement failed",
			zap.String("tx", transfer.TxID), zap.Error(err))
		return
	}

	m.log.Info("deposit credited",
		zap.Uint("order", order.ID),
		zap.Int64("user", order.UserID),
		zap.String("amount", money.Format(order.RandomAmount)),
		zap.String("tx", transfer.TxID),
	)
	if m.notifier != nil {
		m.notifier.DepositCredited(order.UserID, order.RandomAmount, order.ID)
	}
}

func (m *Monitor) expireOrders() {
	cutoff := time.Now().Add(-m.depositExpiry)
	n, err := m.deposits.ExpireOlderThan(cutoff)
	if err != nil {
		m.log.Error("order expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		m.log.Info("expired stale deposit orders", zap.Int64("count", n))
	}
}

func (m *Monitor) refundPackets() {
	cutoff := time.Now().Add(-m.refundAfter)
	refunded, err := m.packets.RefundExpired(cutoff)
	if err != nil {
		m.log.Error("packet refund sweep failed", zap.Error(err))
		return
	}
	for i := range refunded {
		p := &refunded[i]
		m.log.Info("refunded expired packet",
			zap.String("packet", p.ID),
			zap.Int64("sender", p.SenderID),
			zap.String("amount", money.Format(p.RemainingAmount)),
		)
	}
}
