package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/tron"
)

type fakeChain struct {
	transfers []tron.Transfer
	err       error
}

func (f *fakeChain) FetchTransfers(ctx context.Context) ([]tron.Transfer, error) {
	return f.transfers, f.err
}

type fakeDeposits struct {
	store.DepositStore

	mu       sync.Mutex
	matched  []string
	orders   map[int64]*model.Deposit // payable amount -> order
	expired  int64
	expireAt time.Time
}

func (f *fakeDeposits) MatchTransfer(txHash string, amount int64) (*model.Deposit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seen := range f.matched {
		if seen == txHash {
			return nil, store.ErrDuplicateTransfer
		}
	}
	f.matched = append(f.matched, txHash)
	order, ok := f.orders[amount]
	if !ok {
		return nil, store.ErrNoMatchingOrder
	}
	return order, nil
}

func (f *fakeDeposits) ExpireOlderThan(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expireAt = cutoff
	return f.expired, nil
}

type fakePackets struct {
	store.PacketStore

	refunded []model.RedPacket
}

func (f *fakePackets) RefundExpired(cutoff time.Time) ([]model.RedPacket, error) {
	return f.refunded, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []int64
}

func (f *fakeNotifier) DepositCredited(tgID int64, amount int64, orderID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tgID)
}

func testConfig() *config.Config {
	cfg, _ := config.Load()
	return cfg
}

func TestSweepSettlesMatchingTransfer(t *testing.T) {
	chain := &fakeChain{transfers: []tron.Transfer{
		{TxID: "tx1", Amount: 10_003_177},
		{TxID: "tx2", Amount: 999}, // no matching order
	}}
	deposits := &fakeDeposits{orders: map[int64]*model.Deposit{
		10_003_177: {ID: 7, UserID: 42, RandomAmount: 10_003_177},
	}}
	notifier := &fakeNotifier{}

	m := New(zap.NewNop(), chain, deposits, &fakePackets{}, notifier, testConfig())
	defer m.pool.StopAndWait()

	m.sweep(context.Background())

	assert.ElementsMatch(t, []string{"tx1", "tx2"}, deposits.matched)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, int64(42), notifier.calls[0])
}

func TestSweepDedupesTransfers(t *testing.T) {
	chain := &fakeChain{transfers: []tron.Transfer{
		{TxID: "tx1", Amount: 10_003_177},
	}}
	deposits := &fakeDeposits{orders: map[int64]*model.Deposit{
		10_003_177: {ID: 7, UserID: 42, RandomAmount: 10_003_177},
	}}
	notifier := &fakeNotifier{}

	m := New(zap.NewNop(), chain, deposits, &fakePackets{}, notifier, testConfig())
	defer m.pool.StopAndWait()

	m.sweep(context.Background())
	m.sweep(context.Background())

	// Second sweep sees the same transfer but must not credit twice.
	assert.Len(t, notifier.calls, 1)
}

func TestSweepWithoutChainStillExpires(t *testing.T) {
	deposits := &fakeDeposits{expired: 3}

	m := New(zap.NewNop(), nil, deposits, &fakePackets{}, nil, testConfig())
	defer m.pool.StopAndWait()

	before := time.Now()
	m.sweep(context.Background())

	// Expiry cutoff sits ~15 minutes in the past.
	assert.WithinDuration(t, before.Add(-15*time.Minute), deposits.expireAt, time.Minute)
}

func TestRunStopsOnCancel(t *testing.T) {
	m := New(zap.NewNop(), nil, &fakeDeposits{}, &fakePackets{}, nil, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancellation")
	}
}
