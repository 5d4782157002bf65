package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

func TestSessions(t *testing.T) {
	s := newSessions()

	assert.Equal(t, stateNone, s.get(1).state)

	s.set(1, session{state: statePacketCount, packetAmount: 5_000_000})
	got := s.get(1)
	assert.Equal(t, statePacketCount, got.state)
	assert.Equal(t, int64(5_000_000), got.packetAmount)

	// Other users are unaffected.
	assert.Equal(t, stateNone, s.get(2).state)

	s.clear(1)
	assert.Equal(t, stateNone, s.get(1).state)
}

func TestPayableFingerprint(t *testing.T) {
	b := &Bot{rng: rand.New(rand.NewSource(1))}

	const amount = 10_000_000
	for i := 0; i < 1000; i++ {
		payable := b.payable(amount)
		delta := payable - amount
		assert.GreaterOrEqual(t, delta, int64(fingerprintMin))
		assert.LessOrEqual(t, delta, int64(fingerprintMax))
	}
}

func TestGrabErrorAlert(t *testing.T) {
	assert.NotEmpty(t, grabErrorAlert(store.ErrPacketNotFound))
	assert.NotEmpty(t, grabErrorAlert(store.ErrPacketExhausted))
	assert.NotEmpty(t, grabErrorAlert(store.ErrAlreadyClaimed))
	assert.NotEmpty(t, grabErrorAlert(store.ErrBalanceTooLow))
	assert.Empty(t, grabErrorAlert(nil))
	assert.Empty(t, grabErrorAlert(store.ErrUserNotFound))
}

func TestPacketText(t *testing.T) {
	p := &model.RedPacket{
		ID:              "abc12345",
		SenderName:      "alice",
		TotalAmount:     9_500_000,
		TotalCount:      5,
		RemainingAmount: 4_000_000,
		RemainingCount:  2,
		MineNumber:      7,
	}

	text := packetText(p)
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "9.50")
	assert.Contains(t, text, "Mine number: <b>7</b>")

	p.MineNumber = model.NoMine
	assert.NotContains(t, packetText(p), "Mine number")
}

func TestAccountTextEscapesWallet(t *testing.T) {
	u := &model.User{TgID: 42, Balance: 1_000_000, WalletAddress: "<script>"}
	text := accountText(u, 0, 0)
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;script&gt;")
}
