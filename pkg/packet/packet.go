// Package packet implements the red-packet game rules: share splitting,
// mine detection and penalty settlement. It is pure computation; the
// transactional side lives in pkg/store/gorm.
package packet

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
)

const (
	// MinAmount is the smallest packet total a user may send.
	MinAmount = 100_000 // 0.1 USDT

	// MinCount is the smallest number of shares; a minesweeper packet
	// for one person is no game at all.
	MinCount = 2

	// MineRiskFloor is the minimum balance required to grab a mine
	// packet. Keeps penalty debits collectable.
	MineRiskFloor = 5 * money.MicroPerUSDT

	// FeePercent is the service fee taken from the packet total.
	FeePercent = 5

	// penaltyNum/penaltyDen express the 1.5x mine penalty.
	penaltyNum = 3
	penaltyDen = 2
)

var (
	ErrAmountTooSmall = errors.New("packet amount below minimum")
	ErrTooFewShares   = errors.New("packet needs at least two shares")
	ErrTooManyShares  = errors.New("packet cannot cover one micro-unit per share")
	ErrBadMineNumber  = errors.New("mine number must be -1 or a digit 0-9")
)

// NewID returns a short shareable packet ID, the first eight characters
// of a UUID.
func NewID() string {
	return uuid.NewString()[:8]
}

// Validate checks user input for packet creation. The post-fee total
// must cover at least one micro-unit per share, or the splitter would
// run dry with claimers left.
func Validate(amount int64, count, mine int) error {
	if amount < MinAmount {
		return ErrAmountTooSmall
	}
	if count < MinCount {
		return ErrTooFewShares
	}
	if int64(count) > Net(amount) {
		return ErrTooManyShares
	}
	if mine < -1 || mine > 9 {
		return ErrBadMineNumber
	}
	return nil
}

// Net returns the packet total after the service fee.
func Net(amount int64) int64 {
	return amount - amount*FeePercent/100
}

// Split returns the share for the next claimer. The last claimer takes
// whatever remains; everyone else draws from [1, 2*avg), clamped so at
// least one micro-unit is left per remaining share. Returns 0 when the
// remainder cannot cover the remaining shares; nothing is ever minted
// from an empty packet.
func Split(rng *rand.Rand, remaining int64, remainingCount int) int64 {
	if remainingCount <= 1 {
		return remaining
	}
	if remaining < int64(remainingCount) {
		return 0
	}
	avg := remaining / int64(remainingCount)
	share := 1 + rng.Int63n(maxInt64(avg*2-1, 1))
	if max := remaining - int64(remainingCount-1); share > max {
		share = max
	}
	return share
}

// MineDigit extracts the digit a share is judged on: the hundreds
// micro-unit digit, i.e. the second decimal place of the USDT amount.
func MineDigit(share int64) int {
	return int((share / 100) % 10)
}

// IsHit reports whether a share triggers the packet's mine.
func IsHit(share int64, mine int) bool {
	if mine < 0 {
		return false
	}
	return MineDigit(share) == mine
}

// Penalty returns the amount a mine hit costs the claimer, 1.5 times the
// packet total, paid to the sender.
func Penalty(total int64) int64 {
	return total * penaltyNum / penaltyDen
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
