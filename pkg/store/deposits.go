package store

import (
	"time"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
)

// DepositStore owns deposit orders and their settlement.
type DepositStore interface {
	// CreateOrder opens a pending deposit order. payable is the exact
	// amount (with random fingerprint) the user must transfer.
	CreateOrder(userID int64, amount, payable int64) (*model.Deposit, error)

	// Get fetches an order by ID. Returns ErrDepositNotFound if missing.
	Get(id uint) (*model.Deposit, error)

	// List returns all orders, newest first.
	List() ([]model.Deposit, error)

	// MatchTransfer settles a confirmed on-chain transfer: dedupes on
	// the transaction hash, matches the newest pending order with the
	// exact payable amount, credits the user and completes the order.
	// Returns ErrDuplicateTransfer or ErrNoMatchingOrder when nothing
	// was settled.
	MatchTransfer(txHash string, amount int64) (*model.Deposit, error)

	// ExpireOlderThan marks pending orders created before the cutoff as
	// expired and returns how many were affected.
	ExpireOlderThan(cutoff time.Time) (int64, error)

	// Approve manually settles a pending order, crediting the payable
	// amount. Returns ErrNotPending unless the order is pending.
	Approve(id uint) (*model.Deposit, error)

	// Reject marks a pending order rejected without crediting.
	Reject(id uint) (*model.Deposit, error)
}
