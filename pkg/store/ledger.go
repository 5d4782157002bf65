package store

import "github.com/avagarcia28867-droid/baobaolebot/pkg/model"

// UserStats aggregates a user's packet activity.
type UserStats struct {
	TotalSent    int64
	TotalGrabbed int64
}

// LedgerStore owns user rows and the append-only transaction ledger.
type LedgerStore interface {
	// EnsureUser fetches the user for a Telegram ID, creating the row
	// (with the sign-up bonus applied by the caller) if missing. The
	// boolean reports whether the user was created.
	EnsureUser(tgID int64, username string) (*model.User, bool, error)

	// GetUser fetches a user. Returns ErrUserNotFound if missing.
	GetUser(tgID int64) (*model.User, error)

	// AddBalance applies a signed balance change under a row lock and
	// records a ledger transaction. Debits that would take the balance
	// negative return ErrInsufficientBalance.
	AddBalance(tgID int64, amount int64, txType, note string) error

	// BindWallet sets the user's TRC20 payout address.
	BindWallet(tgID int64, address string) error

	// ListUsers returns all users, newest first.
	ListUsers() ([]model.User, error)

	// UserTransactions returns the user's latest ledger entries.
	UserTransactions(tgID int64, limit int) ([]model.Transaction, error)

	// UserStats sums the user's sent and grabbed packet amounts.
	UserStats(tgID int64) (*UserStats, error)
}
