package store

import "github.com/avagarcia28867-droid/baobaolebot/pkg/model"

// WithdrawalStore owns payout requests. Funds are frozen when the
// request is created, so approval never debits again; rejection refunds
// the freeze.
type WithdrawalStore interface {
	// Request freezes the amount (debit + withdraw_freeze ledger entry)
	// and opens a pending request. Returns ErrInsufficientBalance when
	// the user can't cover it.
	Request(userID int64, amount int64, wallet string) (*model.Withdrawal, error)

	// List returns all requests, newest first.
	List() ([]model.Withdrawal, error)

	// Approve confirms a pending payout. The freeze already holds the
	// funds, so this only flips the status.
	Approve(id uint) (*model.Withdrawal, error)

	// Reject refunds the frozen amount and marks the request rejected.
	Reject(id uint) (*model.Withdrawal, error)
}
