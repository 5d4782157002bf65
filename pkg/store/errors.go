package store

import "errors"

var (
	// ErrUserNotFound is returned when no user exists for a Telegram ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientBalance is returned when a guarded debit would take
	// a balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDepositNotFound is returned when a deposit order doesn't exist.
	ErrDepositNotFound = errors.New("deposit order not found")

	// ErrWithdrawalNotFound is returned when a withdrawal doesn't exist.
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")

	// ErrNotPending is returned when handling an order that has already
	// been settled one way or another.
	ErrNotPending = errors.New("order is not pending")

	// ErrDuplicateTransfer is returned when an on-chain transfer has
	// already been credited.
	ErrDuplicateTransfer = errors.New("transfer already processed")

	// ErrNoMatchingOrder is returned when a transfer matches no pending
	// deposit order.
	ErrNoMatchingOrder = errors.New("no matching deposit order")

	// ErrPacketNotFound is returned when a red packet doesn't exist.
	ErrPacketNotFound = errors.New("packet not found")

	// ErrPacketExhausted is returned when a packet has no shares left or
	// is no longer active.
	ErrPacketExhausted = errors.New("packet exhausted")

	// ErrAlreadyClaimed is returned when a user grabs a packet twice.
	ErrAlreadyClaimed = errors.New("packet already claimed by user")

	// ErrBalanceTooLow is returned when a user below the risk floor
	// tries to grab a mine packet.
	ErrBalanceTooLow = errors.New("balance below mine packet risk floor")
)
