package model

import "time"

// Withdrawal statuses.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// Withdrawal is a payout request. The requested amount is debited from
// the user's balance when the row is created; approval only confirms the
// payout, rejection refunds the freeze.
type Withdrawal struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64     `gorm:"column:user_id;index"`
	Amount        int64     `gorm:"column:amount"`
	WalletAddress string    `gorm:"column:wallet_address"`
	Status        string    `gorm:"column:status;default:pending"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
