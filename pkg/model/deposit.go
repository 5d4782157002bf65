package model

import "time"

// Deposit statuses.
const (
	DepositPending   = "pending"
	DepositCompleted = "completed"
	DepositExpired   = "expired"
	DepositRejected  = "rejected"
)

// Deposit is a deposit order. Amount is what the user asked to deposit;
// RandomAmount is Amount plus a random micro-unit fingerprint, and is the
// exact value the user must transfer on-chain so the monitor can match
// the transfer back to the order.
type Deposit struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       int64     `gorm:"column:user_id;index"`
	Amount       int64     `gorm:"column:amount"`
	RandomAmount int64     `gorm:"column:random_amount"`
	Status       string    `gorm:"column:status;default:pending"`
	TxHash       *string   `gorm:"column:tx_hash;uniqueIndex"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Deposit) TableName() string {
	return "deposits"
}
