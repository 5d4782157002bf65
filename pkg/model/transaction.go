package model

import "time"

// Transaction types. Every balance change writes exactly one row with
// one of these types.
const (
	TxSystemBonus    = "system_bonus"
	TxDepositAuto    = "deposit_auto"
	TxDepositManual  = "deposit_manual"
	TxSendPacket     = "send_packet"
	TxGrab           = "grab"
	TxBoomPenalty    = "boom_penalty"
	TxBoomIncome     = "boom_income"
	TxRefund         = "refund"
	TxWithdrawFreeze = "withdraw_freeze"
	TxWithdrawRefund = "withdraw_refund"
)

// Transaction is one ledger entry. Amount is signed: debits are negative.
type Transaction struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;index"`
	Amount    int64     `gorm:"column:amount"`
	Type      string    `gorm:"column:type"`
	Note      string    `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
