package model

import "time"

// User is a Telegram user known to the bot.
type User struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TgID          int64     `gorm:"column:tg_id;uniqueIndex"`
	Username      string    `gorm:"column:username"`
	Balance       int64     `gorm:"column:balance"`
	WalletAddress string    `gorm:"column:wallet_address"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
