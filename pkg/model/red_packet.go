package model

import (
	"encoding/json"
	"time"
)

// RedPacket statuses.
const (
	PacketActive   = "active"
	PacketFinished = "finished"
	PacketRefunded = "refunded"
)

// NoMine marks a packet without a mine number (plain giveaway packet).
const NoMine = -1

// RedPacket is a shareable packet of funds. MineNumber in [0,9] makes it
// a minesweeper packet: a claimed share whose mine digit equals it costs
// the claimer a penalty paid to the sender.
type RedPacket struct {
	ID              string    `gorm:"column:id;primaryKey"`
	SenderID        int64     `gorm:"column:sender_id;index"`
	SenderName      string    `gorm:"column:sender_name"`
	TotalAmount     int64     `gorm:"column:total_amount"`
	TotalCount      int       `gorm:"column:total_count"`
	RemainingAmount int64     `gorm:"column:remaining_amount"`
	RemainingCount  int       `gorm:"column:remaining_count"`
	Status          string    `gorm:"column:status;default:active"`
	ClaimedUsers    string    `gorm:"column:claimed_users;default:'[]'"`
	MineNumber      int       `gorm:"column:mine_number;default:-1"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RedPacket) TableName() string {
	return "red_packets"
}

// HasMine reports whether the packet carries a mine number.
func (p *RedPacket) HasMine() bool {
	return p.MineNumber >= 0
}

// ClaimedBy reports whether the given user already grabbed a share.
func (p *RedPacket) ClaimedBy(tgID int64) bool {
	for _, id := range p.claimed() {
		if id == tgID {
			return true
		}
	}
	return false
}

// AddClaimed records a claimer in the packet's JSON claimed list.
func (p *RedPacket) AddClaimed(tgID int64) {
	ids := append(p.claimed(), tgID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	p.ClaimedUsers = string(raw)
}

func (p *RedPacket) claimed() []int64 {
	var ids []int64
	if err := json.Unmarshal([]byte(p.ClaimedUsers), &ids); err != nil {
		return nil
	}
	return ids
}
