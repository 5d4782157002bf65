package gorm

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/packet"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// Ensure PacketStore implements store.PacketStore
var _ store.PacketStore = (*PacketStore)(nil)

// PacketStore implements store.PacketStore using GORM
type PacketStore struct {
	db *gorm.DB

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPacketStore creates a new PacketStore
func NewPacketStore(db *gorm.DB) *PacketStore {
	return &PacketStore{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create debits the sender for the full amount and opens an active
// packet carrying the post-fee total.
func (s *PacketStore) Create(senderID int64, senderName string, amount int64, count, mine int) (*model.RedPacket, error) {
	if err := packet.Validate(amount, count, mine); err != nil {
		return nil, err
	}

	net := packet.Net(amount)
	p := &model.RedPacket{
		ID:              packet.NewID(),
		SenderID:        senderID,
		SenderName:      senderName,
		TotalAmount:     net,
		TotalCount:      count,
		RemainingAmount: net,
		RemainingCount:  count,
		Status:          model.PacketActive,
		ClaimedUsers:    "[]",
		MineNumber:      mine,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		note := fmt.Sprintf("packet %s mine %d", p.ID, mine)
		if err := addBalanceTx(tx, senderID, -amount, model.TxSendPacket, note); err != nil {
			return err
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get fetches a packet by ID.
func (s *PacketStore) Get(id string) (*model.RedPacket, error) {
	var p model.RedPacket
	err := s.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrPacketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Grab claims one share for the user.
func (s *PacketStore) Grab(packetID string, tgID int64) (*store.GrabResult, error) {
	var result *store.GrabResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p model.RedPacket
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", packetID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrPacketNotFound
		}
		if err != nil {
			return err
		}

		if p.Status != model.PacketActive || p.RemainingCount <= 0 {
			return store.ErrPacketExhausted
		}
		if p.ClaimedBy(tgID) {
			return store.ErrAlreadyClaimed
		}

		var claimer model.User
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tg_id = ?", tgID).First(&claimer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			claimer = model.User{TgID: tgID}
			if err := tx.Create(&claimer).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if p.HasMine() && claimer.Balance < packet.MineRiskFloor {
			return store.ErrBalanceTooLow
		}

		share := s.split(p.RemainingAmount, p.RemainingCount)
		p.RemainingAmount -= share
		p.RemainingCount--
		p.AddClaimed(tgID)
		if p.RemainingCount == 0 {
			p.Status = model.PacketFinished
		}

		note := fmt.Sprintf("packet %s", p.ID)
		if err := forceBalanceTx(tx, tgID, share, model.TxGrab, note); err != nil {
			return err
		}

		result = &store.GrabResult{
			Packet:   &p,
			Share:    share,
			Digit:    packet.MineDigit(share),
			Finished: p.RemainingCount == 0,
		}

		if packet.IsHit(share, p.MineNumber) {
			pen := packet.Penalty(p.TotalAmount)
			hitNote := fmt.Sprintf("mine hit on packet %s", p.ID)
			// Penalty may take the claimer below zero; the risk floor
			// bounds the exposure.
			if err := forceBalanceTx(tx, tgID, -pen, model.TxBoomPenalty, hitNote); err != nil {
				return err
			}
			if err := forceBalanceTx(tx, p.SenderID, pen, model.TxBoomIncome, hitNote); err != nil {
				return err
			}
			result.MineHit = true
			result.Penalty = pen
		}

		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RefundExpired returns leftover funds of stale active packets to their
// senders and marks the packets refunded.
func (s *PacketStore) RefundExpired(cutoff time.Time) ([]model.RedPacket, error) {
	var refunded []model.RedPacket

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expired []model.RedPacket
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND created_at < ?", model.PacketActive, cutoff).
			Find(&expired).Error
		if err != nil {
			return err
		}

		for i := range expired {
			p := &expired[i]
			if p.RemainingAmount > 0 {
				note := fmt.Sprintf("packet %s expired", p.ID)
				err := addBalanceTx(tx, p.SenderID, p.RemainingAmount, model.TxRefund, note)
				if err != nil {
					return err
				}
			}
			p.Status = model.PacketRefunded
			if err := tx.Save(p).Error; err != nil {
				return err
			}
			refunded = append(refunded, *p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refunded, nil
}

func (s *PacketStore) split(remaining int64, remainingCount int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return packet.Split(s.rng, remaining, remainingCount)
}
