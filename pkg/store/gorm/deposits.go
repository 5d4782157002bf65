package gorm

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// Ensure DepositStore implements store.DepositStore
var _ store.DepositStore = (*DepositStore)(nil)

// DepositStore implements store.DepositStore using GORM
type DepositStore struct {
	db *gorm.DB
}

// NewDepositStore creates a new DepositStore
func NewDepositStore(db *gorm.DB) *DepositStore {
	return &DepositStore{db: db}
}

// CreateOrder opens a pending deposit order.
func (s *DepositStore) CreateOrder(userID int64, amount, payable int64) (*model.Deposit, error) {
	order := &model.Deposit{
		UserID:       userID,
		Amount:       amount,
		RandomAmount: payable,
		Status:       model.DepositPending,
	}
	if err := s.db.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Get fetches an order by ID.
func (s *DepositStore) Get(id uint) (*model.Deposit, error) {
	var order model.Deposit
	err := s.db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrDepositNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders, newest first.
func (s *DepositStore) List() ([]model.Deposit, error) {
	var orders []model.Deposit
	err := s.db.Order("id desc").Find(&orders).Error
	return orders, err
}

// MatchTransfer settles a confirmed on-chain transfer against the newest
// pending order with the exact payable amount.
func (s *DepositStore) MatchTransfer(txHash string, amount int64) (*model.Deposit, error) {
	var matched model.Deposit

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var dup model.Deposit
		err := tx.Where("tx_hash = ?", txHash).First(&dup).Error
		if err == nil {
			return store.ErrDuplicateTransfer
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND random_amount = ?", model.DepositPending, amount).
			Order("id desc").First(&matched).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNoMatchingOrder
		}
		if err != nil {
			return err
		}

		matched.Status = model.DepositCompleted
		matched.TxHash = &txHash
		if err := tx.Save(&matched).Error; err != nil {
			return err
		}

		note := fmt.Sprintf("deposit order #%d tx %.8s", matched.ID, txHash)
		return addBalanceTx(tx, matched.UserID, matched.RandomAmount, model.TxDepositAuto, note)
	})
	if err != nil {
		return nil, err
	}
	return &matched, nil
}

// ExpireOlderThan marks stale pending orders expired.
func (s *DepositStore) ExpireOlderThan(cutoff time.Time) (int64, error) {
	res := s.db.Model(&model.Deposit{}).
		Where("status = ? AND created_at < ?", model.DepositPending, cutoff).
		Update("status", model.DepositExpired)
	return res.RowsAffected, res.Error
}

// Approve manually settles a pending order.
func (s *DepositStore) Approve(id uint) (*model.Deposit, error) {
	return s.handle(id, func(tx *gorm.DB, order *model.Deposit) error {
		order.Status = model.DepositCompleted
		note := fmt.Sprintf("admin approved order #%d", order.ID)
		return addBalanceTx(tx, order.UserID, order.RandomAmount, model.TxDepositManual, note)
	})
}

// Reject marks a pending order rejected without crediting.
func (s *DepositStore) Reject(id uint) (*model.Deposit, error) {
	return s.handle(id, func(_ *gorm.DB, order *model.Deposit) error {
		order.Status = model.DepositRejected
		return nil
	})
}

func (s *DepositStore) handle(id uint, settle func(tx *gorm.DB, order *model.Deposit) error) (*model.Deposit, error) {
	var order model.Deposit

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrDepositNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != model.DepositPending {
			return store.ErrNotPending
		}
		if err := settle(tx, &order); err != nil {
			return err
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
