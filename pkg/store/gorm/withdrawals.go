package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// Ensure WithdrawalStore implements store.WithdrawalStore
var _ store.WithdrawalStore = (*WithdrawalStore)(nil)

// WithdrawalStore implements store.WithdrawalStore using GORM
type WithdrawalStore struct {
	db *gorm.DB
}

// NewWithdrawalStore creates a new WithdrawalStore
func NewWithdrawalStore(db *gorm.DB) *WithdrawalStore {
	return &WithdrawalStore{db: db}
}

// Request freezes the amount and opens a pending payout request.
func (s *WithdrawalStore) Request(userID int64, amount int64, wallet string) (*model.Withdrawal, error) {
	req := &model.Withdrawal{
		UserID:        userID,
		Amount:        amount,
		WalletAddress: wallet,
		Status:        model.WithdrawalPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := addBalanceTx(tx, userID, -amount, model.TxWithdrawFreeze, "withdrawal freeze"); err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// List returns all requests, newest first.
func (s *WithdrawalStore) List() ([]model.Withdrawal, error) {
	var reqs []model.Withdrawal
	err := s.db.Order("id desc").Find(&reqs).Error
	return reqs, err
}

// Approve confirms a pending payout. Funds were frozen at request time.
func (s *WithdrawalStore) Approve(id uint) (*model.Withdrawal, error) {
	return s.handle(id, func(_ *gorm.DB, req *model.Withdrawal) error {
		req.Status = model.WithdrawalApproved
		return nil
	})
}

// Reject refunds the frozen amount and marks the request rejected.
func (s *WithdrawalStore) Reject(id uint) (*model.Withdrawal, error) {
	return s.handle(id, func(tx *gorm.DB, req *model.Withdrawal) error {
		req.Status = model.WithdrawalRejected
		note := fmt.Sprintf("withdrawal #%d rejected", req.ID)
		return addBalanceTx(tx, req.UserID, req.Amount, model.TxWithdrawRefund, note)
	})
}

func (s *WithdrawalStore) handle(id uint, settle func(tx *gorm.DB, req *model.Withdrawal) error) (*model.Withdrawal, error) {
	var req model.Withdrawal

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrWithdrawalNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != model.WithdrawalPending {
			return store.ErrNotPending
		}
		if err := settle(tx, &req); err != nil {
			return err
		}
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
