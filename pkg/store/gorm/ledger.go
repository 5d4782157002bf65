package gorm

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

// Ensure LedgerStore implements store.LedgerStore
var _ store.LedgerStore = (*LedgerStore)(nil)

// LedgerStore implements store.LedgerStore using GORM
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// EnsureUser fetches or creates the user row for a Telegram ID.
func (s *LedgerStore) EnsureUser(tgID int64, username string) (*model.User, bool, error) {
	var user model.User
	created := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("tg_id = ?", tgID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.User{TgID: tgID, Username: username}
			created = true
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		if username != "" && user.Username != username {
			user.Username = username
			return tx.Model(&user).Update("username", username).Error
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &user, created, nil
}

// GetUser fetches a user by Telegram ID.
func (s *LedgerStore) GetUser(tgID int64) (*model.User, error) {
	var user model.User
	err := s.db.Where("tg_id = ?", tgID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddBalance applies a signed balance change under a row lock and writes
// the matching ledger transaction.
func (s *LedgerStore) AddBalance(tgID int64, amount int64, txType, note string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return addBalanceTx(tx, tgID, amount, txType, note)
	})
}

// addBalanceTx is the shared locked credit/debit used by every store
// that moves funds. Must run inside a transaction.
func addBalanceTx(tx *gorm.DB, tgID int64, amount int64, txType, note string) error {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tg_id = ?", tgID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{TgID: tgID}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if amount < 0 && user.Balance+amount < 0 {
		return store.ErrInsufficientBalance
	}

	err = tx.Model(&model.User{}).Where("tg_id = ?", tgID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
	if err != nil {
		return err
	}

	return tx.Create(&model.Transaction{
		UserID: tgID,
		Amount: amount,
		Type:   txType,
		Note:   note,
	}).Error
}

// forceBalanceTx applies a balance change without the non-negative
// guard. Only mine penalties use it; the risk floor bounds the exposure.
func forceBalanceTx(tx *gorm.DB, tgID int64, amount int64, txType, note string) error {
	err := tx.Model(&model.User{}).Where("tg_id = ?", tgID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
	if err != nil {
		return err
	}
	return tx.Create(&model.Transaction{
		UserID: tgID,
		Amount: amount,
		Type:   txType,
		Note:   note,
	}).Error
}

// BindWallet sets the user's payout address.
func (s *LedgerStore) BindWallet(tgID int64, address string) error {
	res := s.db.Model(&model.User{}).Where("tg_id = ?", tgID).
		Update("wallet_address", address)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// ListUsers returns all users, newest first.
func (s *LedgerStore) ListUsers() ([]model.User, error) {
	var users []model.User
	err := s.db.Order("id desc").Find(&users).Error
	return users, err
}

// UserTransactions returns the user's latest ledger entries.
func (s *LedgerStore) UserTransactions(tgID int64, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := s.db.Where("user_id = ?", tgID).
		Order("id desc").Limit(limit).Find(&txs).Error
	return txs, err
}

// UserStats sums the user's sent and grabbed packet amounts.
func (s *LedgerStore) UserStats(tgID int64) (*store.UserStats, error) {
	stats := &store.UserStats{}

	var sent int64
	err := s.db.Model(&model.Transaction{}).
		Where("user_id = ? AND type = ?", tgID, model.TxSendPacket).
		Select("COALESCE(SUM(amount), 0)").Scan(&sent).Error
	if err != nil {
		return nil, err
	}
	if sent < 0 {
		sent = -sent // send_packet entries are debits
	}
	stats.TotalSent = sent

	err = s.db.Model(&model.Transaction{}).
		Where("user_id = ? AND type = ?", tgID, model.TxGrab).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalGrabbed).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
