package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/store"
)

func userColumns() []string {
	return []string{"id", "tg_id", "username", "balance", "wallet_address", "created_at"}
}

func TestGetUserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLedgerStore(db)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE tg_id = `).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := s.GetUser(42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLedgerStore(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, int64(42), "alice", int64(500_000), "", time.Now())
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE tg_id = `).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	user, err := s.GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.TgID)
	assert.Equal(t, int64(500_000), user.Balance)
}

func TestAddBalanceInsufficientRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLedgerStore(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, int64(42), "alice", int64(100), "", time.Now())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE tg_id = .* FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(rows)
	mock.ExpectRollback()

	err := s.AddBalance(42, -200, "send_packet", "test")
	assert.ErrorIs(t, err, store.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindWalletUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLedgerStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "wallet_address"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.BindWallet(999, "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
