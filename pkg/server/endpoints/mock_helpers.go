package endpoints

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/config"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/server"
	gormstore "github.com/avagarcia28867-droid/baobaolebot/pkg/store/gorm"
)

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// VerifyExpectations checks that all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}

// NewMockTestServer creates a server with a mocked database and all
// endpoints registered, for unit testing handlers.
func NewMockTestServer() (*server.Server, *MockDB, error) {
	mockDB, err := NewMockDB()
	if err != nil {
		return nil, nil, err
	}

	cfg := &config.Config{
		AdminUser:       "admin",
		AdminPassword:   "swordfish",
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
	}

	db := mockDB.GormDB
	srv := server.NewServer(
		cfg,
		db,
		gormstore.NewLedgerStore(db),
		gormstore.NewDepositStore(db),
		gormstore.NewWithdrawalStore(db),
		gormstore.NewPacketStore(db),
		gormstore.NewHealthStore(db),
		"127.0.0.1",
		"0",
	)
	RegisterAll(srv)

	return srv, mockDB, nil
}
