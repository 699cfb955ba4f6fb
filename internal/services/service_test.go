package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kelechieze/rentwheels/internal/paystack"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm init error: %v", err)
	}

	return gormDB, mock
}

func execResult(rows int64) sql.Result {
	return sqlmock.NewResult(0, rows)
}

// fakeGateway satisfies paystack.Gateway for service tests.
type fakeGateway struct {
	initURL    string
	initErr    error
	initCalls  int
	lastRef    string
	lastAmount int64
	lastMeta   paystack.Metadata
	verifyTx   *paystack.Transaction
	verifyErr  error
}

func (f *fakeGateway) Initialize(email string, amount int64, reference string, metadata paystack.Metadata) (string, error) {
	f.initCalls++
	f.lastRef = reference
	f.lastAmount = amount
	f.lastMeta = metadata
	if f.initErr != nil {
		return "", f.initErr
	}
	return f.initURL, nil
}

func (f *fakeGateway) Verify(reference string) (*paystack.Transaction, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyTx, nil
}
