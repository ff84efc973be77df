package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
)

// openMockDB wires GORM's postgres dialector onto a sqlmock connection so
// the exact SQL sent to the server can be asserted.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormAccountRepository_SaveWithLockGuardsVersion(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewGormAccountRepository(db)

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(10)))

	// The update must be fenced on the previous version
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveWithLock(context.Background(), account))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAccountRepository_SaveWithLockLostRace(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewGormAccountRepository(db)

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(10)))

	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), account)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
