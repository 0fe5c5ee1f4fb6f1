package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/database"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// The model tags must not carry Postgres-only default expressions, or
// AutoMigrate emits DDL sqlite cannot parse and every database-backed
// test fails at setup.
func TestAutoMigrate_SQLite(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, database.AutoMigrate(db))

	var count int64
	require.NoError(t, db.Model(&domain.Client{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAutoMigrate_HooksAssignIDs(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, database.AutoMigrate(db))

	client := &domain.Client{Name: "Adinkra Prints", IsActive: true}
	require.NoError(t, db.Create(client).Error)
	require.NotEqual(t, uuid.Nil, client.ID)

	account := &domain.Account{Name: "Revenue", Type: domain.AccountTypeRevenue, IsActive: true}
	require.NoError(t, db.Create(account).Error)

	txn := &domain.AccountTransaction{
		AccountID:       account.ID,
		Amount:          100,
		TransactionType: domain.TransactionCredit,
		SourceType:      domain.SourceOrderPayment,
	}
	require.NoError(t, db.Create(txn).Error)
	require.NotEqual(t, uuid.Nil, txn.ID)
}
