// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/database"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets its own database, so tests need no cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory test database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	return db
}

// CreateTestClient inserts a client with sensible defaults
func CreateTestClient(t *testing.T, db *gorm.DB, name string) *domain.Client {
	t.Helper()

	client := &domain.Client{
		Name:     name,
		Phone:    "0244000000",
		Email:    "client@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateTestUser inserts an active user with the given role
func CreateTestUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestOrder inserts an order for the given client
func CreateTestOrder(t *testing.T, db *gorm.DB, clientID uuid.UUID) *domain.Order {
	t.Helper()

	order := &domain.Order{
		ClientID:      clientID,
		OrderDate:     time.Now(),
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// CreateTestAccount inserts a ledger account
func CreateTestAccount(t *testing.T, db *gorm.DB, name string, accountType domain.AccountType) *domain.Account {
	t.Helper()

	account := &domain.Account{
		Name:     name,
		Type:     accountType,
		IsActive: true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

// SeedProfitSettings inserts the settings singleton row the application
// normally seeds via migration
func SeedProfitSettings(t *testing.T, db *gorm.DB, settings *domain.ProfitSettings) *domain.ProfitSettings {
	t.Helper()

	if settings == nil {
		settings = &domain.ProfitSettings{
			Enabled:                 true,
			CalculationBasis:        domain.BasisUnitPrice,
			DefaultProfitPercentage: 20,
			IncludeLabor:            true,
			LaborPercentage:         10,
		}
	}
	require.NoError(t, db.Create(settings).Error)
	return settings
}
