package service_test

import (
	"context"
	"testing"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAllocationService(t *testing.T) (*service.AllocationService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	ruleRepo := repository.NewAllocationRuleRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	return service.NewAllocationService(ruleRepo, accountRepo, zap.NewNop()), db
}

func TestAllocationService_CreateRule_CeilingEnforced(t *testing.T) {
	svc, db := setupAllocationService(t)
	savings := testutil.CreateTestAccount(t, db, "Savings", domain.AccountTypeProfit)
	wages := testutil.CreateTestAccount(t, db, "Wages", domain.AccountTypeLabor)

	_, err := svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  savings.ID,
		Percentage: 60,
	})
	require.NoError(t, err)

	// 60 + 50 would exceed 100 for the same source type
	_, err = svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  wages.ID,
		Percentage: 50,
	})
	assert.ErrorIs(t, err, service.ErrAllocationCeiling)

	// A different source type has its own ceiling
	_, err = svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceLabor,
		AccountID:  wages.ID,
		Percentage: 50,
	})
	require.NoError(t, err)

	rule, err := svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  wages.ID,
		Percentage: 40,
	})
	require.NoError(t, err)
	assert.True(t, rule.IsActive)
}

func TestAllocationService_UpdateRule_DeactivatedSkipsCeiling(t *testing.T) {
	svc, db := setupAllocationService(t)
	account := testutil.CreateTestAccount(t, db, "Reserve", domain.AccountTypeProfit)

	first, err := svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  account.ID,
		Percentage: 70,
	})
	require.NoError(t, err)

	second, err := svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  account.ID,
		Percentage: 30,
	})
	require.NoError(t, err)

	// Raising an active rule past the ceiling fails
	_, err = svc.UpdateRule(context.Background(), second.ID, &domain.UpdateAllocationRuleRequest{
		AccountID:  account.ID,
		Percentage: 50,
		IsActive:   true,
	})
	assert.ErrorIs(t, err, service.ErrAllocationCeiling)

	// Deactivating is always allowed, whatever the percentage
	updated, err := svc.UpdateRule(context.Background(), second.ID, &domain.UpdateAllocationRuleRequest{
		AccountID:  account.ID,
		Percentage: 90,
		IsActive:   false,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// With the second rule inactive, the first can grow into the freed room
	_, err = svc.UpdateRule(context.Background(), first.ID, &domain.UpdateAllocationRuleRequest{
		AccountID:  account.ID,
		Percentage: 100,
		IsActive:   true,
	})
	require.NoError(t, err)
}

func TestAllocationService_Allocate(t *testing.T) {
	svc, db := setupAllocationService(t)
	savings := testutil.CreateTestAccount(t, db, "Savings", domain.AccountTypeProfit)
	growth := testutil.CreateTestAccount(t, db, "Growth", domain.AccountTypeCustom)

	for _, rule := range []domain.CreateAllocationRuleRequest{
		{SourceType: domain.SourceProfit, AccountID: savings.ID, Percentage: 60},
		{SourceType: domain.SourceProfit, AccountID: growth.ID, Percentage: 40},
	} {
		_, err := svc.CreateRule(context.Background(), &rule)
		require.NoError(t, err)
	}

	txns, err := svc.Allocate(context.Background(), &domain.AllocateRequest{
		SourceType:  domain.SourceProfit,
		Amount:      1000,
		Description: "June profit",
	})
	require.NoError(t, err)
	require.Len(t, txns, 2)

	byAccount := make(map[string]float64, len(txns))
	for _, txn := range txns {
		byAccount[txn.AccountID.String()] = txn.Amount
	}
	assert.Equal(t, 600.0, byAccount[savings.ID.String()])
	assert.Equal(t, 400.0, byAccount[growth.ID.String()])

	var count int64
	require.NoError(t, db.Model(&domain.AccountTransaction{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAllocationService_Allocate_NoRules(t *testing.T) {
	svc, _ := setupAllocationService(t)

	txns, err := svc.Allocate(context.Background(), &domain.AllocateRequest{
		SourceType: domain.SourceLabor,
		Amount:     500,
	})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestAllocationService_Preview_WritesNothing(t *testing.T) {
	svc, db := setupAllocationService(t)
	account := testutil.CreateTestAccount(t, db, "Savings", domain.AccountTypeProfit)

	_, err := svc.CreateRule(context.Background(), &domain.CreateAllocationRuleRequest{
		SourceType: domain.SourceProfit,
		AccountID:  account.ID,
		Percentage: 25,
	})
	require.NoError(t, err)

	previews, err := svc.Preview(context.Background(), &domain.AllocateRequest{
		SourceType: domain.SourceProfit,
		Amount:     200,
	})
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, 50.0, previews[0].Amount)
	assert.Equal(t, "Savings", previews[0].AccountName)

	var count int64
	require.NoError(t, db.Model(&domain.AccountTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}
