package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSettingsService(t *testing.T) (*service.SettingsService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	return service.NewSettingsService(repository.NewProfitSettingsRepository(db), zap.NewNop()), db
}

func TestSettingsService_Get_CreatesDisabledDefault(t *testing.T) {
	svc, _ := setupSettingsService(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.False(t, settings.Enabled)
	assert.Equal(t, domain.BasisUnitPrice, settings.CalculationBasis)
	assert.Zero(t, settings.DefaultProfitPercentage)
}

func TestSettingsService_Update(t *testing.T) {
	svc, _ := setupSettingsService(t)

	updated, err := svc.Update(context.Background(), &domain.UpdateProfitSettingsRequest{
		Enabled:                 true,
		CalculationBasis:        domain.BasisTotalCost,
		DefaultProfitPercentage: 25,
		IncludeLabor:            true,
		LaborPercentage:         12,
	})
	require.NoError(t, err)

	assert.True(t, updated.Enabled)
	assert.Equal(t, domain.BasisTotalCost, updated.CalculationBasis)
	assert.Equal(t, 25.0, updated.DefaultProfitPercentage)
	assert.Equal(t, 12.0, updated.LaborPercentage)

	_, err = svc.Update(context.Background(), &domain.UpdateProfitSettingsRequest{
		Enabled:          true,
		CalculationBasis: "markup",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSettingsService_Overrides(t *testing.T) {
	svc, _ := setupSettingsService(t)

	override, err := svc.AddOverride(context.Background(), &domain.CreateProfitOverrideRequest{
		Type:             domain.OverrideCategory,
		Name:             "Large format",
		ProfitPercentage: 35,
		LaborPercentage:  15,
	})
	require.NoError(t, err)
	assert.Equal(t, "Large format", override.Name)

	updated, err := svc.UpdateOverride(context.Background(), override.ID, &domain.CreateProfitOverrideRequest{
		Type:             domain.OverrideCategory,
		Name:             "Large format",
		ProfitPercentage: 40,
		LaborPercentage:  15,
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, updated.ProfitPercentage)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, settings.Overrides, 1)

	require.NoError(t, svc.DeleteOverride(context.Background(), override.ID))

	settings, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.Overrides)

	err = svc.DeleteOverride(context.Background(), override.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSettingsService_OverrideRejectsUnknownType(t *testing.T) {
	svc, _ := setupSettingsService(t)

	_, err := svc.AddOverride(context.Background(), &domain.CreateProfitOverrideRequest{
		Type: "supplier",
		Name: "Nope",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// Order pricing picks up an override by category name over the global default
func TestSettingsService_OverrideAffectsOrderPricing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	settingsRepo := repository.NewProfitSettingsRepository(db)
	settingsSvc := service.NewSettingsService(settingsRepo, zap.NewNop())

	_, err := settingsSvc.Update(context.Background(), &domain.UpdateProfitSettingsRequest{
		Enabled:                 true,
		CalculationBasis:        domain.BasisUnitPrice,
		DefaultProfitPercentage: 20,
	})
	require.NoError(t, err)

	_, err = settingsSvc.AddOverride(context.Background(), &domain.CreateProfitOverrideRequest{
		Type:             domain.OverrideCategory,
		Name:             "Large format",
		ProfitPercentage: 50,
	})
	require.NoError(t, err)

	orderSvc := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewClientRepository(db),
		settingsRepo,
		service.NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), zap.NewNop()),
		zap.NewNop(),
	)
	client := testutil.CreateTestClient(t, db, "Ama Serwaa")

	order, err := orderSvc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items: []domain.CreateOrderItemRequest{
			{ItemName: "Billboard", CategoryName: "Large format", Quantity: 1, UnitPrice: 100},
			{ItemName: "Flyers", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, findItem(t, order.Items, "Billboard").ProfitAmount)
	assert.Equal(t, 20.0, findItem(t, order.Items, "Flyers").ProfitAmount)
}
