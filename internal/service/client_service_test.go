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

func setupClientService(t *testing.T) (*service.ClientService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	return service.NewClientService(repository.NewClientRepository(db), zap.NewNop()), db
}

func TestClientService_CreateAndGet(t *testing.T) {
	svc, _ := setupClientService(t)

	created, err := svc.Create(context.Background(), &domain.CreateClientRequest{
		Name:         "Ama Serwaa",
		BusinessName: "Serwaa Fashions",
		Phone:        "+233201234567",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Serwaa Fashions", got.BusinessName)
	assert.Zero(t, got.OrdersCount)
}

func TestClientService_Delete_RefusesWithOrders(t *testing.T) {
	svc, db := setupClientService(t)

	created, err := svc.Create(context.Background(), &domain.CreateClientRequest{
		Name: "Kwame Mensah",
	})
	require.NoError(t, err)
	testutil.CreateTestOrder(t, db, created.ID)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OrdersCount)
}

func TestClientService_List_Search(t *testing.T) {
	svc, _ := setupClientService(t)

	for _, name := range []string{"Ama Serwaa", "Kwame Mensah", "Akosua Boateng"} {
		_, err := svc.Create(context.Background(), &domain.CreateClientRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), 1, 20, "kwame")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = svc.List(context.Background(), 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
