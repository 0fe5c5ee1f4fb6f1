package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupOrderService(t *testing.T) (*service.OrderService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	testutil.SeedProfitSettings(t, db, nil)

	orderRepo := repository.NewOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)
	settingsRepo := repository.NewProfitSettingsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifications := service.NewNotificationService(notificationRepo, userRepo, zap.NewNop())

	return service.NewOrderService(orderRepo, clientRepo, settingsRepo, notifications, zap.NewNop()), db
}

func TestOrderService_CreateWithItems(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Ama Serwaa")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items: []domain.CreateOrderItemRequest{
			{ItemName: "Business cards", Quantity: 2, UnitPrice: 100},
			{ItemName: "Flyers", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, order.PaymentStatus)
	assert.Equal(t, 250.0, order.TotalAmount)
	assert.Equal(t, 0.0, order.AmountPaid)
	assert.Equal(t, 250.0, order.Balance)
	require.Len(t, order.Items, 2)

	// Seeded settings: profit 20%, labor 10% of the remainder, unit_price basis
	cards := findItem(t, order.Items, "Business cards")
	assert.Equal(t, 200.0, cards.TotalAmount)
	assert.Equal(t, 20.0, cards.ProfitAmount)
	assert.Equal(t, 8.0, cards.LaborAmount)
}

func findItem(t *testing.T, items []domain.OrderItemDTO, name string) domain.OrderItemDTO {
	t.Helper()
	for _, item := range items {
		if item.ItemName == name {
			return item
		}
	}
	t.Fatalf("item %q not found", name)
	return domain.OrderItemDTO{}
}

func TestOrderService_Create_UnknownClient(t *testing.T) {
	svc, _ := setupOrderService(t)

	_, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  uuid.New(),
		OrderDate: time.Now(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestOrderService_AddPayment_UpdatesPaymentStatus(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Kwame Mensah")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items: []domain.CreateOrderItemRequest{
			{ItemName: "Banner", Quantity: 1, UnitPrice: 300},
		},
	})
	require.NoError(t, err)

	order, err = svc.AddPayment(context.Background(), order.ID, &domain.CreatePaymentRequest{
		Amount:      100,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, order.PaymentStatus)
	assert.Equal(t, 100.0, order.AmountPaid)
	assert.Equal(t, 200.0, order.Balance)

	order, err = svc.AddPayment(context.Background(), order.ID, &domain.CreatePaymentRequest{
		Amount:      200,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, 0.0, order.Balance)
}

func TestOrderService_AddPayment_NotifiesOnFullPayment(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Akosua Boateng")
	active := testutil.CreateTestUser(t, db, "active@example.com", domain.RoleStaff)
	inactive := testutil.CreateTestUser(t, db, "inactive@example.com", domain.RoleStaff)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items: []domain.CreateOrderItemRequest{
			{ItemName: "Stickers", Quantity: 1, UnitPrice: 80},
		},
	})
	require.NoError(t, err)

	_, err = svc.AddPayment(context.Background(), order.ID, &domain.CreatePaymentRequest{
		Amount:      80,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	var notifications []domain.Notification
	require.NoError(t, db.Where("type = ?", string(domain.NotificationTypeOrderPaid)).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, active.ID, notifications[0].UserID)

	// A further payment on an already paid order must not notify again
	_, err = svc.AddPayment(context.Background(), order.ID, &domain.CreatePaymentRequest{
		Amount:      10,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("type = ?", string(domain.NotificationTypeOrderPaid)).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestOrderService_AddPayment_TotalsFailureDoesNotFailPayment(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Nana Adjei")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items:     []domain.CreateOrderItemRequest{{ItemName: "Banner", Quantity: 1, UnitPrice: 300}},
	})
	require.NoError(t, err)

	// Block the derived-columns write so only the payment row can land
	require.NoError(t, db.Exec(`CREATE TRIGGER block_order_updates BEFORE UPDATE ON orders
		BEGIN SELECT RAISE(ABORT, 'totals write blocked'); END`).Error)

	updated, err := svc.AddPayment(context.Background(), order.ID, &domain.CreatePaymentRequest{
		Amount:      100,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.OrderPayment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Stored totals are stale until the repair path runs
	assert.Equal(t, 0.0, updated.AmountPaid)

	// The explicit repair endpoint does hard-fail while the write is blocked
	_, err = svc.Recalculate(context.Background(), order.ID)
	require.Error(t, err)

	require.NoError(t, db.Exec(`DROP TRIGGER block_order_updates`).Error)

	fixed, err := svc.Recalculate(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fixed.AmountPaid)
	assert.Equal(t, 200.0, fixed.Balance)
}

func TestOrderService_DeleteItem_RecomputesTotals(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Yaw Owusu")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items: []domain.CreateOrderItemRequest{
			{ItemName: "Posters", Quantity: 10, UnitPrice: 15},
			{ItemName: "Mugs", Quantity: 2, UnitPrice: 25},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, order.TotalAmount)

	order, err = svc.DeleteItem(context.Background(), order.ID, findItem(t, order.Items, "Mugs").ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, order.TotalAmount)
	assert.Len(t, order.Items, 1)
}

func TestOrderService_DeleteItem_WrongOrder(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Efua Darko")

	first, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items:     []domain.CreateOrderItemRequest{{ItemName: "Shirts", Quantity: 1, UnitPrice: 60}},
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.DeleteItem(context.Background(), second.ID, first.Items[0].ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderService_Recalculate_RepairsDriftedTotals(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Kojo Antwi")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
		Items:     []domain.CreateOrderItemRequest{{ItemName: "Caps", Quantity: 4, UnitPrice: 25}},
	})
	require.NoError(t, err)

	// Corrupt the stored totals behind the service's back
	require.NoError(t, db.Model(&domain.Order{}).Where("id = ?", order.ID).
		Update("total_amount", 999).Error)

	fixed, err := svc.Recalculate(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fixed.TotalAmount)
	assert.Equal(t, 100.0, fixed.Balance)
}

func TestOrderService_Update_InvalidStatus(t *testing.T) {
	svc, db := setupOrderService(t)
	client := testutil.CreateTestClient(t, db, "Adjoa Asante")

	order, err := svc.Create(context.Background(), &domain.CreateOrderRequest{
		ClientID:  client.ID,
		OrderDate: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), order.ID, &domain.UpdateOrderRequest{
		OrderDate: time.Now(),
		Status:    "shipped",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
