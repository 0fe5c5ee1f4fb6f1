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

func setupNotificationService(t *testing.T) (*service.NotificationService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	svc := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestNotificationService_NotifyAll_SkipsInactiveUsers(t *testing.T) {
	svc, db := setupNotificationService(t)
	active := testutil.CreateTestUser(t, db, "active@example.com", domain.RoleStaff)
	inactive := testutil.CreateTestUser(t, db, "inactive@example.com", domain.RoleStaff)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	require.NoError(t, svc.NotifyAll(context.Background(), domain.Notification{
		Type:    string(domain.NotificationTypeOrderPaid),
		Title:   "Order fully paid",
		Message: "Order for Ama Serwaa has been fully paid",
	}))

	count, err := svc.CountUnread(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.CountUnread(context.Background(), inactive.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_MarkAsRead_OwnOnly(t *testing.T) {
	svc, db := setupNotificationService(t)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)
	other := testutil.CreateTestUser(t, db, "other@example.com", domain.RoleStaff)

	require.NoError(t, svc.NotifyAll(context.Background(), domain.Notification{
		Type:  string(domain.NotificationTypeOccurrenceDue),
		Title: "Recurring expense due",
	}))

	var notification domain.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&notification).Error)

	// A user cannot read someone else's notification
	err := svc.MarkAsRead(context.Background(), other.ID, notification.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.MarkAsRead(context.Background(), owner.ID, notification.ID))

	count, err := svc.CountUnread(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	svc, db := setupNotificationService(t)
	user := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.NotifyAll(context.Background(), domain.Notification{
			Type:  string(domain.NotificationTypeExpenseReminder),
			Title: "Upcoming recurring expense",
		}))
	}

	count, err := svc.CountUnread(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, svc.MarkAllAsRead(context.Background(), user.ID))

	count, err = svc.CountUnread(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_List_Filters(t *testing.T) {
	svc, db := setupNotificationService(t)
	user := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)

	require.NoError(t, svc.NotifyAll(context.Background(), domain.Notification{
		Type:  string(domain.NotificationTypeOrderPaid),
		Title: "Order fully paid",
	}))
	require.NoError(t, svc.NotifyAll(context.Background(), domain.Notification{
		Type:  string(domain.NotificationTypeOccurrenceDue),
		Title: "Recurring expense due",
	}))

	page, err := svc.List(context.Background(), user.ID, 1, 20, false, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.List(context.Background(), user.ID, 1, 20, false, string(domain.NotificationTypeOrderPaid))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	var notification domain.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, string(domain.NotificationTypeOrderPaid)).
		First(&notification).Error)
	require.NoError(t, svc.MarkAsRead(context.Background(), user.ID, notification.ID))

	page, err = svc.List(context.Background(), user.ID, 1, 20, true, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
