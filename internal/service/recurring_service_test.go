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

func setupRecurringService(t *testing.T) (*service.RecurringExpenseService, *service.ExpenseService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	expenseRepo := repository.NewExpenseRepository(db)
	notifications := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	recurring := service.NewRecurringExpenseService(expenseRepo, notifications, zap.NewNop())
	expenses := service.NewExpenseService(expenseRepo, zap.NewNop())
	return recurring, expenses, db
}

func createRecurringTemplate(t *testing.T, svc *service.ExpenseService, expenseDate time.Time) *domain.ExpenseDTO {
	t.Helper()

	freq := domain.RecurrenceMonthly
	template, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: expenseDate,
		TotalAmount: 2000,
		AmountPaid:  2000,
		IsRecurring: true,
		Frequency:   &freq,
	})
	require.NoError(t, err)
	return template
}

func TestRecurringExpenseService_Run_MaterializesDueOccurrence(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)
	testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)

	// Template dated Jan 15 schedules its next occurrence for Feb 15
	template := createRecurringTemplate(t, expenses, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	report, err := recurring.Run(context.Background(), time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Succeeded)
	assert.Zero(t, report.Failed)

	var occurrences []domain.RecurringExpenseOccurrence
	require.NoError(t, db.Where("parent_expense_id = ?", template.ID).Find(&occurrences).Error)
	require.Len(t, occurrences, 1)
	assert.Equal(t, domain.OccurrenceStatusPending, occurrences[0].Status)
	assert.Equal(t, "2026-02-15", occurrences[0].OccurrenceDate.Format("2006-01-02"))

	// The template's schedule advances one period
	updated, err := expenses.Get(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", updated.NextOccurrenceDate)

	// Active users are notified about the due occurrence
	var notifications []domain.Notification
	require.NoError(t, db.Where("type = ?", string(domain.NotificationTypeOccurrenceDue)).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestRecurringExpenseService_Run_Idempotent(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)
	template := createRecurringTemplate(t, expenses, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	now := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	_, err := recurring.Run(context.Background(), now)
	require.NoError(t, err)
	_, err = recurring.Run(context.Background(), now)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.RecurringExpenseOccurrence{}).
		Where("parent_expense_id = ?", template.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecurringExpenseService_Run_NothingDue(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)
	createRecurringTemplate(t, expenses, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	report, err := recurring.Run(context.Background(), time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Succeeded)

	var count int64
	require.NoError(t, db.Model(&domain.RecurringExpenseOccurrence{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecurringExpenseService_Run_RespectsEndDate(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)

	freq := domain.RecurrenceMonthly
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := expenses.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:          "subscriptions",
		ItemName:          "Stock photos",
		ExpenseDate:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:       90,
		AmountPaid:        90,
		IsRecurring:       true,
		Frequency:         &freq,
		RecurrenceEndDate: &end,
	})
	require.NoError(t, err)

	// Feb 15 is past the recurrence end date, so nothing materializes
	_, err = recurring.Run(context.Background(), time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.RecurringExpenseOccurrence{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecurringExpenseService_Run_CatchesUpOverdueSchedule(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)

	// Template dated Jan 15 was due Feb 15 but the sweep did not run for
	// months. One run materializes the due date and advances the schedule
	// past now, without backfilling the missed periods.
	template := createRecurringTemplate(t, expenses, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	report, err := recurring.Run(context.Background(), time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	var occurrences []domain.RecurringExpenseOccurrence
	require.NoError(t, db.Where("parent_expense_id = ?", template.ID).Find(&occurrences).Error)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2026-02-15", occurrences[0].OccurrenceDate.Format("2006-01-02"))

	updated, err := expenses.Get(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-15", updated.NextOccurrenceDate)
}

func TestRecurringExpenseService_Run_SendsReminder(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)
	testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)

	freq := domain.RecurrenceMonthly
	remind := 3
	_, err := expenses.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:     "rent",
		ItemName:     "Shop rent",
		ExpenseDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:  2000,
		AmountPaid:   2000,
		IsRecurring:  true,
		Frequency:    &freq,
		ReminderDays: &remind,
	})
	require.NoError(t, err)

	// Next occurrence is Feb 15; three days before, the reminder fires
	_, err = recurring.Run(context.Background(), time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var notifications []domain.Notification
	require.NoError(t, db.Where("type = ?", string(domain.NotificationTypeExpenseReminder)).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestRecurringExpenseService_Run_NoReminderPastEndDate(t *testing.T) {
	recurring, expenses, db := setupRecurringService(t)
	testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAdmin)

	freq := domain.RecurrenceMonthly
	remind := 3
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := expenses.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:          "rent",
		ItemName:          "Shop rent",
		ExpenseDate:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:       2000,
		AmountPaid:        2000,
		IsRecurring:       true,
		Frequency:         &freq,
		ReminderDays:      &remind,
		RecurrenceEndDate: &end,
	})
	require.NoError(t, err)

	// The Feb 15 occurrence falls after the Feb 1 end date and will never
	// materialize, so no reminder fires for it
	_, err = recurring.Run(context.Background(), time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
