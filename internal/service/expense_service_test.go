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

func setupExpenseService(t *testing.T) (*service.ExpenseService, *repository.ExpenseRepository, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewExpenseRepository(db)
	return service.NewExpenseService(repo, zap.NewNop()), repo, db
}

func monthlyFrequency() *domain.RecurrenceFrequency {
	f := domain.RecurrenceMonthly
	return &f
}

func TestExpenseService_Create_OneOff(t *testing.T) {
	svc, _, _ := setupExpenseService(t)

	expense, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "utilities",
		ItemName:    "Electricity",
		ExpenseDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		TotalAmount: 450,
		AmountPaid:  450,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPaid, expense.PaymentStatus)
	assert.False(t, expense.IsRecurring)
	assert.Empty(t, expense.NextOccurrenceDate)
}

func TestExpenseService_Create_RecurringSchedulesNextOccurrence(t *testing.T) {
	svc, _, _ := setupExpenseService(t)

	expense, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 2000,
		AmountPaid:  2000,
		IsRecurring: true,
		Frequency:   monthlyFrequency(),
	})
	require.NoError(t, err)

	assert.True(t, expense.IsRecurring)
	assert.Equal(t, "2026-02-15", expense.NextOccurrenceDate)
}

func TestExpenseService_Create_RecurringWithoutFrequency(t *testing.T) {
	svc, _, _ := setupExpenseService(t)

	_, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: time.Now(),
		TotalAmount: 2000,
		IsRecurring: true,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestExpenseService_Create_DayOfMonthRequiresMonthly(t *testing.T) {
	svc, _, _ := setupExpenseService(t)

	weekly := domain.RecurrenceWeekly
	day := 15
	_, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "subscriptions",
		ItemName:    "Design software",
		ExpenseDate: time.Now(),
		TotalAmount: 120,
		IsRecurring: true,
		Frequency:   &weekly,
		DayOfMonth:  &day,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestExpenseService_Update_ClearsRecurrence(t *testing.T) {
	svc, _, _ := setupExpenseService(t)

	created, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 2000,
		IsRecurring: true,
		Frequency:   monthlyFrequency(),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &domain.UpdateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 2000,
		AmountPaid:  2000,
		IsRecurring: false,
	})
	require.NoError(t, err)

	assert.False(t, updated.IsRecurring)
	assert.Nil(t, updated.Frequency)
	assert.Empty(t, updated.NextOccurrenceDate)
}

func createPendingOccurrence(t *testing.T, svc *service.ExpenseService, repo *repository.ExpenseRepository) *domain.RecurringExpenseOccurrence {
	t.Helper()

	template, err := svc.Create(context.Background(), &domain.CreateExpenseRequest{
		Category:    "rent",
		ItemName:    "Shop rent",
		ExpenseDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 2000,
		IsRecurring: true,
		Frequency:   monthlyFrequency(),
	})
	require.NoError(t, err)

	occ := &domain.RecurringExpenseOccurrence{
		ParentExpenseID: template.ID,
		OccurrenceDate:  time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Status:          domain.OccurrenceStatusPending,
	}
	require.NoError(t, repo.CreateOccurrence(context.Background(), occ))
	return occ
}

func TestExpenseService_CompleteOccurrence(t *testing.T) {
	svc, repo, db := setupExpenseService(t)
	occ := createPendingOccurrence(t, svc, repo)

	completed, err := svc.CompleteOccurrence(context.Background(), occ.ID, &domain.CompleteOccurrenceRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.OccurrenceStatusCompleted, completed.Status)
	require.NotNil(t, completed.LinkedExpenseID)
	assert.Equal(t, "2026-02-15", completed.CompletedDate)

	var linked domain.Expense
	require.NoError(t, db.Where("id = ?", *completed.LinkedExpenseID).First(&linked).Error)
	assert.Equal(t, "Shop rent", linked.ItemName)
	assert.Equal(t, 2000.0, linked.TotalAmount)
	assert.Equal(t, domain.PaymentStatusPaid, linked.PaymentStatus)
	assert.False(t, linked.IsRecurring)
}

func TestExpenseService_CompleteOccurrence_PartialPayment(t *testing.T) {
	svc, repo, db := setupExpenseService(t)
	occ := createPendingOccurrence(t, svc, repo)

	paid := 500.0
	completed, err := svc.CompleteOccurrence(context.Background(), occ.ID, &domain.CompleteOccurrenceRequest{
		AmountPaid: &paid,
	})
	require.NoError(t, err)

	var linked domain.Expense
	require.NoError(t, db.Where("id = ?", *completed.LinkedExpenseID).First(&linked).Error)
	assert.Equal(t, 500.0, linked.AmountPaid)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, linked.PaymentStatus)
}

func TestExpenseService_CompleteOccurrence_Terminal(t *testing.T) {
	svc, repo, _ := setupExpenseService(t)
	occ := createPendingOccurrence(t, svc, repo)

	_, err := svc.CompleteOccurrence(context.Background(), occ.ID, &domain.CompleteOccurrenceRequest{})
	require.NoError(t, err)

	_, err = svc.CompleteOccurrence(context.Background(), occ.ID, &domain.CompleteOccurrenceRequest{})
	assert.ErrorIs(t, err, service.ErrOccurrenceFinal)
}

func TestExpenseService_SkipOccurrence(t *testing.T) {
	svc, repo, db := setupExpenseService(t)
	occ := createPendingOccurrence(t, svc, repo)

	skipped, err := svc.SkipOccurrence(context.Background(), occ.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OccurrenceStatusSkipped, skipped.Status)
	assert.Nil(t, skipped.LinkedExpenseID)

	// Skipping creates no expense row beyond the template
	var count int64
	require.NoError(t, db.Model(&domain.Expense{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.CompleteOccurrence(context.Background(), occ.ID, &domain.CompleteOccurrenceRequest{})
	assert.ErrorIs(t, err, service.ErrOccurrenceFinal)
}
