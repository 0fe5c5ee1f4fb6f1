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
)

func setupMaterialService(t *testing.T) *service.MaterialService {
	db := testutil.SetupTestDB(t)
	return service.NewMaterialService(repository.NewMaterialRepository(db), zap.NewNop())
}

func createTestPurchase(t *testing.T, svc *service.MaterialService, quantity, unitPrice float64) *domain.MaterialPurchaseDTO {
	t.Helper()

	purchase, err := svc.Create(context.Background(), &domain.CreateMaterialPurchaseRequest{
		SupplierName: "Accra Print Supplies",
		MaterialName: "Vinyl rolls",
		PurchaseDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
	})
	require.NoError(t, err)
	return purchase
}

func TestMaterialService_Create_ComputesTotal(t *testing.T) {
	svc := setupMaterialService(t)

	purchase := createTestPurchase(t, svc, 12, 75.5)
	assert.Equal(t, 906.0, purchase.TotalAmount)
	assert.Equal(t, 0.0, purchase.AmountPaid)
	assert.Equal(t, 906.0, purchase.Balance)
	assert.Equal(t, domain.PaymentStatusUnpaid, purchase.PaymentStatus)
}

func TestMaterialService_AddPayment_DrivesPaymentStatus(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 10, 50)

	purchase, err := svc.AddPayment(context.Background(), purchase.ID, &domain.CreatePaymentRequest{
		Amount:      200,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, purchase.PaymentStatus)
	assert.Equal(t, 200.0, purchase.AmountPaid)
	assert.Equal(t, 300.0, purchase.Balance)

	purchase, err = svc.AddPayment(context.Background(), purchase.ID, &domain.CreatePaymentRequest{
		Amount:      300,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, purchase.PaymentStatus)
	assert.Equal(t, 0.0, purchase.Balance)
}

func TestMaterialService_DeletePayment_Recomputes(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 10, 50)

	purchase, err := svc.AddPayment(context.Background(), purchase.ID, &domain.CreatePaymentRequest{
		Amount:      500,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusPaid, purchase.PaymentStatus)
	require.Len(t, purchase.Payments, 1)

	purchase, err = svc.DeletePayment(context.Background(), purchase.ID, purchase.Payments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusUnpaid, purchase.PaymentStatus)
	assert.Equal(t, 0.0, purchase.AmountPaid)
}

func TestMaterialService_GenerateInstallments_SumsToOutstanding(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 1, 1000)

	// 1000 total, 300 paid: the plan must cover the 700 outstanding
	_, err := svc.AddPayment(context.Background(), purchase.ID, &domain.CreatePaymentRequest{
		Amount:      300,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	purchase, err = svc.GenerateInstallments(context.Background(), purchase.ID, &domain.GenerateInstallmentsRequest{
		TotalInstallments: 3,
		Frequency:         domain.FrequencyMonthly,
		FirstPaymentDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, purchase.Installments, 3)

	var sum float64
	for _, inst := range purchase.Installments {
		sum += inst.Amount
		assert.Equal(t, domain.InstallmentStatusPending, inst.Status)
	}
	assert.InDelta(t, 700.0, sum, 0.001)

	// The last installment absorbs the rounding remainder: 233.33 + 233.33 + 233.34
	assert.Equal(t, 233.34, purchase.Installments[2].Amount)
}

func TestMaterialService_GenerateInstallments_NothingOutstanding(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 1, 400)

	_, err := svc.AddPayment(context.Background(), purchase.ID, &domain.CreatePaymentRequest{
		Amount:      400,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.GenerateInstallments(context.Background(), purchase.ID, &domain.GenerateInstallmentsRequest{
		TotalInstallments: 2,
		Frequency:         domain.FrequencyMonthly,
		FirstPaymentDate:  time.Now(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestMaterialService_GenerateInstallments_ReplacesExistingPlan(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 1, 600)

	first := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	purchase, err := svc.GenerateInstallments(context.Background(), purchase.ID, &domain.GenerateInstallmentsRequest{
		TotalInstallments: 6,
		Frequency:         domain.FrequencyWeekly,
		FirstPaymentDate:  first,
	})
	require.NoError(t, err)
	require.Len(t, purchase.Installments, 6)

	purchase, err = svc.GenerateInstallments(context.Background(), purchase.ID, &domain.GenerateInstallmentsRequest{
		TotalInstallments: 2,
		Frequency:         domain.FrequencyMonthly,
		FirstPaymentDate:  first,
	})
	require.NoError(t, err)
	assert.Len(t, purchase.Installments, 2)
	assert.Equal(t, 300.0, purchase.Installments[0].Amount)
}

func TestMaterialService_UpdateInstallmentStatus(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 1, 500)

	purchase, err := svc.GenerateInstallments(context.Background(), purchase.ID, &domain.GenerateInstallmentsRequest{
		TotalInstallments: 2,
		Frequency:         domain.FrequencyMonthly,
		FirstPaymentDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	purchase, err = svc.UpdateInstallmentStatus(context.Background(), purchase.ID, purchase.Installments[0].ID, domain.InstallmentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPaid, purchase.Installments[0].Status)

	_, err = svc.UpdateInstallmentStatus(context.Background(), purchase.ID, purchase.Installments[0].ID, "cancelled")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestMaterialService_Notes(t *testing.T) {
	svc := setupMaterialService(t)
	purchase := createTestPurchase(t, svc, 2, 40)

	purchase, err := svc.AddNote(context.Background(), purchase.ID, &domain.CreateMaterialNoteRequest{
		Body: "Supplier promised delivery by Friday",
	}, "Kofi")
	require.NoError(t, err)
	require.Len(t, purchase.Notes, 1)
	assert.Equal(t, "Kofi", purchase.Notes[0].AuthorName)

	require.NoError(t, svc.DeleteNote(context.Background(), purchase.ID, purchase.Notes[0].ID))

	got, err := svc.Get(context.Background(), purchase.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}
