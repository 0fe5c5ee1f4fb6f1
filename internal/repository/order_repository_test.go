package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_RecomputeTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	client := testutil.CreateTestClient(t, db, "Ama Serwaa")
	order := testutil.CreateTestOrder(t, db, client.ID)

	require.NoError(t, repo.AddItem(context.Background(), &domain.OrderItem{
		OrderID:     order.ID,
		ItemName:    "Business cards",
		Quantity:    2,
		UnitPrice:   100,
		TotalAmount: 200,
	}))
	require.NoError(t, repo.AddItem(context.Background(), &domain.OrderItem{
		OrderID:     order.ID,
		ItemName:    "Flyers",
		Quantity:    1,
		UnitPrice:   50,
		TotalAmount: 50,
	}))
	require.NoError(t, repo.AddPayment(context.Background(), &domain.OrderPayment{
		OrderID:     order.ID,
		Amount:      100,
		PaymentDate: time.Now(),
	}))

	totals, err := repo.RecomputeTotals(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, 250.0, totals.TotalAmount)
	assert.Equal(t, 100.0, totals.AmountPaid)
	assert.Equal(t, 150.0, totals.Balance)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, totals.PaymentStatus)

	// The stored row reflects the recomputed values
	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, stored.TotalAmount)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, stored.PaymentStatus)
}

func TestOrderRepository_RecomputeTotals_Overpayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	client := testutil.CreateTestClient(t, db, "Kwame Mensah")
	order := testutil.CreateTestOrder(t, db, client.ID)

	require.NoError(t, repo.AddItem(context.Background(), &domain.OrderItem{
		OrderID:     order.ID,
		ItemName:    "Banner",
		Quantity:    1,
		UnitPrice:   300,
		TotalAmount: 300,
	}))
	require.NoError(t, repo.AddPayment(context.Background(), &domain.OrderPayment{
		OrderID:     order.ID,
		Amount:      350,
		PaymentDate: time.Now(),
	}))

	totals, err := repo.RecomputeTotals(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPaid, totals.PaymentStatus)
	assert.Equal(t, -50.0, totals.Balance)
}
