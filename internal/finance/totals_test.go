package finance_test

import (
	"testing"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotals(t *testing.T) {
	items := []domain.OrderItem{
		{TotalAmount: 150.50},
		{TotalAmount: 49.50},
	}

	t.Run("sums items and payments", func(t *testing.T) {
		payments := []domain.OrderPayment{{Amount: 100}, {Amount: 50}}

		totals := finance.ComputeOrderTotals(items, payments)

		assert.Equal(t, 200.0, totals.TotalAmount)
		assert.Equal(t, 150.0, totals.AmountPaid)
		assert.Equal(t, 50.0, totals.Balance)
		assert.Equal(t, domain.PaymentStatusPartiallyPaid, totals.PaymentStatus)
	})

	t.Run("no payments is unpaid", func(t *testing.T) {
		totals := finance.ComputeOrderTotals(items, nil)

		assert.Equal(t, 200.0, totals.Balance)
		assert.Equal(t, domain.PaymentStatusUnpaid, totals.PaymentStatus)
	})

	t.Run("payments covering the total is paid", func(t *testing.T) {
		payments := []domain.OrderPayment{{Amount: 200}}

		totals := finance.ComputeOrderTotals(items, payments)

		assert.Equal(t, 0.0, totals.Balance)
		assert.Equal(t, domain.PaymentStatusPaid, totals.PaymentStatus)
	})

	t.Run("overpayment stays paid with a negative balance", func(t *testing.T) {
		payments := []domain.OrderPayment{{Amount: 250}}

		totals := finance.ComputeOrderTotals(items, payments)

		assert.Equal(t, -50.0, totals.Balance)
		assert.Equal(t, domain.PaymentStatusPaid, totals.PaymentStatus)
	})

	t.Run("empty order is unpaid even with payments", func(t *testing.T) {
		payments := []domain.OrderPayment{{Amount: 25}}

		totals := finance.ComputeOrderTotals(nil, payments)

		assert.Equal(t, 0.0, totals.TotalAmount)
		assert.Equal(t, domain.PaymentStatusUnpaid, totals.PaymentStatus)
	})

	t.Run("idempotent for the same inputs", func(t *testing.T) {
		payments := []domain.OrderPayment{{Amount: 33.33}, {Amount: 66.67}}

		first := finance.ComputeOrderTotals(items, payments)
		second := finance.ComputeOrderTotals(items, payments)

		assert.Equal(t, first, second)
	})

	t.Run("cent amounts accumulate without float drift", func(t *testing.T) {
		var cents []domain.OrderItem
		for i := 0; i < 10; i++ {
			cents = append(cents, domain.OrderItem{TotalAmount: 0.1})
		}

		totals := finance.ComputeOrderTotals(cents, nil)

		assert.Equal(t, 1.0, totals.TotalAmount)
	})
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, domain.PaymentStatusUnpaid, finance.PaymentStatusFor(100, 0))
	assert.Equal(t, domain.PaymentStatusUnpaid, finance.PaymentStatusFor(0, 0))
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, finance.PaymentStatusFor(100, 99.99))
	assert.Equal(t, domain.PaymentStatusPaid, finance.PaymentStatusFor(100, 100))
	assert.Equal(t, domain.PaymentStatusPaid, finance.PaymentStatusFor(100, 120))
}
