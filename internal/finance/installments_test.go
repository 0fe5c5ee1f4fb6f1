package finance_test

import (
	"testing"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlan(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("splits evenly with remainder on the last installment", func(t *testing.T) {
		plan, err := finance.GeneratePlan(100, 3, domain.FrequencyMonthly, start)

		require.NoError(t, err)
		require.Len(t, plan, 3)
		assert.Equal(t, 33.33, plan[0].Amount)
		assert.Equal(t, 33.33, plan[1].Amount)
		assert.Equal(t, 33.34, plan[2].Amount)
	})

	t.Run("amounts sum exactly to the outstanding balance", func(t *testing.T) {
		cases := []struct {
			balance float64
			count   int
		}{
			{100, 3},
			{999.99, 7},
			{0.05, 4},
			{1234.56, 12},
			{50, 1},
		}

		for _, tc := range cases {
			plan, err := finance.GeneratePlan(tc.balance, tc.count, domain.FrequencyMonthly, start)
			require.NoError(t, err)

			var sum float64
			for _, p := range plan {
				sum = finance.Round2(sum + p.Amount)
			}
			assert.Equal(t, finance.Round2(tc.balance), sum,
				"balance %.2f over %d installments", tc.balance, tc.count)
		}
	})

	t.Run("monthly due dates advance one month apart", func(t *testing.T) {
		plan, err := finance.GeneratePlan(300, 3, domain.FrequencyMonthly, start)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), plan[0].DueDate)
		assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), plan[1].DueDate)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), plan[2].DueDate)
	})

	t.Run("weekly and biweekly due dates", func(t *testing.T) {
		weekly, err := finance.GeneratePlan(90, 3, domain.FrequencyWeekly, start)
		require.NoError(t, err)
		assert.Equal(t, start.AddDate(0, 0, 7), weekly[1].DueDate)
		assert.Equal(t, start.AddDate(0, 0, 14), weekly[2].DueDate)

		biweekly, err := finance.GeneratePlan(90, 2, domain.FrequencyBiweekly, start)
		require.NoError(t, err)
		assert.Equal(t, start.AddDate(0, 0, 14), biweekly[1].DueDate)
	})

	t.Run("quarterly due dates advance three months", func(t *testing.T) {
		plan, err := finance.GeneratePlan(400, 2, domain.FrequencyQuarterly, start)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), plan[1].DueDate)
	})

	t.Run("single installment carries the full balance", func(t *testing.T) {
		plan, err := finance.GeneratePlan(250.50, 1, domain.FrequencyMonthly, start)

		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.Equal(t, 250.50, plan[0].Amount)
		assert.Equal(t, start, plan[0].DueDate)
	})

	t.Run("installments are numbered from one", func(t *testing.T) {
		plan, err := finance.GeneratePlan(600, 4, domain.FrequencyMonthly, start)

		require.NoError(t, err)
		for i, p := range plan {
			assert.Equal(t, i+1, p.InstallmentNumber)
		}
	})

	t.Run("rejects non-positive installment count", func(t *testing.T) {
		_, err := finance.GeneratePlan(100, 0, domain.FrequencyMonthly, start)
		assert.ErrorIs(t, err, finance.ErrInvalidInstallmentCount)

		_, err = finance.GeneratePlan(100, -2, domain.FrequencyMonthly, start)
		assert.ErrorIs(t, err, finance.ErrInvalidInstallmentCount)
	})

	t.Run("rejects non-positive balance", func(t *testing.T) {
		_, err := finance.GeneratePlan(0, 3, domain.FrequencyMonthly, start)
		assert.ErrorIs(t, err, finance.ErrNonPositiveBalance)
	})

	t.Run("rejects zero first payment date", func(t *testing.T) {
		_, err := finance.GeneratePlan(100, 3, domain.FrequencyMonthly, time.Time{})
		assert.ErrorIs(t, err, finance.ErrMissingFirstPaymentDate)
	})
}
