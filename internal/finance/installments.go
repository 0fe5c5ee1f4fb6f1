package finance

import (
	"errors"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
)

// PlannedInstallment is one generated installment before persistence.
type PlannedInstallment struct {
	InstallmentNumber int
	Amount            float64
	DueDate           time.Time
}

var (
	// ErrInvalidInstallmentCount is returned when the requested count is below 1
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	// ErrMissingFirstPaymentDate is returned when no start date is supplied
	ErrMissingFirstPaymentDate = errors.New("first payment date is required")
	// ErrNonPositiveBalance is returned when there is nothing to schedule
	ErrNonPositiveBalance = errors.New("outstanding balance must be positive")
)

// GeneratePlan splits an outstanding balance into n scheduled installments.
// Installments 1..n-1 carry round2(balance/n); the final installment carries
// the exact remainder so the plan always sums to the balance regardless of
// rounding drift. The first installment is due on firstPaymentDate and each
// subsequent due date steps by the frequency (7 days, 14 days, 1 month, or
// 3 months); an unrecognized frequency falls back to monthly. All
// installments are generated pending.
func GeneratePlan(outstandingBalance float64, totalInstallments int, frequency domain.InstallmentFrequency, firstPaymentDate time.Time) ([]PlannedInstallment, error) {
	if totalInstallments < 1 {
		return nil, ErrInvalidInstallmentCount
	}
	if firstPaymentDate.IsZero() {
		return nil, ErrMissingFirstPaymentDate
	}
	if outstandingBalance <= 0 {
		return nil, ErrNonPositiveBalance
	}

	perInstallment := Round2(outstandingBalance / float64(totalInstallments))

	plan := make([]PlannedInstallment, totalInstallments)
	due := firstPaymentDate
	var scheduled float64
	for i := 0; i < totalInstallments; i++ {
		amount := perInstallment
		if i == totalInstallments-1 {
			amount = Round2(sub(outstandingBalance, scheduled))
		}
		plan[i] = PlannedInstallment{
			InstallmentNumber: i + 1,
			Amount:            amount,
			DueDate:           due,
		}
		scheduled = Round2(scheduled + amount)
		due = nextInstallmentDate(due, frequency)
	}

	return plan, nil
}

func nextInstallmentDate(from time.Time, frequency domain.InstallmentFrequency) time.Time {
	switch frequency {
	case domain.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case domain.FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	case domain.FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	default:
		// monthly, and the fallback for unrecognized values
		return from.AddDate(0, 1, 0)
	}
}
