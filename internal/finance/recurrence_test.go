package finance_test

import (
	"testing"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestNextOccurrence(t *testing.T) {
	t.Run("weekly advances seven days", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 3, 10), domain.RecurrenceWeekly, nil)
		assert.Equal(t, date(2026, 3, 17), next)
	})

	t.Run("monthly lands on the configured day", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 3, 15), domain.RecurrenceMonthly, intPtr(20))
		assert.Equal(t, date(2026, 4, 20), next)
	})

	t.Run("monthly keeps the current day without configuration", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 3, 15), domain.RecurrenceMonthly, nil)
		assert.Equal(t, date(2026, 4, 15), next)
	})

	t.Run("day of month clamps to shorter months", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 3, 31), domain.RecurrenceMonthly, intPtr(31))
		assert.Equal(t, date(2026, 4, 30), next)

		next = finance.NextOccurrence(date(2026, 1, 31), domain.RecurrenceMonthly, intPtr(31))
		assert.Equal(t, date(2026, 2, 28), next)
	})

	t.Run("quarterly advances three months", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 1, 10), domain.RecurrenceQuarterly, intPtr(10))
		assert.Equal(t, date(2026, 4, 10), next)
	})

	t.Run("yearly advances twelve months", func(t *testing.T) {
		next := finance.NextOccurrence(date(2026, 6, 5), domain.RecurrenceYearly, nil)
		assert.Equal(t, date(2027, 6, 5), next)
	})

	t.Run("yearly from a leap day clamps next year", func(t *testing.T) {
		next := finance.NextOccurrence(date(2028, 2, 29), domain.RecurrenceYearly, intPtr(29))
		assert.Equal(t, date(2029, 2, 28), next)
	})
}

func TestIsOccurrenceDue(t *testing.T) {
	now := date(2026, 5, 1)

	recurring := func(next time.Time) *domain.Expense {
		return &domain.Expense{IsRecurring: true, NextOccurrenceDate: &next}
	}

	t.Run("due when the next date has arrived", func(t *testing.T) {
		assert.True(t, finance.IsOccurrenceDue(recurring(date(2026, 5, 1)), now))
		assert.True(t, finance.IsOccurrenceDue(recurring(date(2026, 4, 20)), now))
	})

	t.Run("not due before the next date", func(t *testing.T) {
		assert.False(t, finance.IsOccurrenceDue(recurring(date(2026, 5, 2)), now))
	})

	t.Run("not due for non-recurring expenses", func(t *testing.T) {
		next := date(2026, 4, 1)
		assert.False(t, finance.IsOccurrenceDue(&domain.Expense{NextOccurrenceDate: &next}, now))
	})

	t.Run("not due without a next date", func(t *testing.T) {
		assert.False(t, finance.IsOccurrenceDue(&domain.Expense{IsRecurring: true}, now))
	})

	t.Run("not due past the recurrence end date", func(t *testing.T) {
		expense := recurring(date(2026, 4, 20))
		end := date(2026, 4, 30)
		expense.RecurrenceEndDate = &end

		assert.False(t, finance.IsOccurrenceDue(expense, now))
	})

	t.Run("due on the end date itself", func(t *testing.T) {
		expense := recurring(date(2026, 5, 1))
		end := date(2026, 5, 1)
		expense.RecurrenceEndDate = &end

		assert.True(t, finance.IsOccurrenceDue(expense, now))
	})
}

func TestReminderDue(t *testing.T) {
	now := date(2026, 5, 1)

	expense := func(next time.Time, reminderDays int) *domain.Expense {
		return &domain.Expense{
			IsRecurring:        true,
			NextOccurrenceDate: &next,
			ReminderDays:       intPtr(reminderDays),
		}
	}

	t.Run("fires exactly reminderDays before the occurrence", func(t *testing.T) {
		assert.True(t, finance.ReminderDue(expense(date(2026, 5, 4), 3), now))
	})

	t.Run("silent on any other day", func(t *testing.T) {
		assert.False(t, finance.ReminderDue(expense(date(2026, 5, 5), 3), now))
		assert.False(t, finance.ReminderDue(expense(date(2026, 5, 3), 3), now))
	})

	t.Run("silent without reminder configuration", func(t *testing.T) {
		next := date(2026, 5, 4)
		assert.False(t, finance.ReminderDue(&domain.Expense{IsRecurring: true, NextOccurrenceDate: &next}, now))
	})

	t.Run("silent for non-recurring expenses", func(t *testing.T) {
		e := expense(date(2026, 5, 4), 3)
		e.IsRecurring = false
		assert.False(t, finance.ReminderDue(e, now))
	})

	t.Run("silent when the occurrence falls after the end date", func(t *testing.T) {
		e := expense(date(2026, 5, 4), 3)
		end := date(2026, 5, 2)
		e.RecurrenceEndDate = &end
		assert.False(t, finance.ReminderDue(e, now))
	})

	t.Run("fires when the occurrence lands on the end date", func(t *testing.T) {
		e := expense(date(2026, 5, 4), 3)
		end := date(2026, 5, 4)
		e.RecurrenceEndDate = &end
		assert.True(t, finance.ReminderDue(e, now))
	})
}
