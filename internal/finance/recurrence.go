package finance

import (
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
)

// NextOccurrence advances a recurring expense's occurrence date by one
// period. Weekly steps 7 days. Monthly, quarterly, and yearly steps land on
// the template's day of month (or the current occurrence's day when none is
// configured), clamped to the last day of the target month when the day
// exceeds the month's length (e.g. the 31st in April becomes the 30th).
// An unrecognized frequency steps monthly.
func NextOccurrence(current time.Time, frequency domain.RecurrenceFrequency, dayOfMonth *int) time.Time {
	if frequency == domain.RecurrenceWeekly {
		return current.AddDate(0, 0, 7)
	}

	months := 1
	switch frequency {
	case domain.RecurrenceQuarterly:
		months = 3
	case domain.RecurrenceYearly:
		months = 12
	}

	day := current.Day()
	if dayOfMonth != nil && *dayOfMonth >= 1 && *dayOfMonth <= 31 {
		day = *dayOfMonth
	}

	// Anchor at the first of the month so AddDate cannot spill into the
	// following month, then clamp the day.
	anchor := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
	target := anchor.AddDate(0, months, 0)
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, current.Location())
}

// IsOccurrenceDue reports whether a new occurrence should be generated: the
// next-occurrence date has arrived and the recurrence either has no end date
// or has not passed it.
func IsOccurrenceDue(expense *domain.Expense, now time.Time) bool {
	if !expense.IsRecurring || expense.NextOccurrenceDate == nil {
		return false
	}
	if expense.RecurrenceEndDate != nil && expense.RecurrenceEndDate.Before(now) {
		return false
	}
	return !expense.NextOccurrenceDate.After(now)
}

// ReminderDue reports whether an upcoming-occurrence reminder should fire.
// The check is an exact day-offset equality: the reminder fires only on the
// day where floor(nextOccurrence - now) equals the configured reminderDays,
// so a run that skips that day misses the reminder. An occurrence falling
// after the recurrence end date will never materialize, so it gets no
// reminder either.
func ReminderDue(expense *domain.Expense, now time.Time) bool {
	if !expense.IsRecurring || expense.ReminderDays == nil || expense.NextOccurrenceDate == nil {
		return false
	}
	if expense.RecurrenceEndDate != nil && expense.RecurrenceEndDate.Before(*expense.NextOccurrenceDate) {
		return false
	}
	daysUntil := int(expense.NextOccurrenceDate.Sub(now).Hours() / 24)
	return daysUntil == *expense.ReminderDays
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
