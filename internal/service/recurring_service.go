package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// RecurringExpenseService runs the daily recurring expense sweep: it
// materializes due occurrences from recurring templates, advances their
// schedules, and fans out reminders.
type RecurringExpenseService struct {
	expenseRepo   *repository.ExpenseRepository
	notifications *NotificationService
	logger        *zap.Logger
}

func NewRecurringExpenseService(
	expenseRepo *repository.ExpenseRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *RecurringExpenseService {
	return &RecurringExpenseService{
		expenseRepo:   expenseRepo,
		notifications: notifications,
		logger:        logger,
	}
}

type templateOutcome struct {
	OccurrenceCreated bool
	ReminderSent      bool
}

// Run processes all recurring templates once. One broken template never stops
// the sweep; its failure is recorded in the report and the rest continue.
func (s *RecurringExpenseService) Run(ctx context.Context, now time.Time) (*domain.BatchReport, error) {
	templates, err := s.expenseRepo.ListRecurringTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	report := &domain.BatchReport{Processed: len(templates)}
	created, reminded := 0, 0

	for i := range templates {
		template := &templates[i]
		result := s.processTemplate(ctx, template, now)
		if !result.Ok() {
			report.Failed++
			report.Errors = append(report.Errors, domain.BatchItemError{
				ID:     template.ID,
				Reason: result.Err.Error(),
			})
			s.logger.Warn("recurring template failed",
				zap.String("expense_id", template.ID.String()),
				zap.Error(result.Err),
			)
			continue
		}
		report.Succeeded++
		if result.Value.OccurrenceCreated {
			created++
		}
		if result.Value.ReminderSent {
			reminded++
		}
	}

	s.logger.Info("recurring expense sweep finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int("occurrences_created", created),
		zap.Int("reminders_sent", reminded),
	)
	return report, nil
}

func (s *RecurringExpenseService) processTemplate(ctx context.Context, template *domain.Expense, now time.Time) finance.BestEffort[templateOutcome] {
	var outcome templateOutcome

	if finance.IsOccurrenceDue(template, now) {
		created, err := s.materializeOccurrence(ctx, template, now)
		if err != nil {
			return finance.Fail[templateOutcome](err)
		}
		outcome.OccurrenceCreated = created
	}

	if finance.ReminderDue(template, now) {
		if err := s.sendReminder(ctx, template); err != nil {
			return finance.Fail[templateOutcome](err)
		}
		outcome.ReminderSent = true
	}

	return finance.Succeed(outcome)
}

// materializeOccurrence creates the due occurrence unless one already exists
// for that date, then advances the template's schedule past now. A template
// that missed several sweeps catches up in one step: only the current due
// date is materialized, the skipped periods are not backfilled. Re-running
// the sweep on the same day is a no-op.
func (s *RecurringExpenseService) materializeOccurrence(ctx context.Context, template *domain.Expense, now time.Time) (bool, error) {
	dueDate := *template.NextOccurrenceDate

	exists, err := s.expenseRepo.OccurrenceExists(ctx, template.ID, dueDate)
	if err != nil {
		return false, fmt.Errorf("failed to check occurrence: %w", err)
	}

	created := false
	if !exists {
		occ := &domain.RecurringExpenseOccurrence{
			ParentExpenseID: template.ID,
			OccurrenceDate:  dueDate,
			Status:          domain.OccurrenceStatusPending,
		}
		if err := s.expenseRepo.CreateOccurrence(ctx, occ); err != nil {
			return false, fmt.Errorf("failed to create occurrence: %w", err)
		}
		created = true

		occID := occ.ID
		err := s.notifications.NotifyAll(ctx, domain.Notification{
			Type:       string(domain.NotificationTypeOccurrenceDue),
			Title:      "Recurring expense due",
			Message:    fmt.Sprintf("%s (%s) is due on %s", template.ItemName, template.Category, dueDate.Format("2006-01-02")),
			EntityID:   &occID,
			EntityType: "occurrence",
		})
		if err != nil {
			s.logger.Warn("failed to send occurrence notification",
				zap.String("occurrence_id", occ.ID.String()),
				zap.Error(err),
			)
		}
	}

	next := finance.NextOccurrence(dueDate, *template.Frequency, template.DayOfMonth)
	for !next.After(now) {
		next = finance.NextOccurrence(next, *template.Frequency, template.DayOfMonth)
	}
	template.NextOccurrenceDate = &next
	if err := s.expenseRepo.Update(ctx, template); err != nil {
		return created, fmt.Errorf("failed to advance schedule: %w", err)
	}

	return created, nil
}

func (s *RecurringExpenseService) sendReminder(ctx context.Context, template *domain.Expense) error {
	templateID := template.ID
	err := s.notifications.NotifyAll(ctx, domain.Notification{
		Type:       string(domain.NotificationTypeExpenseReminder),
		Title:      "Upcoming recurring expense",
		Message:    fmt.Sprintf("%s (%s) is due on %s", template.ItemName, template.Category, template.NextOccurrenceDate.Format("2006-01-02")),
		EntityID:   &templateID,
		EntityType: "expense",
	})
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
