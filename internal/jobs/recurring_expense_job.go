package jobs

import (
	"context"
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"go.uber.org/zap"
)

// RecurringExpenseJobName is the name of the recurring expense job
const RecurringExpenseJobName = "recurring_expenses"

// DefaultJobTimeout bounds a single run of the recurring expense pass
const DefaultJobTimeout = 10 * time.Minute

// RecurringExpenseRunner defines the interface for the recurring expense pass.
// This interface allows the job to call the service without importing the
// service package directly.
type RecurringExpenseRunner interface {
	// Run materializes due occurrences and sends reminders for all recurring
	// expense templates, reporting per-template outcomes.
	Run(ctx context.Context, now time.Time) (*domain.BatchReport, error)
}

// RecurringExpenseJob materializes due expense occurrences and sends payment
// reminders for recurring expense templates.
type RecurringExpenseJob struct {
	runner  RecurringExpenseRunner
	logger  *zap.Logger
	timeout time.Duration
}

// NewRecurringExpenseJob creates a new recurring expense job.
// The timeout controls how long a single run is allowed to take.
func NewRecurringExpenseJob(runner RecurringExpenseRunner, logger *zap.Logger, timeout time.Duration) *RecurringExpenseJob {
	return &RecurringExpenseJob{
		runner:  runner,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the recurring expense pass.
// This is called by the scheduler according to the cron expression.
func (j *RecurringExpenseJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting recurring expense job")

	report, err := j.runner.Run(ctx, time.Now())
	if err != nil {
		j.logger.Error("recurring expense job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("recurring expense job completed",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(start)))

	for _, e := range report.Errors {
		j.logger.Warn("recurring expense template failed",
			zap.String("expense_id", e.ID.String()),
			zap.String("error", e.Reason))
	}
}

// RegisterRecurringExpenseJob registers the recurring expense job with the
// scheduler. The cronExpr should be a valid 5-field cron expression
// (e.g. "0 6 * * *" for a daily 06:00 run).
func RegisterRecurringExpenseJob(scheduler *Scheduler, runner RecurringExpenseRunner, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewRecurringExpenseJob(runner, logger, timeout)
	return scheduler.AddJob(RecurringExpenseJobName, cronExpr, job.Run)
}
