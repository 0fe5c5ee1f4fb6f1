package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, req *domain.CreateExpenseRequest) (*domain.ExpenseDTO, error) {
	expense := &domain.Expense{
		Category:      req.Category,
		ItemName:      req.ItemName,
		ExpenseDate:   req.ExpenseDate,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		PaymentStatus: finance.PaymentStatusFor(req.TotalAmount, req.AmountPaid),
		IsRecurring:   req.IsRecurring,
	}

	if err := applyRecurrence(expense, req.IsRecurring, req.Frequency, req.DayOfMonth, req.RecurrenceEndDate, req.ReminderDays); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.logger.Info("expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.Bool("recurring", expense.IsRecurring),
	)

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*domain.ExpenseDTO, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateExpenseRequest) (*domain.ExpenseDTO, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Category = req.Category
	expense.ItemName = req.ItemName
	expense.ExpenseDate = req.ExpenseDate
	expense.TotalAmount = req.TotalAmount
	expense.AmountPaid = req.AmountPaid
	expense.PaymentStatus = finance.PaymentStatusFor(req.TotalAmount, req.AmountPaid)
	expense.IsRecurring = req.IsRecurring

	if err := applyRecurrence(expense, req.IsRecurring, req.Frequency, req.DayOfMonth, req.RecurrenceEndDate, req.ReminderDays); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("expense deleted", zap.String("expense_id", id.String()))
	return nil
}

func (s *ExpenseService) List(ctx context.Context, page, pageSize int, filter repository.ExpenseFilter) (*domain.PaginatedResponse, error) {
	expenses, total, err := s.expenseRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	dtos := make([]domain.ExpenseDTO, 0, len(expenses))
	for i := range expenses {
		dtos = append(dtos, mapper.ToExpenseDTO(&expenses[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}

// Occurrence operations. Completed and skipped occurrences are terminal;
// any further state change is rejected.

func (s *ExpenseService) ListOccurrences(ctx context.Context, page, pageSize int, filter repository.OccurrenceFilter) (*domain.PaginatedResponse, error) {
	occurrences, total, err := s.expenseRepo.ListOccurrences(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list occurrences: %w", err)
	}

	dtos := make([]domain.OccurrenceDTO, 0, len(occurrences))
	for i := range occurrences {
		dtos = append(dtos, mapper.ToOccurrenceDTO(&occurrences[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}

// CompleteOccurrence turns a pending occurrence into a concrete paid expense.
// The occurrence update and the expense insert happen in one transaction.
func (s *ExpenseService) CompleteOccurrence(ctx context.Context, id uuid.UUID, req *domain.CompleteOccurrenceRequest) (*domain.OccurrenceDTO, error) {
	occ, err := s.expenseRepo.GetOccurrence(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get occurrence: %w", err)
	}
	if occ.Status != domain.OccurrenceStatusPending {
		return nil, ErrOccurrenceFinal
	}
	if occ.ParentExpense == nil {
		return nil, fmt.Errorf("occurrence %s has no parent expense", id)
	}

	completedDate := occ.OccurrenceDate
	if req.CompletedDate != nil {
		completedDate = *req.CompletedDate
	}
	amountPaid := occ.ParentExpense.TotalAmount
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}

	expense := &domain.Expense{
		Category:      occ.ParentExpense.Category,
		ItemName:      occ.ParentExpense.ItemName,
		ExpenseDate:   completedDate,
		TotalAmount:   occ.ParentExpense.TotalAmount,
		AmountPaid:    amountPaid,
		PaymentStatus: finance.PaymentStatusFor(occ.ParentExpense.TotalAmount, amountPaid),
	}

	occ.Status = domain.OccurrenceStatusCompleted
	occ.CompletedDate = &completedDate

	if err := s.expenseRepo.CompleteOccurrence(ctx, occ, expense); err != nil {
		return nil, fmt.Errorf("failed to complete occurrence: %w", err)
	}

	s.logger.Info("occurrence completed",
		zap.String("occurrence_id", occ.ID.String()),
		zap.String("expense_id", expense.ID.String()),
	)

	dto := mapper.ToOccurrenceDTO(occ)
	return &dto, nil
}

// SkipOccurrence marks a pending occurrence skipped without creating an expense
func (s *ExpenseService) SkipOccurrence(ctx context.Context, id uuid.UUID) (*domain.OccurrenceDTO, error) {
	occ, err := s.expenseRepo.GetOccurrence(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get occurrence: %w", err)
	}
	if occ.Status != domain.OccurrenceStatusPending {
		return nil, ErrOccurrenceFinal
	}

	occ.Status = domain.OccurrenceStatusSkipped
	if err := s.expenseRepo.UpdateOccurrence(ctx, occ); err != nil {
		return nil, fmt.Errorf("failed to update occurrence: %w", err)
	}

	dto := mapper.ToOccurrenceDTO(occ)
	return &dto, nil
}

// applyRecurrence validates and sets the recurrence fields. A non-recurring
// expense has all of them cleared; a recurring one gets its next occurrence
// scheduled one period after the expense date.
func applyRecurrence(expense *domain.Expense, isRecurring bool, frequency *domain.RecurrenceFrequency, dayOfMonth *int, endDate *time.Time, reminderDays *int) error {
	if !isRecurring {
		expense.Frequency = nil
		expense.DayOfMonth = nil
		expense.RecurrenceEndDate = nil
		expense.NextOccurrenceDate = nil
		expense.ReminderDays = nil
		return nil
	}

	if frequency == nil {
		return fmt.Errorf("%w: frequency is required for recurring expenses", ErrInvalidInput)
	}
	if !frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, *frequency)
	}
	if dayOfMonth != nil && *frequency != domain.RecurrenceMonthly {
		return fmt.Errorf("%w: day of month only applies to monthly recurrence", ErrInvalidInput)
	}

	expense.Frequency = frequency
	expense.DayOfMonth = dayOfMonth
	expense.RecurrenceEndDate = endDate
	expense.ReminderDays = reminderDays

	next := finance.NextOccurrence(expense.ExpenseDate, *frequency, dayOfMonth)
	expense.NextOccurrenceDate = &next
	return nil
}
