package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Expense{}, "id = ?", id).Error
}

// ExpenseFilter narrows List results
type ExpenseFilter struct {
	Category      string
	PaymentStatus *domain.PaymentStatus
	IsRecurring   *bool
	From          *time.Time
	To            *time.Time
	Search        string
}

func (r *ExpenseRepository) List(ctx context.Context, page, pageSize int, filter ExpenseFilter) ([]domain.Expense, int64, error) {
	var expenses []domain.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Expense{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.IsRecurring != nil {
		query = query.Where("is_recurring = ?", *filter.IsRecurring)
	}
	if filter.From != nil {
		query = query.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("expense_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(item_name) LIKE ? OR LOWER(category) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("expense_date DESC").Find(&expenses).Error

	return expenses, total, err
}

// ListRecurringTemplates returns all recurring expense templates. The daily
// job walks this set; due and reminder checks happen in the service.
func (r *ExpenseRepository) ListRecurringTemplates(ctx context.Context) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Order("next_occurrence_date").
		Find(&expenses).Error
	return expenses, err
}

// Occurrence operations

func (r *ExpenseRepository) CreateOccurrence(ctx context.Context, occ *domain.RecurringExpenseOccurrence) error {
	return r.db.WithContext(ctx).Create(occ).Error
}

func (r *ExpenseRepository) GetOccurrence(ctx context.Context, id uuid.UUID) (*domain.RecurringExpenseOccurrence, error) {
	var occ domain.RecurringExpenseOccurrence
	err := r.db.WithContext(ctx).Preload("ParentExpense").Where("id = ?", id).First(&occ).Error
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (r *ExpenseRepository) UpdateOccurrence(ctx context.Context, occ *domain.RecurringExpenseOccurrence) error {
	return r.db.WithContext(ctx).Save(occ).Error
}

// CompleteOccurrence creates the linked expense row and marks the occurrence
// completed in one transaction, so a crash cannot leave a completed
// occurrence without its expense.
func (r *ExpenseRepository) CompleteOccurrence(ctx context.Context, occ *domain.RecurringExpenseOccurrence, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		occ.Status = domain.OccurrenceStatusCompleted
		occ.LinkedExpenseID = &expense.ID
		return tx.Save(occ).Error
	})
}

// OccurrenceExists reports whether the template already has an occurrence on
// the given date. The generator uses this to stay idempotent across runs.
func (r *ExpenseRepository) OccurrenceExists(ctx context.Context, parentExpenseID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RecurringExpenseOccurrence{}).
		Where("parent_expense_id = ? AND occurrence_date = ?", parentExpenseID, date).
		Count(&count).Error
	return count > 0, err
}

// OccurrenceFilter narrows ListOccurrences results
type OccurrenceFilter struct {
	ParentExpenseID *uuid.UUID
	Status          *domain.OccurrenceStatus
	From            *time.Time
	To              *time.Time
}

func (r *ExpenseRepository) ListOccurrences(ctx context.Context, page, pageSize int, filter OccurrenceFilter) ([]domain.RecurringExpenseOccurrence, int64, error) {
	var occurrences []domain.RecurringExpenseOccurrence
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.RecurringExpenseOccurrence{})

	if filter.ParentExpenseID != nil {
		query = query.Where("parent_expense_id = ?", *filter.ParentExpenseID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("occurrence_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurrence_date <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("ParentExpense").
		Offset(offset).Limit(pageSize).
		Order("occurrence_date DESC").
		Find(&occurrences).Error

	return occurrences, total, err
}
