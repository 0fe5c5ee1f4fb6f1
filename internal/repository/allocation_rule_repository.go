package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type AllocationRuleRepository struct {
	db *gorm.DB
}

func NewAllocationRuleRepository(db *gorm.DB) *AllocationRuleRepository {
	return &AllocationRuleRepository{db: db}
}

func (r *AllocationRuleRepository) Create(ctx context.Context, rule *domain.AllocationRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AllocationRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AllocationRule, error) {
	var rule domain.AllocationRule
	err := r.db.WithContext(ctx).Preload("Account").Where("id = ?", id).First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AllocationRuleRepository) Update(ctx context.Context, rule *domain.AllocationRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *AllocationRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AllocationRule{}, "id = ?", id).Error
}

func (r *AllocationRuleRepository) List(ctx context.Context) ([]domain.AllocationRule, error) {
	var rules []domain.AllocationRule
	err := r.db.WithContext(ctx).Preload("Account").
		Order("source_type, percentage DESC").
		Find(&rules).Error
	return rules, err
}

// ListBySource returns the rules configured for a source type
func (r *AllocationRuleRepository) ListBySource(ctx context.Context, sourceType domain.SourceType, activeOnly bool) ([]domain.AllocationRule, error) {
	var rules []domain.AllocationRule
	query := r.db.WithContext(ctx).Preload("Account").
		Where("source_type = ?", sourceType)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("percentage DESC").Find(&rules).Error
	return rules, err
}

// SumActivePercentage totals active rule percentages for a source type,
// optionally excluding one rule. Used for the 100% ceiling check when
// creating or updating a rule.
func (r *AllocationRuleRepository) SumActivePercentage(ctx context.Context, sourceType domain.SourceType, excludeID *uuid.UUID) (float64, error) {
	var sum float64
	query := r.db.WithContext(ctx).Model(&domain.AllocationRule{}).
		Where("source_type = ? AND is_active = ?", sourceType, true)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Select("COALESCE(SUM(percentage), 0)").Scan(&sum).Error
	return sum, err
}
