package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AllocationService manages allocation rules and runs allocations: splitting
// an incoming amount across ledger accounts by the active rule percentages.
type AllocationService struct {
	ruleRepo    *repository.AllocationRuleRepository
	accountRepo *repository.AccountRepository
	logger      *zap.Logger
}

func NewAllocationService(
	ruleRepo *repository.AllocationRuleRepository,
	accountRepo *repository.AccountRepository,
	logger *zap.Logger,
) *AllocationService {
	return &AllocationService{
		ruleRepo:    ruleRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateRule adds an allocation rule. The active percentages for a source
// type may never sum above 100.
func (s *AllocationService) CreateRule(ctx context.Context, req *domain.CreateAllocationRuleRequest) (*domain.AllocationRuleDTO, error) {
	if !req.SourceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, req.SourceType)
	}

	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.checkCeiling(ctx, req.SourceType, req.Percentage, nil); err != nil {
		return nil, err
	}

	rule := &domain.AllocationRule{
		SourceType: req.SourceType,
		AccountID:  req.AccountID,
		Percentage: req.Percentage,
		IsActive:   true,
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create allocation rule: %w", err)
	}

	s.logger.Info("allocation rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("source_type", string(rule.SourceType)),
		zap.Float64("percentage", rule.Percentage),
	)

	return s.GetRule(ctx, rule.ID)
}

func (s *AllocationService) GetRule(ctx context.Context, id uuid.UUID) (*domain.AllocationRuleDTO, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get allocation rule: %w", err)
	}

	dto := mapper.ToAllocationRuleDTO(rule)
	return &dto, nil
}

func (s *AllocationService) UpdateRule(ctx context.Context, id uuid.UUID, req *domain.UpdateAllocationRuleRequest) (*domain.AllocationRuleDTO, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get allocation rule: %w", err)
	}

	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// A rule being deactivated cannot breach the ceiling.
	if req.IsActive {
		if err := s.checkCeiling(ctx, rule.SourceType, req.Percentage, &rule.ID); err != nil {
			return nil, err
		}
	}

	rule.AccountID = req.AccountID
	rule.Percentage = req.Percentage
	rule.IsActive = req.IsActive

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update allocation rule: %w", err)
	}

	return s.GetRule(ctx, id)
}

func (s *AllocationService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ruleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get allocation rule: %w", err)
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete allocation rule: %w", err)
	}

	s.logger.Info("allocation rule deleted", zap.String("rule_id", id.String()))
	return nil
}

func (s *AllocationService) ListRules(ctx context.Context) ([]domain.AllocationRuleDTO, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation rules: %w", err)
	}

	dtos := make([]domain.AllocationRuleDTO, 0, len(rules))
	for i := range rules {
		dtos = append(dtos, mapper.ToAllocationRuleDTO(&rules[i]))
	}
	return dtos, nil
}

// Allocate splits the amount across the active rules for the source type and
// writes the resulting ledger entries in one batch
func (s *AllocationService) Allocate(ctx context.Context, req *domain.AllocateRequest) ([]domain.TransactionDTO, error) {
	if !req.SourceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, req.SourceType)
	}

	rules, err := s.ruleRepo.ListBySource(ctx, req.SourceType, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation rules: %w", err)
	}

	allocations := finance.ComputeAllocations(req.Amount, rules)
	if len(allocations) == 0 {
		return []domain.TransactionDTO{}, nil
	}

	txnType := finance.TransactionTypeFor(req.SourceType)
	txns := make([]domain.AccountTransaction, 0, len(allocations))
	for _, alloc := range allocations {
		txns = append(txns, domain.AccountTransaction{
			AccountID:       alloc.AccountID,
			Amount:          alloc.Amount,
			TransactionType: txnType,
			SourceType:      req.SourceType,
			SourceID:        req.SourceID,
			Description:     req.Description,
		})
	}

	if err := s.accountRepo.CreateTransactions(ctx, txns); err != nil {
		return nil, fmt.Errorf("failed to write ledger entries: %w", err)
	}

	s.logger.Info("allocation executed",
		zap.String("source_type", string(req.SourceType)),
		zap.Float64("amount", req.Amount),
		zap.Int("entries", len(txns)),
	)

	dtos := make([]domain.TransactionDTO, 0, len(txns))
	for i := range txns {
		dtos = append(dtos, mapper.ToTransactionDTO(&txns[i]))
	}
	return dtos, nil
}

// Preview computes the split without writing anything
func (s *AllocationService) Preview(ctx context.Context, req *domain.AllocateRequest) ([]domain.AllocationPreviewDTO, error) {
	if !req.SourceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, req.SourceType)
	}

	rules, err := s.ruleRepo.ListBySource(ctx, req.SourceType, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation rules: %w", err)
	}

	accountNames := make(map[uuid.UUID]string, len(rules))
	for _, rule := range rules {
		if rule.Account != nil {
			accountNames[rule.AccountID] = rule.Account.Name
		}
	}

	allocations := finance.ComputeAllocations(req.Amount, rules)
	previews := make([]domain.AllocationPreviewDTO, 0, len(allocations))
	for _, alloc := range allocations {
		previews = append(previews, domain.AllocationPreviewDTO{
			AccountID:   alloc.AccountID,
			AccountName: accountNames[alloc.AccountID],
			RuleID:      alloc.RuleID,
			Amount:      alloc.Amount,
		})
	}
	return previews, nil
}

func (s *AllocationService) checkCeiling(ctx context.Context, sourceType domain.SourceType, percentage float64, excludeID *uuid.UUID) error {
	current, err := s.ruleRepo.SumActivePercentage(ctx, sourceType, excludeID)
	if err != nil {
		return fmt.Errorf("failed to sum active percentages: %w", err)
	}
	if current+percentage > 100.0+1e-9 {
		return fmt.Errorf("%w: active rules for %s would total %.2f%%", ErrAllocationCeiling, sourceType, current+percentage)
	}
	return nil
}
