package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountService struct {
	accountRepo *repository.AccountRepository
	logger      *zap.Logger
}

func NewAccountService(accountRepo *repository.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (s *AccountService) Create(ctx context.Context, req *domain.CreateAccountRequest) (*domain.AccountDTO, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.Type)
	}

	account := &domain.Account{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(account.Type)),
	)

	dto := mapper.ToAccountDTO(account, 0, 0)
	return &dto, nil
}

func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*domain.AccountDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	balance, err := s.accountRepo.Balance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	count, err := s.accountRepo.CountTransactions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	dto := mapper.ToAccountDTO(account, balance, count)
	return &dto, nil
}

func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAccountRequest) (*domain.AccountDTO, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.Type)
	}

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Name = req.Name
	account.Type = req.Type
	account.Description = req.Description
	account.IsActive = req.IsActive

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete refuses to remove an account with ledger history
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	count, err := s.accountRepo.CountTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		return ErrAccountInUse
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", zap.String("account_id", id.String()))
	return nil
}

func (s *AccountService) List(ctx context.Context, activeOnly bool) ([]domain.AccountDTO, error) {
	accounts, err := s.accountRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	dtos := make([]domain.AccountDTO, 0, len(accounts))
	for i := range accounts {
		balance, err := s.accountRepo.Balance(ctx, accounts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance: %w", err)
		}
		dtos = append(dtos, mapper.ToAccountDTO(&accounts[i], balance, 0))
	}
	return dtos, nil
}

func (s *AccountService) ListTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	txns, total, err := s.accountRepo.ListTransactions(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	dtos := make([]domain.TransactionDTO, 0, len(txns))
	for i := range txns {
		dtos = append(dtos, mapper.ToTransactionDTO(&txns[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}
