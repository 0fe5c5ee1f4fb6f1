package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Account{}, "id = ?", id).Error
}

func (r *AccountRepository) List(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	var accounts []domain.Account
	query := r.db.WithContext(ctx).Model(&domain.Account{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name").Find(&accounts).Error
	return accounts, err
}

// CountTransactions returns the number of ledger entries referencing the
// account. A non-zero count blocks account deletion.
func (r *AccountRepository) CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AccountTransaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// Balance computes the account balance as credits minus debits
func (r *AccountRepository) Balance(ctx context.Context, accountID uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).Model(&domain.AccountTransaction{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END), 0)").
		Scan(&balance).Error
	return balance, err
}

// Transaction operations. The ledger is append-only: no update or delete.

func (r *AccountRepository) CreateTransaction(ctx context.Context, txn *domain.AccountTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// CreateTransactions inserts an allocation batch atomically
func (r *AccountRepository) CreateTransactions(ctx context.Context, txns []domain.AccountTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&txns).Error
	})
}

func (r *AccountRepository) ListTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.AccountTransaction, int64, error) {
	var txns []domain.AccountTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.AccountTransaction{}).
		Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&txns).Error

	return txns, total, err
}
