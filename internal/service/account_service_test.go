package service_test

import (
	"context"
	"testing"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAccountService(t *testing.T) (*service.AccountService, *repository.AccountRepository) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAccountRepository(db)
	return service.NewAccountService(repo, zap.NewNop()), repo
}

func TestAccountService_Create(t *testing.T) {
	svc, _ := setupAccountService(t)

	account, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Savings",
		Type: domain.AccountTypeProfit,
	})
	require.NoError(t, err)

	assert.True(t, account.IsActive)
	assert.Equal(t, 0.0, account.Balance)

	_, err = svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Bad",
		Type: "checking",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAccountService_BalanceFromLedger(t *testing.T) {
	svc, repo := setupAccountService(t)

	account, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Savings",
		Type: domain.AccountTypeProfit,
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreateTransactions(context.Background(), []domain.AccountTransaction{
		{AccountID: account.ID, Amount: 500, TransactionType: domain.TransactionCredit, SourceType: domain.SourceProfit},
		{AccountID: account.ID, Amount: 200, TransactionType: domain.TransactionCredit, SourceType: domain.SourceProfit},
		{AccountID: account.ID, Amount: 150, TransactionType: domain.TransactionDebit, SourceType: domain.SourceExpense},
	}))

	got, err := svc.Get(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, 550.0, got.Balance)
	assert.Equal(t, int64(3), got.TransactionCount)
}

func TestAccountService_Delete_RefusesWithLedgerHistory(t *testing.T) {
	svc, repo := setupAccountService(t)

	account, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Savings",
		Type: domain.AccountTypeProfit,
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreateTransaction(context.Background(), &domain.AccountTransaction{
		AccountID:       account.ID,
		Amount:          100,
		TransactionType: domain.TransactionCredit,
		SourceType:      domain.SourceProfit,
	}))

	err = svc.Delete(context.Background(), account.ID)
	assert.ErrorIs(t, err, service.ErrAccountInUse)

	// An account with no history deletes cleanly
	empty, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Scratch",
		Type: domain.AccountTypeCustom,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), empty.ID))

	_, err = svc.Get(context.Background(), empty.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAccountService_List_ActiveOnly(t *testing.T) {
	svc, _ := setupAccountService(t)

	active, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Savings",
		Type: domain.AccountTypeProfit,
	})
	require.NoError(t, err)

	retired, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Old wallet",
		Type: domain.AccountTypeCustom,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), retired.ID, &domain.UpdateAccountRequest{
		Name:     "Old wallet",
		Type:     domain.AccountTypeCustom,
		IsActive: false,
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)
}

func TestAccountService_ListTransactions_Paginated(t *testing.T) {
	svc, repo := setupAccountService(t)

	account, err := svc.Create(context.Background(), &domain.CreateAccountRequest{
		Name: "Savings",
		Type: domain.AccountTypeProfit,
	})
	require.NoError(t, err)

	txns := make([]domain.AccountTransaction, 0, 5)
	for i := 0; i < 5; i++ {
		txns = append(txns, domain.AccountTransaction{
			AccountID:       account.ID,
			Amount:          float64(100 + i),
			TransactionType: domain.TransactionCredit,
			SourceType:      domain.SourceProfit,
		})
	}
	require.NoError(t, repo.CreateTransactions(context.Background(), txns))

	page, err := svc.ListTransactions(context.Background(), account.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
