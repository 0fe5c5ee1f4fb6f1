package handler

import (
	"net/http"
	"strconv"

	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// List godoc
// @Summary List accounts
// @Description Get all ledger accounts with their balances
// @Tags Accounts
// @Produce json
// @Param activeOnly query bool false "Only active accounts"
// @Success 200 {array} domain.AccountDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("activeOnly"))

	accounts, err := h.accountService.List(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "list accounts")
		return
	}

	respondJSON(w, http.StatusOK, accounts)
}

// GetByID godoc
// @Summary Get account by ID
// @Description Get an account with its balance and transaction count
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	account, err := h.accountService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Create godoc
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body domain.CreateAccountRequest true "Account data"
// @Success 201 {object} domain.AccountDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create account")
		return
	}

	w.Header().Set("Location", "/api/v1/accounts/"+account.ID.String())
	respondJSON(w, http.StatusCreated, account)
}

// Update godoc
// @Summary Update account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Param request body domain.UpdateAccountRequest true "Account data"
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Delete godoc
// @Summary Delete account
// @Description Delete an account. Accounts with ledger history cannot be deleted.
// @Tags Accounts
// @Param id path string true "Account ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Account has transactions"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTransactions godoc
// @Summary List account transactions
// @Description Get the account's ledger entries, newest first
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.TransactionDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(r)

	result, err := h.accountService.ListTransactions(r.Context(), id, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "list transactions")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
