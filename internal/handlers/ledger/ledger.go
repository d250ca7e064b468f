package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/dto"
	ledgerservice "github.com/mlukyanov/quizpoints/internal/service/ledgerservice"
	"github.com/mlukyanov/quizpoints/pkg/auth"
	"github.com/mlukyanov/quizpoints/pkg/utils"
)

type Service interface {
	CreateAccount(ctx context.Context, userID int) (*domain.Account, error)
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	Credit(ctx context.Context, userID, amount int, description string) (*domain.Account, error)
	Debit(ctx context.Context, userID, amount int, description string) (*domain.Account, error)
	Transfer(ctx context.Context, senderUserID, recipientUserID, amount int, message string) (*domain.Account, error)
	Redeem(ctx context.Context, userID int, itemID string, cost int, effect domain.RedeemEffect) (*domain.Account, error)
}

type LedgerHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// CreateAccount godoc
//
//	@Summary		Create the ledger account
//	@Description	Provision an empty account for the authenticated user. Called once, at signup.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		201	{object}	dto.AccountResponseDTO	"Created account"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/account [post]
func (h *LedgerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	acc, err := h.ledgerService.CreateAccount(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toAccountDTO(acc))
}

// GetAccount godoc
//
//	@Summary		Get current user account
//	@Description	Retrieve the balance, daily transfer usage, stats and unlocks of the authenticated user.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountResponseDTO	"Account state"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Account not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/account [get]
func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	acc, err := h.ledgerService.GetAccount(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(acc))
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	List the authenticated user's ledger transactions, newest first.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO	"Transactions"
//	@Success		204	{object}	utils.Response				"No transactions"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	txns, err := h.ledgerService.GetTransactions(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if len(txns) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No transactions")
		return
	}

	resp := make([]dto.TransactionResponseDTO, 0, len(txns))
	for _, txn := range txns {
		resp = append(resp, dto.TransactionResponseDTO{
			ID:           txn.ID,
			Kind:         string(txn.Kind),
			Amount:       txn.Amount,
			Description:  txn.Description,
			Counterparty: txn.Counterparty,
			CreatedAt:    txn.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Credit godoc
//
//	@Summary		Credit points
//	@Description	Append an earn transaction and raise the balance.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreditRequestDTO	true	"Credit payload"
//	@Success		200		{object}	dto.AccountResponseDTO	"Updated account"
//	@Failure		400		{object}	utils.Response			"Invalid amount"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/ledger/credit [post]
func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.ledgerService.Credit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(acc))
}

// Debit godoc
//
//	@Summary		Debit points
//	@Description	Append a spend transaction and lower the balance.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DebitRequestDTO		true	"Debit payload"
//	@Success		200		{object}	dto.AccountResponseDTO	"Updated account"
//	@Failure		400		{object}	utils.Response			"Invalid amount"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient funds"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/ledger/debit [post]
func (h *LedgerHandler) Debit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DebitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.ledgerService.Debit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(acc))
}

// Transfer godoc
//
//	@Summary		Transfer points to another user
//	@Description	Move points to another user's account, bounded by the daily transfer limit.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer payload"
//	@Success		200		{object}	dto.AccountResponseDTO	"Updated sender account"
//	@Failure		400		{object}	utils.Response			"Invalid amount"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient funds"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		409		{object}	utils.Response			"Transfer conflict"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/ledger/transfer [post]
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.ledgerService.Transfer(r.Context(), userID, req.RecipientID, req.Amount, req.Message)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(acc))
}

// Redeem godoc
//
//	@Summary		Redeem a shop item
//	@Description	Debit the item's cost and apply its effect in one step.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RedeemRequestDTO	true	"Redeem payload"
//	@Success		200		{object}	dto.AccountResponseDTO	"Updated account"
//	@Failure		400		{object}	utils.Response			"Invalid cost"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient funds"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/ledger/redeem [post]
func (h *LedgerHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.RedeemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.ledgerService.Redeem(r.Context(), userID, req.ItemID, req.Cost, domain.RedeemEffect{
		Badge:  req.Effect.Badge,
		Theme:  req.Effect.Theme,
		Tokens: req.Effect.Tokens,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(acc))
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledgerservice.ErrAccountNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrSelfTransfer),
		errors.Is(err, ledgerservice.ErrDailyLimitExceeded),
		errors.Is(err, domain.ErrVersionConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toAccountDTO(acc *domain.Account) dto.AccountResponseDTO {
	return dto.AccountResponseDTO{
		UserID:      acc.UserID,
		Balance:     acc.Balance,
		DailySent:   acc.DailySent,
		GamesPlayed: acc.GamesPlayed,
		GamesWon:    acc.GamesWon,
		Tokens:      acc.Tokens,
		Badges:      acc.Badges,
		Themes:      acc.UnlockedThemes,
	}
}
