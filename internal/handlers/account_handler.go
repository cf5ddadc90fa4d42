package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/banksim/internal/models"
	"github.com/ruralpay/banksim/internal/services"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	ledger    *services.LedgerService
	iso       *services.ISO20022Service
	validator *services.ValidationHelper
}

func NewAccountHandler(ledger *services.LedgerService, iso *services.ISO20022Service) *AccountHandler {
	return &AccountHandler{
		ledger:    ledger,
		iso:       iso,
		validator: services.NewValidationHelper(),
	}
}

// CreateAccountRequest keeps the initial balance as text so that malformed
// numbers surface as a field validation error.
type CreateAccountRequest struct {
	AccountNumber  string `json:"accountNumber" validate:"required"`
	HolderName     string `json:"holderName" validate:"required"`
	Type           string `json:"type" validate:"required"`
	InitialBalance string `json:"initialBalance" validate:"required"`
}

// AmountRequest takes the amount as a number or a numeric string.
type AmountRequest struct {
	Amount json.RawMessage `json:"amount" swaggertype:"number"`
}

type TransferRequest struct {
	FromAccount string          `json:"fromAccount" validate:"required"`
	ToAccount   string          `json:"toAccount" validate:"required"`
	Amount      json.RawMessage `json:"amount" swaggertype:"number"`
}

// TransferResponse pairs the receipt with its pacs.008 advice.
type TransferResponse struct {
	*models.TransferReceipt
	MessageType string `json:"messageType"`
	Advice      string `json:"advice"`
}

// ListAccounts godoc
// @Summary List all accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.ListAccounts())
}

// CreateAccount godoc
// @Summary Open a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	acct, err := h.ledger.CreateAccount(req.AccountNumber, req.HolderName, req.Type, req.InitialBalance)
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.ledger.ViewAccountInfo(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	view, err := h.ledger.CheckBalance(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	history, err := h.ledger.ViewTransactionHistory(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} models.BalanceView
// @Router /accounts/{accountNumber}/deposit [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, h.ledger.Deposit)
}

// Withdraw godoc
// @Summary Withdraw from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} models.BalanceView
// @Failure 422 {object} services.ErrorResponse
// @Router /accounts/{accountNumber}/withdraw [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, h.ledger.Withdraw)
}

func (h *AccountHandler) moveFunds(w http.ResponseWriter, r *http.Request, op func(string, decimal.Decimal) (decimal.Decimal, error)) {
	accountNumber := chi.URLParam(r, "accountNumber")

	var req AmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, "LEDGER", req.Amount)
	if !ok {
		return
	}

	balance, err := op(accountNumber, amount)
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}

	// The holder name never changes, so only the balance comes from op.
	acct, err := h.ledger.ViewAccountInfo(accountNumber)
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	writeJSON(w, http.StatusOK, models.BalanceView{
		AccountNumber: acct.AccountNumber,
		HolderName:    acct.HolderName,
		Balance:       balance,
	})
}

// Transfer godoc
// @Summary Transfer between two accounts
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer"
// @Success 200 {object} TransferResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /transfers [post]
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	amount, ok := parseAmount(w, "TRANSFER", req.Amount)
	if !ok {
		return
	}

	receipt, err := h.ledger.Transfer(req.FromAccount, req.ToAccount, amount)
	if err != nil {
		sendServiceError(w, "TRANSFER", err)
		return
	}

	advice, err := h.iso.TransferAdvice(receipt)
	if err != nil {
		// The transfer has already been applied; report it without the advice.
		log.Printf("[TRANSFER] Failed to build pacs.008 advice for %s: %v", receipt.ID, err)
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		TransferReceipt: receipt,
		MessageType:     services.Pacs008MessageType,
		Advice:          advice,
	})
}
