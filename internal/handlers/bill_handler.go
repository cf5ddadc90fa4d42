package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ruralpay/banksim/internal/models"
	"github.com/ruralpay/banksim/internal/services"
	"github.com/shopspring/decimal"
)

type BillHandler struct {
	bills     *services.BillService
	validator *services.ValidationHelper
}

func NewBillHandler(bills *services.BillService) *BillHandler {
	return &BillHandler{
		bills:     bills,
		validator: services.NewValidationHelper(),
	}
}

type RechargeRequest struct {
	Operator           string          `json:"operator" validate:"required"`
	MobileNumber       string          `json:"mobileNumber" validate:"required"`
	Amount             json.RawMessage `json:"amount" swaggertype:"number"`
	TransactionAccount string          `json:"transactionAccount" validate:"required"`
}

type BillPaymentRequest struct {
	CustomerID         string          `json:"customerId" validate:"required"`
	TransactionAccount string          `json:"transactionAccount" validate:"required"`
	Amount             json.RawMessage `json:"amount" swaggertype:"number"`
}

// Recharge godoc
// @Summary Mobile recharge
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RechargeRequest true "Recharge"
// @Success 200 {object} models.RechargeReceipt
// @Router /bills/recharge [post]
func (h *BillHandler) Recharge(w http.ResponseWriter, r *http.Request) {
	var req RechargeRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	amount, ok := parseAmount(w, "BILLS", req.Amount)
	if !ok {
		return
	}

	receipt, err := h.bills.Recharge(req.Operator, req.MobileNumber, amount, req.TransactionAccount)
	if err != nil {
		sendServiceError(w, "BILLS", err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *BillHandler) PayGasBill(w http.ResponseWriter, r *http.Request) {
	h.payBill(w, r, h.bills.PayGasBill)
}

func (h *BillHandler) PayElectricityBill(w http.ResponseWriter, r *http.Request) {
	h.payBill(w, r, h.bills.PayElectricityBill)
}

func (h *BillHandler) PayCableTvBill(w http.ResponseWriter, r *http.Request) {
	h.payBill(w, r, h.bills.PayCableTvBill)
}

func (h *BillHandler) payBill(w http.ResponseWriter, r *http.Request, pay func(string, string, decimal.Decimal) (*models.BillReceipt, error)) {
	var req BillPaymentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	amount, ok := parseAmount(w, "BILLS", req.Amount)
	if !ok {
		return
	}

	receipt, err := pay(req.CustomerID, req.TransactionAccount, amount)
	if err != nil {
		sendServiceError(w, "BILLS", err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
