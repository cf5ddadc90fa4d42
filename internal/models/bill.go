package models

import "github.com/shopspring/decimal"

// Biller identifies the utility a bill payment goes to
type Biller string

const (
	BillerGas         Biller = "gas"
	BillerElectricity Biller = "electricity"
	BillerCableTV     Biller = "cable_tv"
)

// RechargeReceipt echoes a completed mobile recharge. Nothing is stored beyond the debit.
type RechargeReceipt struct {
	Operator           string          `json:"operator"`
	MobileNumber       string          `json:"mobileNumber"`
	Amount             decimal.Decimal `json:"amount"`
	TransactionAccount string          `json:"transactionAccount"`
	Balance            decimal.Decimal `json:"balance"`
}

type BillReceipt struct {
	Biller             Biller          `json:"biller"`
	CustomerID         string          `json:"customerId"`
	Amount             decimal.Decimal `json:"amount"`
	TransactionAccount string          `json:"transactionAccount"`
	Balance            decimal.Decimal `json:"balance"`
}
