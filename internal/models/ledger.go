package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of a ledger account
type AccountType string

const (
	AccountTypeSavings    AccountType = "savings"
	AccountTypeChecking   AccountType = "checking"
	AccountTypeInvestment AccountType = "investment"
)

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeInvestment:
		return true
	}
	return false
}

type Account struct {
	AccountNumber string          `json:"accountNumber" example:"123456789"`
	HolderName    string          `json:"holderName" example:"Jane Doe"`
	Type          AccountType     `json:"type" example:"savings"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BalanceView is the result of a balance enquiry
type BalanceView struct {
	AccountNumber string          `json:"accountNumber"`
	HolderName    string          `json:"holderName"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransferReceipt describes a completed transfer between two accounts.
type TransferReceipt struct {
	ID          string          `json:"id"`
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	FromBalance decimal.Decimal `json:"fromBalance"`
	ToBalance   decimal.Decimal `json:"toBalance"`
	Timestamp   time.Time       `json:"timestamp"`
}
