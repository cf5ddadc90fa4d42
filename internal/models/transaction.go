package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the operation that produced a log entry
type TransactionType string

const (
	TxDeposit                 TransactionType = "deposit"
	TxWithdrawal              TransactionType = "withdrawal"
	TxTransferOut             TransactionType = "transfer_out"
	TxTransferIn              TransactionType = "transfer_in"
	TxRecharge                TransactionType = "recharge"
	TxGasBillPayment          TransactionType = "gas_bill_payment"
	TxElectricityBillPayment  TransactionType = "electricity_bill_payment"
	TxCableTVBillPayment      TransactionType = "cable_tv_bill_payment"
	TxTrainTicketBooking      TransactionType = "train_ticket_booking"
	TxTrainTicketCancellation TransactionType = "train_ticket_cancellation"
)

// Credit reports whether entries of this type add to the balance.
func (t TransactionType) Credit() bool {
	switch t {
	case TxDeposit, TxTransferIn, TxTrainTicketCancellation:
		return true
	}
	return false
}

// TransactionEntry is one immutable line of an account's history.
type TransactionEntry struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}
