package services

import (
	"log"
	"strings"

	"github.com/ruralpay/banksim/internal/models"
	"github.com/shopspring/decimal"
)

const transactionAccountMissing = "Invalid transaction account"

// BillService debits accounts for mobile recharges and utility bills.
// Nothing is kept beyond the debit and its log entry.
type BillService struct {
	ledger *LedgerService
}

func NewBillService(ledger *LedgerService) *BillService {
	return &BillService{ledger: ledger}
}

// Recharge validates operator, mobile number and amount before touching the
// account. The amount must be strictly positive.
func (s *BillService) Recharge(operator, mobileNumber string, amount decimal.Decimal, accountNumber string) (*models.RechargeReceipt, error) {
	if err := ValidateOperator(operator); err != nil {
		return nil, err
	}
	if err := ValidateMobileNumber(mobileNumber); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, validationError("amount", "Invalid recharge amount")
	}

	var balance decimal.Decimal
	err := s.ledger.withAccount(accountNumber, transactionAccountMissing, func(a *models.Account) error {
		if err := s.ledger.debit(a, amount, models.TxRecharge, "Insufficient balance in transaction account"); err != nil {
			return err
		}
		balance = a.Balance
		return nil
	})
	if err != nil {
		s.ledger.audit.LogError(accountNumber, string(models.TxRecharge), err)
		return nil, err
	}

	log.Printf("[BILLS] Recharged %s %s with %s from %s", strings.ToLower(operator), mobileNumber, amount, accountNumber)
	return &models.RechargeReceipt{
		Operator:           strings.ToLower(operator),
		MobileNumber:       mobileNumber,
		Amount:             amount,
		TransactionAccount: accountNumber,
		Balance:            balance,
	}, nil
}

func (s *BillService) PayGasBill(customerID, accountNumber string, amount decimal.Decimal) (*models.BillReceipt, error) {
	return s.payBill(models.BillerGas, models.TxGasBillPayment, customerID, accountNumber, amount)
}

func (s *BillService) PayElectricityBill(customerID, accountNumber string, amount decimal.Decimal) (*models.BillReceipt, error) {
	return s.payBill(models.BillerElectricity, models.TxElectricityBillPayment, customerID, accountNumber, amount)
}

func (s *BillService) PayCableTvBill(customerID, accountNumber string, amount decimal.Decimal) (*models.BillReceipt, error) {
	return s.payBill(models.BillerCableTV, models.TxCableTVBillPayment, customerID, accountNumber, amount)
}

// payBill checks customer ID, then the account, then the amount. A zero
// amount is accepted and still logged.
func (s *BillService) payBill(biller models.Biller, txType models.TransactionType, customerID, accountNumber string, amount decimal.Decimal) (*models.BillReceipt, error) {
	if err := ValidateCustomerID(customerID); err != nil {
		return nil, err
	}

	var balance decimal.Decimal
	err := s.ledger.withAccount(accountNumber, transactionAccountMissing, func(a *models.Account) error {
		if amount.IsNegative() {
			return validationError("amount", "Amount cannot be negative")
		}
		if err := s.ledger.debit(a, amount, txType, "Insufficient balance in transaction account"); err != nil {
			return err
		}
		balance = a.Balance
		return nil
	})
	if err != nil {
		s.ledger.audit.LogError(accountNumber, string(txType), err)
		return nil, err
	}

	log.Printf("[BILLS] Paid %s bill for %s: %s from %s", biller, customerID, amount, accountNumber)
	return &models.BillReceipt{
		Biller:             biller,
		CustomerID:         customerID,
		Amount:             amount,
		TransactionAccount: accountNumber,
		Balance:            balance,
	}, nil
}
