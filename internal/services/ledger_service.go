package services

import (
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ruralpay/banksim/internal/models"
	"github.com/shopspring/decimal"
)

const accountMissing = "Account does not exist"

// AuditLogger receives one event per completed or rejected balance mutation.
type AuditLogger interface {
	LogTransfer(transactionID, fromAccount, toAccount string, amount decimal.Decimal, status string)
	LogOperation(transactionID, accountNumber, operation string, amount decimal.Decimal)
	LogError(accountNumber, operation string, err error)
}

// ledgerAccount pairs an account with the lock that guards its balance.
type ledgerAccount struct {
	mu      sync.Mutex
	account models.Account
}

// LedgerService owns every bank account. The map is guarded by mu; each
// balance is guarded by its own account lock, and multi-account operations
// take those locks in ascending account-number order.
type LedgerService struct {
	mu       sync.RWMutex
	accounts map[string]*ledgerAccount
	txlog    *TransactionLog
	audit    AuditLogger
	now      Clock
}

func NewLedgerService(txlog *TransactionLog, audit AuditLogger, now Clock) *LedgerService {
	return &LedgerService{
		accounts: make(map[string]*ledgerAccount),
		txlog:    txlog,
		audit:    audit,
		now:      now,
	}
}

// CreateAccount validates all four fields in order and opens the account
// with the given balance. No transaction entry is written for the opening balance.
func (s *LedgerService) CreateAccount(accountNumber, holderName, accountType, initialBalance string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.accounts[accountNumber]
	if err := ValidateAccountNumber(accountNumber, exists); err != nil {
		return nil, err
	}
	if err := ValidateAccountHolder(holderName); err != nil {
		return nil, err
	}
	acctType, err := ValidateAccountType(accountType)
	if err != nil {
		return nil, err
	}
	balance, err := ValidateInitialBalance(initialBalance)
	if err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, validationError("initialBalance", "Initial balance must be non-negative")
	}

	now := s.now()
	la := &ledgerAccount{account: models.Account{
		AccountNumber: accountNumber,
		HolderName:    holderName,
		Type:          acctType,
		Balance:       balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}}
	s.accounts[accountNumber] = la

	log.Printf("[LEDGER] Account %s opened (%s) with balance %s", accountNumber, acctType, balance)
	s.audit.LogOperation("", accountNumber, "account_opened", balance)

	acct := la.account
	return &acct, nil
}

// Deposit credits a positive amount and returns the new balance.
func (s *LedgerService) Deposit(accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.withAccount(accountNumber, accountMissing, func(a *models.Account) error {
		if !amount.IsPositive() {
			return validationError("amount", "Amount to deposit must be positive")
		}
		s.credit(a, amount, models.TxDeposit)
		balance = a.Balance
		return nil
	})
	if err != nil {
		s.audit.LogError(accountNumber, string(models.TxDeposit), err)
		return decimal.Zero, err
	}
	return balance, nil
}

// Withdraw debits a positive amount and returns the new balance.
// The balance is left untouched when it does not cover the amount.
func (s *LedgerService) Withdraw(accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.withAccount(accountNumber, accountMissing, func(a *models.Account) error {
		if !amount.IsPositive() {
			return validationError("amount", "Amount to withdraw must be positive")
		}
		if err := s.debit(a, amount, models.TxWithdrawal, "Insufficient balance."); err != nil {
			return err
		}
		balance = a.Balance
		return nil
	})
	if err != nil {
		s.audit.LogError(accountNumber, string(models.TxWithdrawal), err)
		return decimal.Zero, err
	}
	return balance, nil
}

// Transfer moves amount from one account to another. Both legs are applied
// and logged while both account locks are held, so no partial state is visible.
func (s *LedgerService) Transfer(fromAccount, toAccount string, amount decimal.Decimal) (*models.TransferReceipt, error) {
	from, ok := s.lookup(fromAccount)
	if !ok {
		return nil, notFoundError("Sender account does not exist")
	}
	to, ok := s.lookup(toAccount)
	if !ok {
		return nil, notFoundError("Recipient account does not exist")
	}
	if !amount.IsPositive() {
		return nil, validationError("amount", "Amount to transfer must be positive")
	}

	unlock := lockPair(from, to)
	defer unlock()

	transferID := uuid.New().String()
	if from.account.Balance.LessThan(amount) {
		err := insufficientFundsError("Insufficient balance for transfer")
		s.audit.LogTransfer(transferID, fromAccount, toAccount, amount, "FAILED")
		return nil, err
	}

	from.account.Balance = from.account.Balance.Sub(amount)
	to.account.Balance = to.account.Balance.Add(amount)
	now := s.now()
	from.account.UpdatedAt = now
	to.account.UpdatedAt = now
	s.txlog.Append(fromAccount, models.TxTransferOut, amount)
	s.txlog.Append(toAccount, models.TxTransferIn, amount)

	s.audit.LogTransfer(transferID, fromAccount, toAccount, amount, "SUCCESS")
	log.Printf("[LEDGER] Transferred %s from %s to %s", amount, fromAccount, toAccount)

	return &models.TransferReceipt{
		ID:          transferID,
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
		FromBalance: from.account.Balance,
		ToBalance:   to.account.Balance,
		Timestamp:   now,
	}, nil
}

func (s *LedgerService) CheckBalance(accountNumber string) (*models.BalanceView, error) {
	acct, err := s.ViewAccountInfo(accountNumber)
	if err != nil {
		return nil, err
	}
	return &models.BalanceView{
		AccountNumber: acct.AccountNumber,
		HolderName:    acct.HolderName,
		Balance:       acct.Balance,
	}, nil
}

// ViewAccountInfo returns a snapshot copy of the account.
func (s *LedgerService) ViewAccountInfo(accountNumber string) (*models.Account, error) {
	la, ok := s.lookup(accountNumber)
	if !ok {
		return nil, notFoundError(accountMissing)
	}
	la.mu.Lock()
	acct := la.account
	la.mu.Unlock()
	return &acct, nil
}

// ViewTransactionHistory fails with NotFound while the account has no entries,
// even when the account itself exists.
func (s *LedgerService) ViewTransactionHistory(accountNumber string) ([]models.TransactionEntry, error) {
	return s.txlog.History(accountNumber)
}

// ListAccounts returns snapshots of every account ordered by account number.
func (s *LedgerService) ListAccounts() []models.Account {
	s.mu.RLock()
	all := make([]*ledgerAccount, 0, len(s.accounts))
	for _, la := range s.accounts {
		all = append(all, la)
	}
	s.mu.RUnlock()

	out := make([]models.Account, 0, len(all))
	for _, la := range all {
		la.mu.Lock()
		out = append(out, la.account)
		la.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

func (s *LedgerService) lookup(accountNumber string) (*ledgerAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	la, ok := s.accounts[accountNumber]
	return la, ok
}

// withAccount runs fn with the account locked. missing is the NotFound message
// used when the account does not exist.
func (s *LedgerService) withAccount(accountNumber, missing string, fn func(a *models.Account) error) error {
	la, ok := s.lookup(accountNumber)
	if !ok {
		return notFoundError(missing)
	}
	la.mu.Lock()
	defer la.mu.Unlock()
	return fn(&la.account)
}

// debit must be called with the account locked.
func (s *LedgerService) debit(a *models.Account, amount decimal.Decimal, txType models.TransactionType, insufficient string) error {
	if a.Balance.LessThan(amount) {
		return insufficientFundsError(insufficient)
	}
	a.Balance = a.Balance.Sub(amount)
	s.record(a, txType, amount)
	return nil
}

// credit must be called with the account locked.
func (s *LedgerService) credit(a *models.Account, amount decimal.Decimal, txType models.TransactionType) {
	a.Balance = a.Balance.Add(amount)
	s.record(a, txType, amount)
}

// record appends the history entry and audits it. History keeps the amount
// unsigned while the audit line carries debits as negative.
func (s *LedgerService) record(a *models.Account, txType models.TransactionType, amount decimal.Decimal) {
	a.UpdatedAt = s.now()
	entry := s.txlog.Append(a.AccountNumber, txType, amount)
	signed := amount
	if !txType.Credit() {
		signed = amount.Neg()
	}
	s.audit.LogOperation(entry.ID, a.AccountNumber, string(txType), signed)
}

// lockPair locks both accounts, lower account number first, and returns the
// matching unlock. A transfer to the same account takes the lock once.
func lockPair(a, b *ledgerAccount) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if a.account.AccountNumber > b.account.AccountNumber {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
