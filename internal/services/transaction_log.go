package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ruralpay/banksim/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionLog keeps the append-only history of every account, in insertion order.
type TransactionLog struct {
	mu      sync.RWMutex
	entries map[string][]models.TransactionEntry
	now     Clock
}

func NewTransactionLog(now Clock) *TransactionLog {
	return &TransactionLog{
		entries: make(map[string][]models.TransactionEntry),
		now:     now,
	}
}

// Append records one entry and returns it. Entries are never changed afterwards.
func (l *TransactionLog) Append(accountNumber string, txType models.TransactionType, amount decimal.Decimal) models.TransactionEntry {
	entry := models.TransactionEntry{
		ID:            uuid.New().String(),
		AccountNumber: accountNumber,
		Timestamp:     l.now(),
		Type:          txType,
		Amount:        amount,
	}

	l.mu.Lock()
	l.entries[accountNumber] = append(l.entries[accountNumber], entry)
	l.mu.Unlock()

	return entry
}

// History returns a copy of the account's entries, oldest first.
func (l *TransactionLog) History(accountNumber string) ([]models.TransactionEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries, ok := l.entries[accountNumber]
	if !ok || len(entries) == 0 {
		return nil, notFoundError("No transaction history available for this account")
	}
	out := make([]models.TransactionEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (l *TransactionLog) Len(accountNumber string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries[accountNumber])
}
