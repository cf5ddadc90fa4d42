package services

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/ruralpay/banksim/internal/audit"
	"github.com/ruralpay/banksim/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogTransfer(transactionID, fromAccount, toAccount string, amount decimal.Decimal, status string) {
	m.Called(transactionID, fromAccount, toAccount, amount, status)
}

func (m *MockAuditLogger) LogOperation(transactionID, accountNumber, operation string, amount decimal.Decimal) {
	m.Called(transactionID, accountNumber, operation, amount)
}

func (m *MockAuditLogger) LogError(accountNumber, operation string, err error) {
	m.Called(accountNumber, operation, err)
}

// fixedNow is the pinned test clock: 2030-06-15 10:00 UTC.
var fixedNow = time.Date(2030, time.June, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// cheapArgon2 keeps password hashing fast in tests.
var cheapArgon2 = config.Argon2Config{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8}

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	return NewBank(BankOptions{
		Argon2: cheapArgon2,
		Audit:  audit.NewLoggerTo(log.New(io.Discard, "", 0)),
		Clock:  fixedClock,
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
