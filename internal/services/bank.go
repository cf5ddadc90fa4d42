package services

import (
	"time"

	"github.com/ruralpay/banksim/internal/audit"
	"github.com/ruralpay/banksim/internal/config"
)

// Clock returns the current time. Tests pin it to make dates deterministic.
type Clock func() time.Time

type BankOptions struct {
	Argon2 config.Argon2Config
	Audit  AuditLogger
	Clock  Clock
}

// Bank is one independent banking core. Nothing is shared between two Banks.
type Bank struct {
	Directory *DirectoryService
	Log       *TransactionLog
	Ledger    *LedgerService
	Bills     *BillService
	Tickets   *TicketService
}

func NewBank(opts BankOptions) *Bank {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Audit == nil {
		opts.Audit = audit.NewLogger()
	}

	txlog := NewTransactionLog(opts.Clock)
	ledger := NewLedgerService(txlog, opts.Audit, opts.Clock)

	return &Bank{
		Directory: NewDirectoryService(opts.Argon2, opts.Clock),
		Log:       txlog,
		Ledger:    ledger,
		Bills:     NewBillService(ledger),
		Tickets:   NewTicketService(ledger, opts.Clock),
	}
}
