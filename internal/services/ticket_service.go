package services

import (
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ruralpay/banksim/internal/models"
	"github.com/shopspring/decimal"
)

const tatkalQuota = "5"

var (
	classFares = map[string]int64{
		"1": 500,  // Sleeper
		"2": 1500, // First AC
		"3": 1000, // Second AC
		"4": 800,  // Third AC
	}
	tatkalSurcharge = decimal.NewFromInt(500)
)

// FareFor prices a journey by class, adding the Tatkal surcharge for quota 5.
// Unknown classes price at zero; callers validate the class first.
func FareFor(travelClass, quota string) decimal.Decimal {
	fare := decimal.NewFromInt(classFares[travelClass])
	if quota == tatkalQuota {
		fare = fare.Add(tatkalSurcharge)
	}
	return fare
}

// TicketService holds at most one active train ticket per account.
type TicketService struct {
	ledger  *LedgerService
	mu      sync.Mutex
	tickets map[string]models.TrainTicket
	now     Clock
}

func NewTicketService(ledger *LedgerService, now Clock) *TicketService {
	return &TicketService{
		ledger:  ledger,
		tickets: make(map[string]models.TrainTicket),
		now:     now,
	}
}

// BookTicket debits the fare and stores the ticket, replacing any ticket the
// account already holds without refunding it.
func (s *TicketService) BookTicket(req models.TicketRequest) (*models.TrainTicket, error) {
	var booked models.TrainTicket
	err := s.ledger.withAccount(req.AccountNumber, accountMissing, func(a *models.Account) error {
		if err := ValidateStationName("fromStation", req.FromStation); err != nil {
			return err
		}
		if err := ValidateStationName("toStation", req.ToStation); err != nil {
			return err
		}
		now := s.now()
		if err := ValidateTravelDate(req.TravelDate, now); err != nil {
			return err
		}
		if err := ValidateTravelClass(req.TravelClass); err != nil {
			return err
		}
		if err := ValidateQuota(req.Quota); err != nil {
			return err
		}

		fare := FareFor(req.TravelClass, req.Quota)
		if err := s.ledger.debit(a, fare, models.TxTrainTicketBooking, "Insufficient balance to book ticket"); err != nil {
			return err
		}

		booked = models.TrainTicket{
			PNR:           newPNR(),
			AccountNumber: req.AccountNumber,
			FromStation:   req.FromStation,
			ToStation:     req.ToStation,
			TravelDate:    req.TravelDate,
			TravelClass:   req.TravelClass,
			Quota:         req.Quota,
			Fare:          fare,
			BookedAt:      now,
		}

		s.mu.Lock()
		previous, replaced := s.tickets[req.AccountNumber]
		s.tickets[req.AccountNumber] = booked
		s.mu.Unlock()

		if replaced {
			log.Printf("[TICKETS] Ticket %s on %s replaced by %s", previous.PNR, req.AccountNumber, booked.PNR)
		}
		return nil
	})
	if err != nil {
		s.ledger.audit.LogError(req.AccountNumber, string(models.TxTrainTicketBooking), err)
		return nil, err
	}

	log.Printf("[TICKETS] Booked %s for %s: %s to %s on %s, fare %s", booked.PNR, booked.AccountNumber, booked.FromStation, booked.ToStation, booked.TravelDate, booked.Fare)
	return &booked, nil
}

// CancelTicket refunds the fare of the active ticket and removes it.
func (s *TicketService) CancelTicket(accountNumber string) (*models.TrainTicket, error) {
	cancelled, err := s.cancel(accountNumber)
	if err != nil {
		s.ledger.audit.LogError(accountNumber, string(models.TxTrainTicketCancellation), err)
		return nil, err
	}

	log.Printf("[TICKETS] Cancelled %s for %s, refunded %s", cancelled.PNR, accountNumber, cancelled.Fare)
	return cancelled, nil
}

func (s *TicketService) cancel(accountNumber string) (*models.TrainTicket, error) {
	if _, err := s.ViewTicket(accountNumber); err != nil {
		return nil, err
	}

	var cancelled models.TrainTicket
	err := s.ledger.withAccount(accountNumber, accountMissing, func(a *models.Account) error {
		s.mu.Lock()
		ticket, ok := s.tickets[accountNumber]
		delete(s.tickets, accountNumber)
		s.mu.Unlock()
		if !ok {
			return noTicketError()
		}

		s.ledger.credit(a, ticket.Fare, models.TxTrainTicketCancellation)
		cancelled = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (s *TicketService) ViewTicket(accountNumber string) (*models.TrainTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[accountNumber]
	if !ok {
		return nil, noTicketError()
	}
	return &ticket, nil
}

func noTicketError() *BankError {
	return notFoundError("No train ticket booked for this account")
}

func newPNR() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}
