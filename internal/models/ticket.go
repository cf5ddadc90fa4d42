package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrainTicket is the single active booking held against an account
type TrainTicket struct {
	PNR           string          `json:"pnr"`
	AccountNumber string          `json:"accountNumber"`
	FromStation   string          `json:"fromStation"`
	ToStation     string          `json:"toStation"`
	TravelDate    string          `json:"travelDate" example:"2030-01-31"`
	TravelClass   string          `json:"travelClass" example:"2"` // 1 Sleeper, 2 First AC, 3 Second AC, 4 Third AC
	Quota         string          `json:"quota" example:"5"`       // 1 General, 2 Ladies, 3 Sr. Citizen, 4 Handicapped, 5 Tatkal
	Fare          decimal.Decimal `json:"fare"`
	BookedAt      time.Time       `json:"bookedAt"`
}

// TicketRequest carries the booking fields as entered by the caller.
type TicketRequest struct {
	AccountNumber string `json:"accountNumber" validate:"required"`
	FromStation   string `json:"fromStation"`
	ToStation     string `json:"toStation"`
	TravelDate    string `json:"travelDate"`
	TravelClass   string `json:"travelClass"`
	Quota         string `json:"quota"`
}
