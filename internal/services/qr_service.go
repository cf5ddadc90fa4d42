package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// QRService renders the active train ticket of an account as a scannable code.
type QRService struct {
	tickets *TicketService
}

func NewQRService(tickets *TicketService) *QRService {
	return &QRService{tickets: tickets}
}

// TicketQRCode returns the encoded payload and a base64 PNG of the QR code.
func (s *QRService) TicketQRCode(accountNumber string) (string, string, error) {
	ticket, err := s.tickets.ViewTicket(accountNumber)
	if err != nil {
		return "", "", err
	}

	jsonData, err := json.Marshal(map[string]any{
		"pnr":         ticket.PNR,
		"account":     ticket.AccountNumber,
		"from":        ticket.FromStation,
		"to":          ticket.ToStation,
		"travelDate":  ticket.TravelDate,
		"travelClass": ticket.TravelClass,
		"quota":       ticket.Quota,
		"fare":        ticket.Fare.StringFixed(2),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to encode ticket: %w", err)
	}
	payload := base64.URLEncoding.EncodeToString(jsonData)

	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", "", fmt.Errorf("failed to build QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", "", fmt.Errorf("failed to encode QR image: %w", err)
	}

	return payload, base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
