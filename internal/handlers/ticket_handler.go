package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/banksim/internal/models"
	"github.com/ruralpay/banksim/internal/services"
)

type TicketHandler struct {
	tickets   *services.TicketService
	validator *services.ValidationHelper
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{
		tickets:   tickets,
		validator: services.NewValidationHelper(),
	}
}

// BookTicket godoc
// @Summary Book a train ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.TicketRequest true "Booking"
// @Success 201 {object} models.TrainTicket
// @Failure 422 {object} services.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req models.TicketRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ticket, err := h.tickets.BookTicket(req)
	if err != nil {
		sendServiceError(w, "TICKETS", err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.tickets.ViewTicket(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "TICKETS", err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// CancelTicket refunds and removes the account's ticket.
func (h *TicketHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.tickets.CancelTicket(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "TICKETS", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Ticket cancelled",
		"ticket":   ticket,
		"refunded": ticket.Fare,
	})
}
