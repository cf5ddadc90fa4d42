package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/banksim/internal/services"
)

type QRHandler struct {
	service *services.QRService
}

func NewQRHandler(service *services.QRService) *QRHandler {
	return &QRHandler{service: service}
}

// GetTicketQR renders the account's active ticket as a QR code
// @Summary Ticket QR Code
// @Description Generate a QR code for the active train ticket of an account
// @Tags QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{qrCode=string,qrImage=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /tickets/{accountNumber}/qr [get]
func (h *QRHandler) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	qrCode, qrImage, err := h.service.TicketQRCode(chi.URLParam(r, "accountNumber"))
	if err != nil {
		sendServiceError(w, "QR", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"qrCode":  qrCode,
		"qrImage": qrImage,
	})
}
