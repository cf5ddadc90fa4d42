package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/ruralpay/banksim/internal/services"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1_048_576 // 1 MB

// decodeJSON reads exactly one JSON object into dst, rejecting unknown fields.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		log.Printf("[HTTP] %s %s - invalid request body: %v", r.Method, r.URL.Path, err)
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

// decodeAndValidate is decodeJSON followed by the request's validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *services.ValidationHelper, dst any) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if err := v.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

// parseAmount accepts an amount sent either as a JSON number or as a quoted
// string. Anything else is rejected against the amount field.
func parseAmount(w http.ResponseWriter, tag string, raw json.RawMessage) (decimal.Decimal, bool) {
	text := string(raw)
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		text = quoted
	}

	amount, err := services.ParseAmount("amount", text)
	if err != nil {
		sendServiceError(w, tag, err)
		return decimal.Zero, false
	}
	return amount, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// statusFor maps a core error kind onto an HTTP status.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindAuth:
		return http.StatusUnauthorized
	case services.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// sendServiceError renders a failed core call. Errors that are not BankErrors
// are logged and hidden behind a generic 500.
func sendServiceError(w http.ResponseWriter, tag string, err error) {
	status := statusFor(services.KindOf(err))
	if status == http.StatusInternalServerError {
		log.Printf("[%s] Internal error: %v", tag, err)
		services.SendErrorResponse(w, "An Internal Error Occurred", status, nil)
		return
	}
	log.Printf("[%s] Request rejected (%d): %v", tag, status, err)
	services.SendErrorResponse(w, err.Error(), status, err)
}
