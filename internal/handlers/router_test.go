package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ruralpay/banksim/internal/audit"
	"github.com/ruralpay/banksim/internal/config"
	"github.com/ruralpay/banksim/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, time.June, 15, 10, 0, 0, 0, time.UTC)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	bank := services.NewBank(services.BankOptions{
		Argon2: config.Argon2Config{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8},
		Audit:  audit.NewLoggerTo(log.New(io.Discard, "", 0)),
		Clock:  func() time.Time { return testNow },
	})
	handler := NewRouter(Dependencies{
		Bank:     bank,
		Sessions: services.NewSessionService(config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 1}, nil, nil),
		ISO20022: services.NewISO20022Service(config.BankConfig{Currency: "INR", BIC: "BNKSINBBXXX"}),
	})
	return &apiClient{t: t, handler: handler}
}

func (c *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	return w
}

// login registers a user and keeps its token for later requests.
func (c *apiClient) login() {
	c.t.Helper()
	w := c.do("POST", "/api/v1/auth/register", `{"username":"jane_doe1","email":"jane1@example.com","password":"Secret123"}`)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do("POST", "/api/v1/auth/login", `{"username":"jane_doe1","password":"Secret123"}`)
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	c.token = resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRouter_Health(t *testing.T) {
	api := newAPI(t)
	w := api.do("GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestRouter_Auth(t *testing.T) {
	api := newAPI(t)

	t.Run("protected routes need a token", func(t *testing.T) {
		w := api.do("GET", "/api/v1/accounts", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("register validation error", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/register", `{"username":"abc123","email":"a1@b.com","password":"Secret123"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Username must contain an underscore", body["error"])
		assert.Equal(t, map[string]any{"username": "Username must contain an underscore"}, body["details"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/register", `{"username":"jane_doe1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation failed", decodeBody(t, w)["error"])
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/login", `{"username":"jane_doe1","password":"x","extra":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	api.login()

	t.Run("wrong password", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/login", `{"username":"jane_doe1","password":"Wrong1234"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/login", `{"username":"nobody_1","password":"Secret123"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mpin login", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/login/mpin", `{"username":"jane_doe1","mpin":"123456"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["token"])
	})

	t.Run("logout", func(t *testing.T) {
		w := api.do("POST", "/api/v1/auth/logout", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_AccountsAndTransfers(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do("POST", "/api/v1/accounts", `{"accountNumber":"123456789","holderName":"Jane Doe","type":"savings","initialBalance":"500"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do("POST", "/api/v1/accounts", `{"accountNumber":"987654321","holderName":"John Roe","type":"checking","initialBalance":"100"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do("POST", "/api/v1/accounts", `{"accountNumber":"12345","holderName":"John Roe","type":"checking","initialBalance":"100"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do("POST", "/api/v1/accounts/123456789/deposit", `{"amount":100}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "600", decodeBody(t, w)["balance"])

	w = api.do("POST", "/api/v1/accounts/123456789/withdraw", `{"amount":"700"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do("POST", "/api/v1/accounts/555555555/deposit", `{"amount":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do("POST", "/api/v1/accounts/123456789/withdraw", `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "500", body["balance"])
	assert.Equal(t, "Jane Doe", body["holderName"])

	w = api.do("POST", "/api/v1/accounts/123456789/deposit", `{"amount":100}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do("POST", "/api/v1/transfers", `{"fromAccount":"123456789","toAccount":"987654321","amount":600}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeBody(t, w)
	assert.Equal(t, "0", body["fromBalance"])
	assert.Equal(t, "700", body["toBalance"])
	assert.Equal(t, services.Pacs008MessageType, body["messageType"])
	assert.Contains(t, body["advice"], body["id"])

	w = api.do("GET", "/api/v1/accounts/123456789/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 4)
	assert.Equal(t, "deposit", history[0]["type"])
	assert.Equal(t, "withdrawal", history[1]["type"])
	assert.Equal(t, "deposit", history[2]["type"])
	assert.Equal(t, "transfer_out", history[3]["type"])

	w = api.do("GET", "/api/v1/accounts/123456789", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe", decodeBody(t, w)["holderName"])

	w = api.do("GET", "/api/v1/accounts/987654321/balance", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "700", decodeBody(t, w)["balance"])

	w = api.do("GET", "/api/v1/accounts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Index(w.Body.String(), "123456789") < strings.Index(w.Body.String(), "987654321"))
}

func TestRouter_MalformedAmounts(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do("POST", "/api/v1/accounts", `{"accountNumber":"123456789","holderName":"Jane Doe","type":"savings","initialBalance":"500"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, tc := range []struct{ path, body string }{
		{"/api/v1/accounts/123456789/deposit", `{"amount":"abc"}`},
		{"/api/v1/accounts/123456789/withdraw", `{}`},
		{"/api/v1/transfers", `{"fromAccount":"123456789","toAccount":"987654321","amount":"12x"}`},
		{"/api/v1/bills/recharge", `{"operator":"jio","mobileNumber":"9876543210","amount":true,"transactionAccount":"123456789"}`},
		{"/api/v1/bills/gas", `{"customerId":"ABC123","transactionAccount":"123456789","amount":null}`},
	} {
		w = api.do("POST", tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		body := decodeBody(t, w)
		assert.Equal(t, "Amount must be a number", body["error"], tc.path)
		assert.Equal(t, map[string]any{"amount": "Amount must be a number"}, body["details"], tc.path)
	}

	w = api.do("GET", "/api/v1/accounts/123456789/balance", "")
	assert.Equal(t, "500", decodeBody(t, w)["balance"])
}

func TestRouter_BillsAndTickets(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do("POST", "/api/v1/accounts", `{"accountNumber":"123456789","holderName":"Jane Doe","type":"savings","initialBalance":"3000"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do("POST", "/api/v1/bills/recharge", `{"operator":"jio","mobileNumber":"9876543210","amount":199,"transactionAccount":"123456789"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2801", decodeBody(t, w)["balance"])

	w = api.do("POST", "/api/v1/bills/gas", `{"customerId":"ABC123","transactionAccount":"123456789","amount":"1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "gas", decodeBody(t, w)["biller"])

	w = api.do("POST", "/api/v1/bills/electricity", `{"customerId":"AB","transactionAccount":"123456789","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do("POST", "/api/v1/bills/cable-tv", `{"customerId":"ABC1","transactionAccount":"999999999","amount":"1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do("POST", "/api/v1/tickets", `{"accountNumber":"123456789","fromStation":"Mumbai","toStation":"Pune","travelDate":"2030-07-01","travelClass":"2","quota":"5"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2000", decodeBody(t, w)["fare"])

	w = api.do("GET", "/api/v1/tickets/123456789", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do("GET", "/api/v1/tickets/123456789/qr", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["qrImage"])

	w = api.do("DELETE", "/api/v1/tickets/123456789", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2000", decodeBody(t, w)["refunded"])

	w = api.do("DELETE", "/api/v1/tickets/123456789", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do("POST", "/api/v1/tickets", `{"accountNumber":"123456789","fromStation":"Mumbai","toStation":"Pune","travelDate":"2030-07-01","travelClass":"7","quota":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(services.KindValidation))
	assert.Equal(t, http.StatusNotFound, statusFor(services.KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, statusFor(services.KindAuth))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(services.KindInsufficientFunds))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}
