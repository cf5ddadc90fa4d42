package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/ruralpay/banksim/internal/middleware"
	"github.com/ruralpay/banksim/internal/services"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Bank           *services.Bank
	Sessions       *services.SessionService
	ISO20022       *services.ISO20022Service
	RequestTimeout time.Duration
}

// NewRouter builds the full API: public auth routes and health check, and
// everything else behind bearer authentication.
func NewRouter(deps Dependencies) http.Handler {
	authHandler := NewAuthHandler(deps.Bank.Directory, deps.Sessions)
	accountHandler := NewAccountHandler(deps.Bank.Ledger, deps.ISO20022)
	billHandler := NewBillHandler(deps.Bank.Bills)
	ticketHandler := NewTicketHandler(deps.Bank.Tickets)
	qrHandler := NewQRHandler(services.NewQRService(deps.Bank.Tickets))

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/login/mpin", authHandler.LoginWithMpin)
		r.Post("/auth/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware(deps.Sessions))

			r.Get("/accounts", accountHandler.ListAccounts)
			r.Post("/accounts", accountHandler.CreateAccount)
			r.Route("/accounts/{accountNumber}", func(r chi.Router) {
				r.Get("/", accountHandler.GetAccount)
				r.Get("/balance", accountHandler.GetBalance)
				r.Get("/transactions", accountHandler.GetTransactions)
				r.Post("/deposit", accountHandler.Deposit)
				r.Post("/withdraw", accountHandler.Withdraw)
			})

			r.Post("/transfers", accountHandler.Transfer)

			r.Post("/bills/recharge", billHandler.Recharge)
			r.Post("/bills/gas", billHandler.PayGasBill)
			r.Post("/bills/electricity", billHandler.PayElectricityBill)
			r.Post("/bills/cable-tv", billHandler.PayCableTvBill)

			r.Post("/tickets", ticketHandler.BookTicket)
			r.Get("/tickets/{accountNumber}", ticketHandler.GetTicket)
			r.Delete("/tickets/{accountNumber}", ticketHandler.CancelTicket)
			r.Get("/tickets/{accountNumber}/qr", qrHandler.GetTicketQR)
		})
	})

	return r
}
