// Package api provides the HTTP server for the loyalty backend.
// Routing and JSON plumbing only — business rules live in the app services.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pumppoints/pumppoints/internal/app/catalog"
	"github.com/pumppoints/pumppoints/internal/app/ledger"
	"github.com/pumppoints/pumppoints/internal/domain"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

// Server is the loyalty backend HTTP API server.
type Server struct {
	db             *sqlite.DB
	ledger         *ledger.Service
	catalog        *catalog.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, led *ledger.Service, cat *catalog.Service) *Server {
	return &Server{db: db, ledger: led, catalog: cat}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Ledger: earning side
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", s.handleRecordTransaction)
		r.Get("/", s.handleListTransactions)
		r.Get("/{transaction_id}", s.handleGetTransaction)
		r.Put("/{transaction_id}", s.handleUpdateTransaction)
		r.Delete("/{transaction_id}", s.handleDeleteTransaction)
	})

	// Ledger: spending side
	r.Post("/api/redeem", s.handleRedeem)
	r.Route("/redemptions", func(r chi.Router) {
		r.Get("/", s.handleListRedemptions)
		r.Post("/update_redemption_status", s.handleCompleteRedemption)
		r.Post("/delete_redemption", s.handleDeleteRedemption)
	})

	// Reward catalog
	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", s.handleListRewards)
		r.Post("/", s.handleCreateReward)
		r.Get("/{reward_id}", s.handleGetReward)
		r.Put("/{reward_id}", s.handleUpdateReward)
		r.Delete("/{reward_id}", s.handleDeleteReward)
	})

	// Member/staff lookup
	r.Get("/customers/{phone_number}", s.handleGetCustomer)
	r.Get("/staff/{staff_id}", s.handleGetStaff)
	r.Get("/fuel-types", s.handleListFuelTypes)

	// Logins (plaintext comparison, reproduced as-is)
	r.Post("/staff/login", s.handleStaffLogin)
	r.Post("/officers/login", s.handleOfficerLogin)
	r.Post("/customer/login", s.handleCustomerLogin)

	// Reporting
	r.Route("/reports", func(r chi.Router) {
		r.Get("/fuel-usage", s.handleFuelUsage)
		r.Get("/dividends", s.handleDividends)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── JSON Helpers ───────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": msg,
	})
}

// writeDomainError maps a service error onto an HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidFuelType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrRewardNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrRedemptionNotFound),
		errors.Is(err, domain.ErrStaffNotFound),
		errors.Is(err, domain.ErrOfficerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientPoints),
		errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrLedgerBusy):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		// Storage failures surface with detail, never silently swallowed.
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// corsMiddleware adds CORS headers for the station front-ends.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
