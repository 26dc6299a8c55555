package api

import (
	"net/http"
	"strconv"
	"time"
)

// ─── Reporting Handlers ─────────────────────────────────────────────────────
//
// GET /reports/fuel-usage?customer_id=…&from=…&to=…
// GET /reports/dividends?year=…&customer_id=…

// handleFuelUsage returns a customer's purchases grouped by fuel type.
func (s *Server) handleFuelUsage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	customerID := q.Get("customer_id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	var from, to time.Time
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		from = ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		to = ts
	}

	usage, err := s.db.FuelUsage(r.Context(), customerID, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

// handleDividends returns annual dividend accruals.
func (s *Server) handleDividends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var year int
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	rows, err := s.db.AnnualDividends(r.Context(), year, q.Get("customer_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
