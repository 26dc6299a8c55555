package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pumppoints/pumppoints/internal/app/ledger"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

// ─── Transaction Handlers ───────────────────────────────────────────────────
//
// POST   /transactions                  — record a fuel purchase (ledger core)
// GET    /transactions                  — list with filters
// GET    /transactions/{transaction_id}
// PUT    /transactions/{transaction_id} — rebalancing edit (ledger core)
// DELETE /transactions/{transaction_id} — rebalancing delete (ledger core)

type recordTransactionRequest struct {
	PhoneNumber string   `json:"phone_number"`
	FuelType    string   `json:"fuel_type"`
	Amount      *float64 `json:"amount"`
	StaffID     string   `json:"staff_id"`
}

// handleRecordTransaction records a fuel purchase and credits points.
func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	res, err := s.ledger.RecordTransaction(r.Context(), ledger.RecordTransactionInput{
		PhoneNumber: req.PhoneNumber,
		FuelType:    req.FuelType,
		Amount:      *req.Amount,
		StaffID:     req.StaffID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleListTransactions lists transactions filtered by query parameters:
// customer_id, staff_id, fuel_type_id, from, to (RFC 3339), limit.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := sqlite.TransactionFilter{
		CustomerID: q.Get("customer_id"),
		StaffID:    q.Get("staff_id"),
	}
	if v := q.Get("fuel_type_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid fuel_type_id")
			return
		}
		filter.FuelTypeID = id
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filter.To = ts
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	txs, err := s.db.ListTransactions(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// handleGetTransaction returns one transaction.
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tr, err := s.db.TransactionByID(r.Context(), chi.URLParam(r, "transaction_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// handleUpdateTransaction rewrites a recorded purchase, rebalancing points.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	err := s.ledger.UpdateTransaction(r.Context(), ledger.UpdateTransactionInput{
		TransactionID: chi.URLParam(r, "transaction_id"),
		PhoneNumber:   req.PhoneNumber,
		FuelType:      req.FuelType,
		Amount:        *req.Amount,
		StaffID:       req.StaffID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "transaction updated",
	})
}

// handleDeleteTransaction removes a purchase and reverses its points.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "transaction_id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "transaction deleted",
	})
}
