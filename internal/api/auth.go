package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ─── Login and Lookup Handlers ──────────────────────────────────────────────
// Credentials are compared directly against stored values, exactly as the
// source system does. Hardening is explicitly out of scope for this core.

type loginRequest struct {
	StaffID     string `json:"staff_id,omitempty"`
	OfficerID   string `json:"officer_id,omitempty"`
	CustomerID  string `json:"customer_id,omitempty"`
	PhoneNumber string `json:"phone_number"`
}

// handleStaffLogin authenticates a staff member.
func (s *Server) handleStaffLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	staff, err := s.db.FindStaffLogin(r.Context(), req.StaffID, req.PhoneNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"staff_id": staff.StaffID,
	})
}

// handleOfficerLogin authenticates an officer.
func (s *Server) handleOfficerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	officer, err := s.db.FindOfficerLogin(r.Context(), req.OfficerID, req.PhoneNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "Login successful",
		"officer_id": officer.OfficerID,
	})
}

// handleCustomerLogin authenticates a customer.
func (s *Server) handleCustomerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	customer, err := s.db.FindCustomerLogin(r.Context(), req.CustomerID, req.PhoneNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Login successful",
		"customer_id": customer.CustomerID,
	})
}

// handleGetCustomer returns a member's record by phone number.
func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := s.db.CustomerByPhone(r.Context(), chi.URLParam(r, "phone_number"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// handleGetStaff returns a staff record.
func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.db.StaffByID(r.Context(), chi.URLParam(r, "staff_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

// handleListFuelTypes returns the fuel type reference data.
func (s *Server) handleListFuelTypes(w http.ResponseWriter, r *http.Request) {
	fts, err := s.db.ListFuelTypes(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fts)
}
