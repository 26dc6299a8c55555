package api

import (
	"net/http"

	"github.com/pumppoints/pumppoints/internal/app/ledger"
)

// ─── Redemption Handlers ────────────────────────────────────────────────────
//
// POST /api/redeem                            — spend points on a reward
// GET  /redemptions?customer_id=…             — list
// POST /redemptions/update_redemption_status  — pending → completed
// POST /redemptions/delete_redemption         — unconditional delete

type redeemRequest struct {
	CustomerID string `json:"customer_id"`
	RewardID   string `json:"reward_id"`
	PointsUsed int64  `json:"points_used"`
	Quantity   int64  `json:"quantity"`
}

// handleRedeem admits and executes a redemption atomically.
func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := s.ledger.Redeem(r.Context(), ledger.RedeemInput{
		CustomerID:    req.CustomerID,
		RewardID:      req.RewardID,
		PointsPerUnit: req.PointsUsed,
		Quantity:      req.Quantity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"redemption_id": id,
	})
}

// handleListRedemptions lists redemptions, optionally for one customer.
func (s *Server) handleListRedemptions(w http.ResponseWriter, r *http.Request) {
	rds, err := s.db.ListRedemptions(r.Context(), r.URL.Query().Get("customer_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rds)
}

type completeRedemptionRequest struct {
	RedemptionID string `json:"redemption_id"`
	StaffID      string `json:"staff_id"`
}

// handleCompleteRedemption marks a redemption completed.
func (s *Server) handleCompleteRedemption(w http.ResponseWriter, r *http.Request) {
	var req completeRedemptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.ledger.CompleteRedemption(r.Context(), req.RedemptionID, req.StaffID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "redemption completed",
	})
}

type deleteRedemptionRequest struct {
	RedemptionID string `json:"redemption_id"`
}

// handleDeleteRedemption removes a redemption record.
func (s *Server) handleDeleteRedemption(w http.ResponseWriter, r *http.Request) {
	var req deleteRedemptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.ledger.DeleteRedemption(r.Context(), req.RedemptionID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "redemption deleted",
	})
}
