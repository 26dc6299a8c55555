package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pumppoints/pumppoints/internal/app/catalog"
	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Reward Catalog Handlers ────────────────────────────────────────────────
// Catalog management is an external surface; stock debits happen only through
// the ledger. Reward images are stored as URL references — upload handling is
// out of scope.

type rewardRequest struct {
	Name           string `json:"name"`
	PointsRequired int64  `json:"points_required"`
	Quantity       int64  `json:"quantity"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
}

// handleListRewards returns the catalog.
func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := s.catalog.ListRewards(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

// handleGetReward returns one catalog entry.
func (s *Server) handleGetReward(w http.ResponseWriter, r *http.Request) {
	rw, err := s.catalog.Reward(r.Context(), chi.URLParam(r, "reward_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rw)
}

// handleCreateReward adds a catalog entry.
func (s *Server) handleCreateReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	rw, err := s.catalog.CreateReward(r.Context(), catalog.CreateRewardInput{
		Name:           req.Name,
		PointsRequired: req.PointsRequired,
		Quantity:       req.Quantity,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rw)
}

// handleUpdateReward rewrites a catalog entry.
func (s *Server) handleUpdateReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	err := s.catalog.UpdateReward(r.Context(), domain.Reward{
		RewardID:       chi.URLParam(r, "reward_id"),
		Name:           req.Name,
		PointsRequired: req.PointsRequired,
		Quantity:       req.Quantity,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "reward updated",
	})
}

// handleDeleteReward removes a catalog entry.
func (s *Server) handleDeleteReward(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteReward(r.Context(), chi.URLParam(r, "reward_id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "reward deleted",
	})
}
