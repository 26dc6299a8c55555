// Package catalog manages the reward catalog: the entries customers spend
// points on. Stock debits happen in the ledger, not here.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pumppoints/pumppoints/internal/domain"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

// Service manages reward catalog entries.
type Service struct {
	db            *sqlite.DB
	idMaxAttempts int
}

// New creates a catalog service.
func New(db *sqlite.DB, idMaxAttempts int) *Service {
	if idMaxAttempts <= 0 {
		idMaxAttempts = 5
	}
	return &Service{db: db, idMaxAttempts: idMaxAttempts}
}

// CreateRewardInput is a new catalog entry.
type CreateRewardInput struct {
	Name           string
	PointsRequired int64
	Quantity       int64
	Description    string
	ImageURL       string
}

// CreateReward adds a catalog entry under a freshly generated unique ID.
// The uniqueness check and the insert share one unit of work, so two
// concurrent creates can never commit the same ID.
func (s *Service) CreateReward(ctx context.Context, in CreateRewardInput) (domain.Reward, error) {
	if strings.TrimSpace(in.Name) == "" || in.PointsRequired <= 0 {
		return domain.Reward{}, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return domain.Reward{}, domain.ErrInvalidQuantity
	}

	rw := domain.Reward{
		Name:           in.Name,
		PointsRequired: in.PointsRequired,
		Quantity:       in.Quantity,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
	}
	err := s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := s.freeRewardID(ctx, tx)
		if err != nil {
			return err
		}
		rw.RewardID = id
		if err := tx.InsertReward(ctx, rw); err != nil {
			return fmt.Errorf("insert reward: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Reward{}, err
	}
	return rw, nil
}

// Reward retrieves one catalog entry.
func (s *Service) Reward(ctx context.Context, id string) (domain.Reward, error) {
	return s.db.RewardByID(ctx, id)
}

// ListRewards returns the catalog.
func (s *Service) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.db.ListRewards(ctx)
}

// UpdateReward rewrites a catalog entry.
func (s *Service) UpdateReward(ctx context.Context, rw domain.Reward) error {
	if strings.TrimSpace(rw.RewardID) == "" || strings.TrimSpace(rw.Name) == "" || rw.PointsRequired <= 0 {
		return domain.ErrInvalidInput
	}
	if rw.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return s.db.UpdateReward(ctx, rw)
}

// DeleteReward removes a catalog entry.
func (s *Service) DeleteReward(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return s.db.DeleteReward(ctx, id)
}

func (s *Service) freeRewardID(ctx context.Context, tx *sqlite.Tx) (string, error) {
	for attempt := 0; attempt < s.idMaxAttempts; attempt++ {
		id, err := domain.NewShortID()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrIDGenerationFailed, err)
		}
		exists, err := tx.RewardIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", domain.ErrIDGenerationFailed
}
