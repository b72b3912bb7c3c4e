// Package service orchestrates the voting flows on top of the catalog,
// the ballot store and the aggregation engine.
package service

import (
	"context"
	"log/slog"

	"github.com/mkale/dishpoll/internal/ballot"
	"github.com/mkale/dishpoll/internal/leaderboard"
	"github.com/mkale/dishpoll/internal/metrics"
	"github.com/mkale/dishpoll/internal/models"
	"github.com/mkale/dishpoll/internal/storage"
)

// CatalogProvider supplies the votable dish list. The catalog package's
// Client satisfies this; tests use a stub.
type CatalogProvider interface {
	Fetch(ctx context.Context) []models.Dish
}

// PollService ties together the catalog, ballot storage and aggregation.
// The known-user roster is an explicit input so ballot enumeration never
// depends on ambient global state.
type PollService struct {
	catalog CatalogProvider
	ballots *storage.BallotStore
	roster  []string
	logger  *slog.Logger
}

// NewPollService creates a poll service for the given roster of user IDs.
func NewPollService(catalog CatalogProvider, ballots *storage.BallotStore, roster []string, logger *slog.Logger) *PollService {
	return &PollService{
		catalog: catalog,
		ballots: ballots,
		roster:  roster,
		logger:  logger,
	}
}

// Dishes returns the current catalog. It never fails: feed problems are
// absorbed by the catalog fallback.
func (s *PollService) Dishes(ctx context.Context) []models.Dish {
	return s.catalog.Fetch(ctx)
}

// Ballot returns the caller's stored ballot, or nil if never submitted.
func (s *PollService) Ballot(ctx context.Context, userID string) (models.Ballot, error) {
	return s.ballots.Get(ctx, userID)
}

// SubmitBallot validates the candidate ballot and persists it, replacing
// any previous submission. An invalid ballot is rejected before anything
// is written.
func (s *PollService) SubmitBallot(ctx context.Context, userID string, b models.Ballot) error {
	if err := ballot.Validate(b); err != nil {
		return err
	}
	if err := s.ballots.Put(ctx, userID, b); err != nil {
		return err
	}
	metrics.BallotsSubmitted.Inc()
	s.logger.Info("ballot submitted", "user_id", userID)
	return nil
}

// ClearBallot removes the caller's stored ballot. Idempotent.
func (s *PollService) ClearBallot(ctx context.Context, userID string) error {
	if err := s.ballots.Clear(ctx, userID); err != nil {
		return err
	}
	metrics.BallotsCleared.Inc()
	s.logger.Info("ballot cleared", "user_id", userID)
	return nil
}

// Leaderboard folds every stored roster ballot into the scored ranking,
// with the caller's own ranks overlaid.
func (s *PollService) Leaderboard(ctx context.Context, userID string) ([]leaderboard.ScoredDish, error) {
	dishes := s.catalog.Fetch(ctx)
	all, err := s.ballots.All(ctx, s.roster)
	if err != nil {
		return nil, err
	}
	return leaderboard.Compute(dishes, all, userID), nil
}
