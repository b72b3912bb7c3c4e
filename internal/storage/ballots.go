package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mkale/dishpoll/internal/metrics"
	"github.com/mkale/dishpoll/internal/models"
)

// ballotKeyPrefix namespaces ballot records inside the shared KV.
const ballotKeyPrefix = "ballot:"

func ballotKey(userID string) string {
	return ballotKeyPrefix + userID
}

// BallotStore persists at most one submitted ballot per user, keyed by the
// opaque user ID. Ballots are stored as JSON text; dish IDs and rank values
// are integers on both sides, so records round-trip exactly.
type BallotStore struct {
	kv     KV
	logger *slog.Logger
}

// NewBallotStore creates a ballot store on top of the given KV backend.
func NewBallotStore(kv KV, logger *slog.Logger) *BallotStore {
	return &BallotStore{kv: kv, logger: logger}
}

// Put overwrites the stored ballot for the user unconditionally. There is
// no merge: the new ballot fully replaces the previous one. If the write
// fails the prior stored value is left untouched by the KV contract.
func (s *BallotStore) Put(ctx context.Context, userID string, b models.Ballot) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode ballot: %w", err)
	}
	if err := s.kv.Set(ctx, ballotKey(userID), string(raw)); err != nil {
		return fmt.Errorf("failed to store ballot for user %s: %w", userID, err)
	}
	return nil
}

// Get returns the user's stored ballot, or nil if they never submitted.
// A stored record that no longer parses is discarded and treated as never
// submitted; it is logged and counted but never surfaced as an error.
func (s *BallotStore) Get(ctx context.Context, userID string) (models.Ballot, error) {
	key := ballotKey(userID)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read ballot for user %s: %w", userID, err)
	}
	if !ok {
		return nil, nil
	}

	var b models.Ballot
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		s.logger.Warn("discarding corrupt ballot record", "user_id", userID, "error", err)
		metrics.CorruptBallotRecords.Inc()
		if delErr := s.kv.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove corrupt ballot record", "user_id", userID, "error", delErr)
		}
		return nil, nil
	}
	return b, nil
}

// Clear removes any stored ballot for the user. Clearing a user who never
// submitted is a no-op, so Clear is idempotent.
func (s *BallotStore) Clear(ctx context.Context, userID string) error {
	if err := s.kv.Delete(ctx, ballotKey(userID)); err != nil {
		return fmt.Errorf("failed to clear ballot for user %s: %w", userID, err)
	}
	return nil
}

// All returns every currently stored ballot among the given known-user
// roster. Users without a stored ballot are omitted from the result.
func (s *BallotStore) All(ctx context.Context, userIDs []string) (map[string]models.Ballot, error) {
	ballots := make(map[string]models.Ballot, len(userIDs))
	for _, userID := range userIDs {
		b, err := s.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			ballots[userID] = b
		}
	}
	return ballots, nil
}
