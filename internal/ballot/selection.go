package ballot

import "github.com/mkale/dishpoll/internal/models"

// Selection is a user's in-progress ballot while they are still choosing.
// Every Toggle preserves the mutual-exclusion invariant: each rank value
// is held by at most one dish, and each dish holds at most one rank.
// A Selection may hold 0 to 3 entries; it is only validated at submit
// time, not on every toggle.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	votes models.Ballot
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{votes: make(models.Ballot)}
}

// SelectionFrom resumes editing from a previously stored ballot.
// The stored ballot is copied, not aliased.
func SelectionFrom(b models.Ballot) *Selection {
	s := NewSelection()
	for dishID, rank := range b {
		if rank.Valid() {
			s.votes[dishID] = rank
		}
	}
	return s
}

// Toggle assigns rank to the dish, with toggle semantics:
//   - if the dish already holds that exact rank, the dish is unassigned;
//   - otherwise the rank is first stripped from whichever dish currently
//     holds it (at most one), then assigned to the dish, replacing any
//     rank the dish previously held.
//
// Ranks outside 1..3 are ignored.
func (s *Selection) Toggle(dishID int, rank models.Rank) {
	if !rank.Valid() {
		return
	}

	if s.votes[dishID] == rank {
		delete(s.votes, dishID)
		return
	}

	for id, held := range s.votes {
		if held == rank {
			delete(s.votes, id)
		}
	}
	s.votes[dishID] = rank
}

// Rank returns the rank the dish currently holds, if any.
func (s *Selection) Rank(dishID int) (models.Rank, bool) {
	rank, ok := s.votes[dishID]
	return rank, ok
}

// Len returns the number of dishes currently ranked.
func (s *Selection) Len() int {
	return len(s.votes)
}

// Clear drops every assignment.
func (s *Selection) Clear() {
	s.votes = make(models.Ballot)
}

// Ballot returns a copy of the current assignments as a candidate ballot.
func (s *Selection) Ballot() models.Ballot {
	return s.votes.Clone()
}
