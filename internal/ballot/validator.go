// Package ballot implements the ranked-ballot rules: the in-progress rank
// assignment (Selection) and the submit-time validation of a candidate ballot.
package ballot

import (
	"errors"

	"github.com/mkale/dishpoll/internal/models"
)

var (
	// ErrIncompleteSelection is returned when a submitted ballot does not
	// rank exactly three dishes with ranks 1, 2 and 3.
	ErrIncompleteSelection = errors.New("select exactly 3 dishes with ranks 1, 2 and 3")

	// ErrDuplicateRank is returned when a rank value is assigned to more
	// than one dish. Selection already prevents this; Validate re-checks
	// it anyway so the store never sees such a ballot.
	ErrDuplicateRank = errors.New("each rank can be assigned to only one dish")
)

// Validate accepts a candidate ballot iff it has exactly three entries
// using each of the ranks 1, 2 and 3 exactly once. It has no side effects.
func Validate(b models.Ballot) error {
	if len(b) != models.BallotSize {
		return ErrIncompleteSelection
	}

	seen := make(map[models.Rank]bool, models.BallotSize)
	for _, rank := range b {
		if seen[rank] {
			return ErrDuplicateRank
		}
		seen[rank] = true
	}

	// Three distinct values is not enough: they must be exactly {1,2,3}.
	for rank := models.RankFirst; rank <= models.RankThird; rank++ {
		if !seen[rank] {
			return ErrIncompleteSelection
		}
	}

	return nil
}
