// Package leaderboard folds all stored ballots into the scored dish ranking.
package leaderboard

import (
	"sort"

	"github.com/mkale/dishpoll/internal/models"
)

// ScoredDish is one leaderboard row, derived from the catalog and the
// stored ballots. It is never persisted.
type ScoredDish struct {
	Dish models.Dish `json:"dish"`

	// TotalPoints is the sum over all ballots of the point value assigned
	// to this dish's rank (0 if never ranked).
	TotalPoints int `json:"totalPoints"`

	// VoteCount is the number of ballots that rank this dish at any rank.
	VoteCount int `json:"voteCount"`

	// OwnRank is the requesting user's own rank for this dish, or null.
	OwnRank *models.Rank `json:"ownRank"`

	// Position is the 1-based place in the leaderboard ordering.
	Position int `json:"position"`
}

// Compute folds every stored ballot into one row per catalog dish and
// overlays the requesting user's own ranks.
//
// The fold is commutative, so the iteration order of ballots never affects
// the result. Ballot entries referencing a dish that is not in the catalog
// are ignored (catalog drift is tolerated), and entries carrying a rank
// outside 1..3 contribute nothing, so a malformed stored ballot degrades
// entry by entry instead of failing the whole computation.
//
// Rows are ordered by total points descending, ties broken by the dish's
// original catalog order. The output always has one row per catalog dish.
func Compute(dishes []models.Dish, ballots map[string]models.Ballot, userID string) []ScoredDish {
	rows := make([]ScoredDish, len(dishes))
	byDishID := make(map[int]int, len(dishes))
	for i, dish := range dishes {
		rows[i] = ScoredDish{Dish: dish}
		byDishID[dish.ID] = i
	}

	for _, b := range ballots {
		for dishID, rank := range b {
			i, known := byDishID[dishID]
			if !known || !rank.Valid() {
				continue
			}
			rows[i].TotalPoints += rank.Points()
			rows[i].VoteCount++
		}
	}

	// Stable sort keeps catalog order as the tiebreaker.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	if own, voted := ballots[userID]; voted {
		for i := range rows {
			if rank, ok := own[rows[i].Dish.ID]; ok && rank.Valid() {
				r := rank
				rows[i].OwnRank = &r
			}
		}
	}

	return rows
}
