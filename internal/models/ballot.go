package models

// Rank is a ballot priority level. Rank 1 is the strongest preference.
type Rank int

const (
	RankFirst  Rank = 1
	RankSecond Rank = 2
	RankThird  Rank = 3
)

// BallotSize is the number of entries a submitted ballot must carry.
const BallotSize = 3

// rankPoints is the fixed point table used for aggregation.
// It is part of the public contract: rank 1 = 30, rank 2 = 20, rank 3 = 10.
var rankPoints = map[Rank]int{
	RankFirst:  30,
	RankSecond: 20,
	RankThird:  10,
}

// Valid reports whether r is one of the three usable priority levels.
func (r Rank) Valid() bool {
	return r >= RankFirst && r <= RankThird
}

// Points returns the leaderboard weight of the rank, or 0 for any value
// outside 1..3.
func (r Rank) Points() int {
	return rankPoints[r]
}

// Ballot maps dish IDs to the rank the voter assigned them.
//
// Invariant for stored ballots: no rank value appears more than once.
// A ballot passed through ballot.Validate additionally holds exactly
// BallotSize entries using each rank exactly once. Both keys and values
// are integers, so a Ballot round-trips exactly through JSON.
type Ballot map[int]Rank

// Clone returns an independent copy of the ballot.
func (b Ballot) Clone() Ballot {
	if b == nil {
		return nil
	}
	out := make(Ballot, len(b))
	for dishID, rank := range b {
		out[dishID] = rank
	}
	return out
}
