package ballot

import (
	"reflect"
	"testing"

	"github.com/mkale/dishpoll/internal/models"
)

func TestSelectionToggle(t *testing.T) {
	t.Run("assign then reassign moves the rank", func(t *testing.T) {
		s := NewSelection()
		s.Toggle(1, models.RankFirst)
		s.Toggle(2, models.RankFirst)

		if _, ok := s.Rank(1); ok {
			t.Error("dish 1 should have lost rank 1")
		}
		if rank, ok := s.Rank(2); !ok || rank != models.RankFirst {
			t.Errorf("dish 2 rank = %v, %v; want 1, true", rank, ok)
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
	})

	t.Run("same rank twice returns to prior state", func(t *testing.T) {
		s := SelectionFrom(models.Ballot{1: 1, 3: 3})
		before := s.Ballot()

		s.Toggle(5, models.RankSecond)
		s.Toggle(5, models.RankSecond)

		if got := s.Ballot(); !reflect.DeepEqual(got, before) {
			t.Errorf("after double toggle got %v, want %v", got, before)
		}
	})

	t.Run("new rank replaces the dish's old rank", func(t *testing.T) {
		s := NewSelection()
		s.Toggle(1, models.RankFirst)
		s.Toggle(1, models.RankThird)

		if rank, _ := s.Rank(1); rank != models.RankThird {
			t.Errorf("dish 1 rank = %v, want 3", rank)
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1; dish should hold a single rank", s.Len())
		}
	})

	t.Run("invalid ranks are ignored", func(t *testing.T) {
		s := NewSelection()
		s.Toggle(1, 0)
		s.Toggle(1, 4)

		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("invariant holds through arbitrary toggles", func(t *testing.T) {
		s := NewSelection()
		moves := []struct {
			dishID int
			rank   models.Rank
		}{
			{1, 1}, {2, 2}, {3, 3}, {2, 1}, {2, 1}, {4, 2}, {1, 3}, {3, 2},
		}
		for _, m := range moves {
			s.Toggle(m.dishID, m.rank)

			holders := make(map[models.Rank]int)
			for dishID, rank := range s.Ballot() {
				holders[rank]++
				if !rank.Valid() {
					t.Fatalf("dish %d holds invalid rank %d", dishID, rank)
				}
			}
			for rank, n := range holders {
				if n > 1 {
					t.Fatalf("rank %d held by %d dishes after toggle %+v", rank, n, m)
				}
			}
		}
	})

	t.Run("clear empties the selection", func(t *testing.T) {
		s := SelectionFrom(models.Ballot{1: 1, 2: 2, 3: 3})
		s.Clear()
		if s.Len() != 0 {
			t.Errorf("Len() after Clear = %d, want 0", s.Len())
		}
	})
}

func TestSelectionFromCopies(t *testing.T) {
	stored := models.Ballot{1: 1, 2: 2}
	s := SelectionFrom(stored)
	s.Toggle(1, models.RankFirst) // unassign dish 1

	if _, ok := stored[1]; !ok {
		t.Error("editing the selection must not mutate the stored ballot")
	}
}

func TestSelectionFromDropsInvalidRanks(t *testing.T) {
	s := SelectionFrom(models.Ballot{1: 1, 2: 9, 3: 0})
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1; out-of-range ranks should be dropped", s.Len())
	}
}
