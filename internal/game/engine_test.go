package game

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/whoeats/internal/catalog"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testAnimals(n int) []catalog.Animal {
	out := make([]catalog.Animal, n)
	for i := range out {
		id := strconv.Itoa(i + 1)
		out[i] = catalog.Animal{ID: id, Name: "animal" + id, Food: "food" + id}
	}
	return out
}

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := New(testAnimals(15), rand.New(rand.NewPCG(1, 2)), clock.Now)
	return s, clock
}

// wrongFood returns a round id that is not id.
func wrongFood(s *Session, id string) string {
	for _, a := range s.round {
		if a.ID != id {
			return a.ID
		}
	}
	return ""
}

func TestNewStartsOnMenu(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()
	assert.Equal(t, ModeMenu, snap.Mode)
	assert.Equal(t, Easy, snap.Difficulty)
	assert.Empty(t, snap.Round)
	assert.Empty(t, snap.Matched)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, 15, snap.CatalogSize)
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, err := ParseDifficulty(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDifficulty("nightmare")
	assert.True(t, errors.Is(err, ErrBadDifficulty))
}

func TestRoundSizeMatchesDifficulty(t *testing.T) {
	want := map[Difficulty]int{Easy: 3, Medium: 4, Hard: 6}
	for d, n := range want {
		t.Run(string(d), func(t *testing.T) {
			assert.Equal(t, n, CountFor(d))
			for i := 0; i < 50; i++ {
				s, _ := newTestSession(t)
				s.src = rand.New(rand.NewPCG(uint64(i), 99))
				s.SelectDifficulty(d)

				snap := s.Snapshot()
				require.Equal(t, ModePlay, snap.Mode)
				require.Len(t, snap.Round, n)
				require.Len(t, snap.FoodOrder, n)

				ids := map[string]bool{}
				for _, a := range snap.Round {
					assert.False(t, ids[a.ID], "duplicate %s", a.ID)
					ids[a.ID] = true
				}
				for _, id := range snap.FoodOrder {
					assert.True(t, ids[id], "food %s not in round", id)
				}
			}
		})
	}
}

func TestSelectAnimal(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Easy)
	first := s.round[0].ID

	s.SelectAnimal(first)
	assert.Equal(t, first, s.Snapshot().Selected)

	// overwrite without clearing first
	second := s.round[1].ID
	s.SelectAnimal(second)
	assert.Equal(t, second, s.Snapshot().Selected)

	// not in the round
	s.SelectAnimal("does-not-exist")
	assert.Equal(t, second, s.Snapshot().Selected)
}

func TestSelectMatchedAnimalIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Medium)
	id := s.round[0].ID
	s.SelectAnimal(id)
	s.SelectFood(id)

	before := s.Snapshot()
	s.SelectAnimal(id)
	assert.Equal(t, before, s.Snapshot())
}

func TestSelectFoodWithoutSelectionIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Easy)

	before := s.Snapshot()
	out := s.SelectFood(s.round[0].ID)
	assert.Equal(t, Outcome{}, out)
	assert.Equal(t, before, s.Snapshot())
}

func TestWrongFoodClearsSelection(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Easy)
	id := s.round[0].ID

	s.SelectAnimal(id)
	out := s.SelectFood(wrongFood(s, id))

	assert.Equal(t, Outcome{}, out)
	snap := s.Snapshot()
	assert.Empty(t, snap.Selected)
	assert.Equal(t, 0, snap.Stars)
	assert.Empty(t, snap.Matched)
}

func TestCorrectMatchesCountStars(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Hard)

	for i, a := range s.round[:4] {
		s.SelectAnimal(a.ID)
		out := s.SelectFood(a.ID)
		assert.True(t, out.Matched)
		assert.False(t, out.Completed)

		snap := s.Snapshot()
		assert.Equal(t, i+1, snap.Stars)
		assert.Equal(t, len(snap.Matched), snap.Stars)
		assert.Empty(t, snap.Selected)
	}
	assert.Equal(t, 66, s.Snapshot().Progress)
}

func TestCompletionFiresOnce(t *testing.T) {
	s, clock := newTestSession(t)
	s.SelectDifficulty(Medium)

	completions := 0
	for _, a := range s.round {
		s.SelectAnimal(a.ID)
		if s.SelectFood(a.ID).Completed {
			completions++
		}
	}
	assert.Equal(t, 1, completions)

	snap := s.Snapshot()
	assert.True(t, snap.Complete)
	assert.True(t, snap.Celebrating)
	assert.Equal(t, 4, snap.Stars)
	assert.Equal(t, 100, snap.Progress)
	assert.ElementsMatch(t, snap.FoodOrder, snap.Matched)

	// Further picks cannot complete again.
	for _, a := range s.round {
		s.SelectAnimal(a.ID)
		assert.False(t, s.SelectFood(a.ID).Completed)
	}

	clock.Advance(CelebrationWindow - time.Millisecond)
	assert.True(t, s.Snapshot().Celebrating)
	clock.Advance(time.Millisecond)
	assert.False(t, s.Snapshot().Celebrating)
}

func TestHint(t *testing.T) {
	t.Run("requires a selection", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.SelectDifficulty(Easy)
		s.RequestHint()
		assert.False(t, s.Snapshot().HintActive)
	})

	t.Run("expires after the window", func(t *testing.T) {
		s, clock := newTestSession(t)
		s.SelectDifficulty(Easy)
		s.SelectAnimal(s.round[0].ID)
		s.RequestHint()
		assert.True(t, s.Snapshot().HintActive)

		clock.Advance(HintWindow)
		assert.False(t, s.Snapshot().HintActive)
	})

	t.Run("re-request resets the window", func(t *testing.T) {
		s, clock := newTestSession(t)
		s.SelectDifficulty(Easy)
		s.SelectAnimal(s.round[0].ID)
		s.RequestHint()
		clock.Advance(1500 * time.Millisecond)
		s.RequestHint()
		clock.Advance(1500 * time.Millisecond)
		assert.True(t, s.Snapshot().HintActive)
		clock.Advance(500 * time.Millisecond)
		assert.False(t, s.Snapshot().HintActive)
	})

	t.Run("cancelled by a new selection", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.SelectDifficulty(Easy)
		s.SelectAnimal(s.round[0].ID)
		s.RequestHint()
		s.SelectAnimal(s.round[1].ID)
		assert.False(t, s.Snapshot().HintActive)
	})

	t.Run("kept when reselecting the same animal", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.SelectDifficulty(Easy)
		s.SelectAnimal(s.round[0].ID)
		s.RequestHint()
		s.SelectAnimal(s.round[0].ID)
		assert.True(t, s.Snapshot().HintActive)
	})

	t.Run("cancelled by a food pick", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.SelectDifficulty(Easy)
		id := s.round[0].ID
		s.SelectAnimal(id)
		s.RequestHint()
		s.SelectFood(wrongFood(s, id))
		assert.False(t, s.Snapshot().HintActive)
	})
}

func TestRestartDealsNewRoundSameDifficulty(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Hard)
	for _, a := range s.round {
		s.SelectAnimal(a.ID)
		s.SelectFood(a.ID)
	}
	require.True(t, s.Snapshot().Celebrating)

	s.Restart()
	snap := s.Snapshot()
	assert.Equal(t, ModePlay, snap.Mode)
	assert.Equal(t, Hard, snap.Difficulty)
	assert.Len(t, snap.Round, 6)
	assert.Empty(t, snap.Matched)
	assert.Equal(t, 0, snap.Stars)
	assert.False(t, snap.Complete)
	assert.False(t, snap.Celebrating)
}

func TestLearnCursorClamps(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectLearn()
	require.Equal(t, ModeLearn, s.Mode())

	s.Prev()
	assert.Equal(t, 0, s.Snapshot().LearnCursor)

	for i := 0; i < 40; i++ {
		s.Next()
	}
	snap := s.Snapshot()
	assert.Equal(t, 14, snap.LearnCursor)
	require.NotNil(t, snap.LearnAnimal)
	assert.Equal(t, "15", snap.LearnAnimal.ID)

	s.Prev()
	assert.Equal(t, 13, s.Snapshot().LearnCursor)
}

func TestLearnResetsCursor(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectLearn()
	s.Next()
	s.Next()
	s.Home()
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Nil(t, s.Snapshot().LearnAnimal)

	s.SelectLearn()
	assert.Equal(t, 0, s.Snapshot().LearnCursor)
}

func TestEventsOutsideTheirModeAreNoops(t *testing.T) {
	s, _ := newTestSession(t)

	before := s.Snapshot()
	s.Next()
	s.Prev()
	s.Home()
	s.Restart()
	s.RequestHint()
	s.SelectAnimal("1")
	s.SelectFood("1")
	assert.Equal(t, before, s.Snapshot())

	s.SelectLearn()
	s.SelectDifficulty(Hard)
	assert.Equal(t, ModeLearn, s.Mode())

	s.Home()
	s.SelectDifficulty(Easy)
	s.SelectLearn()
	assert.Equal(t, ModePlay, s.Mode())
}

func TestHomeFromPlayCancelsFlags(t *testing.T) {
	s, _ := newTestSession(t)
	s.SelectDifficulty(Easy)
	for _, a := range s.round {
		s.SelectAnimal(a.ID)
		s.SelectFood(a.ID)
	}
	s.Home()
	snap := s.Snapshot()
	assert.Equal(t, ModeMenu, snap.Mode)
	assert.False(t, snap.Celebrating)
	assert.False(t, snap.HintActive)
}

func TestApply(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Apply(Event{Name: "dance"})
	assert.True(t, errors.Is(err, ErrUnknownEvent))

	_, err = s.Apply(Event{Name: EventSelectDifficulty, Difficulty: "extreme"})
	assert.True(t, errors.Is(err, ErrBadDifficulty))
	assert.Equal(t, ModeMenu, s.Mode())

	_, err = s.Apply(Event{Name: EventSelectDifficulty, Difficulty: "easy"})
	require.NoError(t, err)
	require.Equal(t, ModePlay, s.Mode())

	var last Outcome
	for _, a := range s.round {
		_, err := s.Apply(Event{Name: EventSelectAnimal, ID: a.ID})
		require.NoError(t, err)
		last, err = s.Apply(Event{Name: EventSelectFood, ID: a.ID})
		require.NoError(t, err)
	}
	assert.True(t, last.Completed)

	for _, name := range []string{EventRestart, EventRequestHint, EventHome, EventSelectLearn, EventNext, EventPrev} {
		_, err := s.Apply(Event{Name: name})
		assert.NoError(t, err, name)
	}
	// restart, hint (no selection), home, learn, next, prev
	snap := s.Snapshot()
	assert.Equal(t, ModeLearn, snap.Mode)
	assert.Equal(t, 0, snap.LearnCursor)
}
