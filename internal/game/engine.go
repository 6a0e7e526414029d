// internal/game/engine.go
//
// Session state machine for the animal/food matching game.
// Responsibilities:
//   - Track the screen (menu → learn / play) and the learn carousel cursor.
//   - Build rounds: a random subset of the catalog sized by difficulty,
//     plus an independently shuffled food column.
//   - Apply selections and food picks; detect round completion exactly once.
//   - Own the hint and celebration flags as cancellable deadlines.
//
// Notes:
//   - Transitions that make no sense for the current mode are no-ops.
//   - Matching is by animal id; catalog ids are unique.
//   - A Session is not safe for concurrent use; the play controller serialises access.
package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/whoeats/internal/catalog"
	"github.com/robalobadob/whoeats/internal/shuffle"
)

// Session holds the state of one player's game screen.
type Session struct {
	ID        string
	Owner     string
	CreatedAt time.Time

	animals []catalog.Animal
	src     shuffle.Source
	now     func() time.Time

	mode        Mode
	difficulty  Difficulty
	round       []catalog.Animal
	foodOrder   []string
	matched     map[string]struct{}
	selected    string
	stars       int
	complete    bool
	hint        deadline
	celebrate   deadline
	learnCursor int
}

// New constructs a session on the menu screen.
// animals is the catalog to draw from; src and now may be nil for the defaults.
func New(animals []catalog.Animal, src shuffle.Source, now func() time.Time) *Session {
	if src == nil {
		src = shuffle.Default
	}
	if now == nil {
		now = time.Now
	}
	return &Session{
		CreatedAt:  now().UTC(),
		animals:    animals,
		src:        src,
		now:        now,
		mode:       ModeMenu,
		difficulty: Easy,
		matched:    map[string]struct{}{},
	}
}

// Mode reports the current screen.
func (s *Session) Mode() Mode { return s.mode }

// Difficulty reports the difficulty of the current (or last) round.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Stars reports the stars earned in the current round.
func (s *Session) Stars() int { return s.stars }

// Apply dispatches a named event to the matching transition.
func (s *Session) Apply(ev Event) (Outcome, error) {
	switch ev.Name {
	case EventSelectLearn:
		s.SelectLearn()
	case EventSelectDifficulty:
		d, err := ParseDifficulty(ev.Difficulty)
		if err != nil {
			return Outcome{}, err
		}
		s.SelectDifficulty(d)
	case EventNext:
		s.Next()
	case EventPrev:
		s.Prev()
	case EventHome:
		s.Home()
	case EventSelectAnimal:
		s.SelectAnimal(ev.ID)
	case EventSelectFood:
		return s.SelectFood(ev.ID), nil
	case EventRequestHint:
		s.RequestHint()
	case EventRestart:
		s.Restart()
	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
	}
	return Outcome{}, nil
}

// SelectLearn opens the learn carousel at the first animal.
func (s *Session) SelectLearn() {
	if s.mode != ModeMenu {
		return
	}
	s.mode = ModeLearn
	s.learnCursor = 0
}

// SelectDifficulty starts a fresh round. Valid from the menu and from play.
func (s *Session) SelectDifficulty(d Difficulty) {
	if s.mode == ModeLearn {
		return
	}
	picked := shuffle.Take(shuffle.Shuffle(s.src, s.animals), CountFor(d))
	s.round = shuffle.Shuffle(s.src, picked)

	food := shuffle.Shuffle(s.src, s.round)
	s.foodOrder = make([]string, len(food))
	for i, a := range food {
		s.foodOrder[i] = a.ID
	}

	s.difficulty = d
	s.matched = map[string]struct{}{}
	s.selected = ""
	s.stars = 0
	s.complete = false
	s.hint.cancel()
	s.celebrate.cancel()
	s.mode = ModePlay
}

// Next advances the learn cursor, stopping at the last animal.
func (s *Session) Next() {
	if s.mode != ModeLearn {
		return
	}
	if s.learnCursor < len(s.animals)-1 {
		s.learnCursor++
	}
}

// Prev moves the learn cursor back, stopping at the first animal.
func (s *Session) Prev() {
	if s.mode != ModeLearn {
		return
	}
	if s.learnCursor > 0 {
		s.learnCursor--
	}
}

// Home returns to the menu.
func (s *Session) Home() {
	if s.mode == ModeMenu {
		return
	}
	s.mode = ModeMenu
	s.selected = ""
	s.hint.cancel()
	s.celebrate.cancel()
}

// SelectAnimal marks id as the animal awaiting its food.
// Matched animals and ids outside the round are ignored.
func (s *Session) SelectAnimal(id string) {
	if s.mode != ModePlay || s.isMatched(id) || !s.inRound(id) {
		return
	}
	if s.selected != id {
		s.hint.cancel()
	}
	s.selected = id
}

// SelectFood pairs the food of animal id with the current selection.
// A wrong pick just clears the selection.
func (s *Session) SelectFood(id string) Outcome {
	if s.mode != ModePlay || s.selected == "" || s.isMatched(s.selected) {
		return Outcome{}
	}
	s.hint.cancel()

	if id != s.selected {
		s.selected = ""
		return Outcome{}
	}

	s.matched[id] = struct{}{}
	s.selected = ""
	s.stars++

	if len(s.matched) == len(s.round) && !s.complete {
		s.complete = true
		s.celebrate.arm(s.now(), CelebrationWindow)
		return Outcome{Matched: true, Completed: true}
	}
	return Outcome{Matched: true}
}

// RequestHint highlights the selected animal's food for HintWindow.
// Asking again while the hint is showing restarts the window.
func (s *Session) RequestHint() {
	if s.mode != ModePlay || s.selected == "" {
		return
	}
	s.hint.arm(s.now(), HintWindow)
}

// Restart deals a new round at the current difficulty.
func (s *Session) Restart() {
	if s.mode != ModePlay {
		return
	}
	s.SelectDifficulty(s.difficulty)
}

// Snapshot projects the session into renderable state.
func (s *Session) Snapshot() Snapshot {
	now := s.now()
	snap := Snapshot{
		Mode:        s.mode,
		Difficulty:  s.difficulty,
		Round:       append([]catalog.Animal{}, s.round...),
		FoodOrder:   append([]string{}, s.foodOrder...),
		Matched:     []string{},
		Selected:    s.selected,
		Stars:       s.stars,
		Pairs:       len(s.round),
		Complete:    s.complete,
		HintActive:  s.hint.active(now),
		Celebrating: s.celebrate.active(now),
		LearnCursor: s.learnCursor,
		CatalogSize: len(s.animals),
	}
	for _, a := range s.round {
		if s.isMatched(a.ID) {
			snap.Matched = append(snap.Matched, a.ID)
		}
	}
	if len(s.round) > 0 {
		snap.Progress = len(s.matched) * 100 / len(s.round)
	}
	if s.mode == ModeLearn && s.learnCursor < len(s.animals) {
		a := s.animals[s.learnCursor]
		snap.LearnAnimal = &a
	}
	return snap
}

func (s *Session) isMatched(id string) bool {
	_, ok := s.matched[id]
	return ok
}

func (s *Session) inRound(id string) bool {
	for _, a := range s.round {
		if a.ID == id {
			return true
		}
	}
	return false
}
