// internal/game/types.go
//
// Core type definitions for the matching game.
// Defines:
//   - Mode: which screen the session is on (menu/learn/play).
//   - Difficulty: round size tier (easy/medium/hard).
//   - Event: a named user action from the presentation layer.
//   - Outcome: what a transition did, for the controller.
//   - Snapshot: the read-only projection a renderer draws.

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/whoeats/internal/catalog"
)

// Mode is the screen a session is on.
type Mode string

const (
	ModeMenu  Mode = "menu"
	ModeLearn Mode = "learn"
	ModePlay  Mode = "play"
)

// Difficulty selects how many pairs a round has.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Transient flag windows.
const (
	HintWindow        = 2 * time.Second
	CelebrationWindow = 3 * time.Second
)

var (
	// ErrUnknownEvent is returned by Apply for an event name it does not handle.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrBadDifficulty is returned when a difficulty string cannot be parsed.
	ErrBadDifficulty = errors.New("bad difficulty")
)

// ParseDifficulty converts "easy"/"medium"/"hard" into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadDifficulty, s)
}

// CountFor returns the number of pairs in a round of difficulty d.
func CountFor(d Difficulty) int {
	switch d {
	case Medium:
		return 4
	case Hard:
		return 6
	default:
		return 3
	}
}

// Event names accepted by Apply.
const (
	EventSelectLearn      = "selectLearn"
	EventSelectDifficulty = "selectDifficulty"
	EventNext             = "next"
	EventPrev             = "prev"
	EventHome             = "home"
	EventSelectAnimal     = "selectAnimal"
	EventSelectFood       = "selectFood"
	EventRequestHint      = "requestHint"
	EventRestart          = "restart"
)

// Event is a named user action. Difficulty is read by selectDifficulty,
// ID by selectAnimal and selectFood.
type Event struct {
	Name       string `json:"event"`
	Difficulty string `json:"difficulty,omitempty"`
	ID         string `json:"id,omitempty"`
}

// Outcome reports what a transition did.
type Outcome struct {
	Matched   bool // a correct animal-to-food pair was confirmed
	Completed bool // this transition finished the round
}

// Snapshot is the state a renderer needs. Flags are evaluated at snapshot time.
type Snapshot struct {
	Mode        Mode             `json:"mode"`
	Difficulty  Difficulty       `json:"difficulty"`
	Round       []catalog.Animal `json:"round"`
	FoodOrder   []string         `json:"foodOrder"`
	Matched     []string         `json:"matched"`
	Selected    string           `json:"selected,omitempty"`
	Stars       int              `json:"stars"`
	Pairs       int              `json:"pairs"`
	Progress    int              `json:"progress"`
	Complete    bool             `json:"complete"`
	HintActive  bool             `json:"hintActive"`
	Celebrating bool             `json:"celebrating"`
	LearnCursor int              `json:"learnCursor"`
	LearnAnimal *catalog.Animal  `json:"learnAnimal,omitempty"`
	CatalogSize int              `json:"catalogSize"`
}

// deadline is a cancellable timed flag. Arming an active deadline restarts its window.
type deadline struct {
	until time.Time
}

func (d *deadline) arm(now time.Time, window time.Duration) { d.until = now.Add(window) }
func (d *deadline) cancel()                                 { d.until = time.Time{} }
func (d deadline) active(now time.Time) bool                { return now.Before(d.until) }
