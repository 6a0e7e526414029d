// internal/stats/stats.go
//
// Running game statistics for one player.
// Responsibilities:
//   - The GameStats record and its completion update (Record).
//   - Hardened decoding of the persisted form: every field present,
//     integer-typed and non-negative, or the value is rejected.
//
// The JSON shape is stable:
//   {"totalGames":0,"totalStars":0,"bestStreak":0,
//    "completedLevels":{"easy":0,"medium":0,"hard":0}}

package stats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/robalobadob/whoeats/internal/game"
)

// Levels counts completed rounds per difficulty.
type Levels struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// GameStats is the aggregate record shown on the menu screen.
type GameStats struct {
	TotalGames      int    `json:"totalGames"`
	TotalStars      int    `json:"totalStars"`
	BestStreak      int    `json:"bestStreak"`
	CompletedLevels Levels `json:"completedLevels"`
}

// Default returns the all-zero record used when nothing valid is persisted.
func Default() GameStats { return GameStats{} }

// Record applies one completed round earning stars at difficulty d.
func (s GameStats) Record(d game.Difficulty, stars int) GameStats {
	s.TotalGames++
	s.TotalStars += stars
	if stars > s.BestStreak {
		s.BestStreak = stars
	}
	switch d {
	case game.Easy:
		s.CompletedLevels.Easy++
	case game.Medium:
		s.CompletedLevels.Medium++
	case game.Hard:
		s.CompletedLevels.Hard++
	}
	return s
}

// LevelsCompleted sums the per-difficulty counters.
func (s GameStats) LevelsCompleted() int {
	return s.CompletedLevels.Easy + s.CompletedLevels.Medium + s.CompletedLevels.Hard
}

// Merge combines two players' records: counters add, the streak is the max.
func Merge(a, b GameStats) GameStats {
	out := GameStats{
		TotalGames: a.TotalGames + b.TotalGames,
		TotalStars: a.TotalStars + b.TotalStars,
		BestStreak: max(a.BestStreak, b.BestStreak),
		CompletedLevels: Levels{
			Easy:   a.CompletedLevels.Easy + b.CompletedLevels.Easy,
			Medium: a.CompletedLevels.Medium + b.CompletedLevels.Medium,
			Hard:   a.CompletedLevels.Hard + b.CompletedLevels.Hard,
		},
	}
	return out
}

// wire mirrors GameStats with pointers so missing fields are detectable.
type wire struct {
	TotalGames      *int        `json:"totalGames" validate:"required,gte=0"`
	TotalStars      *int        `json:"totalStars" validate:"required,gte=0"`
	BestStreak      *int        `json:"bestStreak" validate:"required,gte=0"`
	CompletedLevels *wireLevels `json:"completedLevels" validate:"required"`
}

type wireLevels struct {
	Easy   *int `json:"easy" validate:"required,gte=0"`
	Medium *int `json:"medium" validate:"required,gte=0"`
	Hard   *int `json:"hard" validate:"required,gte=0"`
}

var validate = validator.New()

// Encode serializes s into its persisted JSON form.
func Encode(s GameStats) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses and validates a persisted record.
func Decode(b []byte) (GameStats, error) {
	var w wire
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&w); err != nil {
		return GameStats{}, fmt.Errorf("decode stats: %w", err)
	}
	if err := validate.Struct(&w); err != nil {
		return GameStats{}, fmt.Errorf("invalid stats: %w", err)
	}
	return GameStats{
		TotalGames: *w.TotalGames,
		TotalStars: *w.TotalStars,
		BestStreak: *w.BestStreak,
		CompletedLevels: Levels{
			Easy:   *w.CompletedLevels.Easy,
			Medium: *w.CompletedLevels.Medium,
			Hard:   *w.CompletedLevels.Hard,
		},
	}, nil
}
