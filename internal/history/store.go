// Package history records completed rounds so a player can see what they played.
package history

import (
	"context"
	"database/sql"
	"time"
)

// DefaultLimit caps Recent when no positive limit is given.
const DefaultLimit = 20

// tsLayout is fixed-width so finished_at sorts lexically.
const tsLayout = "2006-01-02T15:04:05.000000Z07:00"

// Round is one completed round.
type Round struct {
	ID         string    `json:"id"`
	Owner      string    `json:"-"`
	Difficulty string    `json:"difficulty"`
	Stars      int       `json:"stars"`
	Pairs      int       `json:"pairs"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, r Round) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO rounds(id, owner, difficulty, stars, pairs, finished_at)
         VALUES(?,?,?,?,?,?)`,
		r.ID, r.Owner, r.Difficulty, r.Stars, r.Pairs, r.FinishedAt.UTC().Format(tsLayout),
	)
	return err
}

// Recent returns the owner's latest rounds, newest first.
func (s *Store) Recent(ctx context.Context, owner string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, difficulty, stars, pairs, finished_at
         FROM rounds
         WHERE owner=?
         ORDER BY finished_at DESC
         LIMIT ?`, owner, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Round, 0, limit)
	for rows.Next() {
		var r Round
		var finished string
		if err := rows.Scan(&r.ID, &r.Owner, &r.Difficulty, &r.Stars, &r.Pairs, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(tsLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Claim moves every round owned by from to to.
func (s *Store) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE rounds SET owner=? WHERE owner=?`, to, from)
	return err
}
