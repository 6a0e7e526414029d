// internal/play/service.go
//
// Session controller: the single writer for game sessions.
// Responsibilities:
//   - Create sessions for a player and enforce ownership on access.
//   - Apply named events one at a time (a mutex serialises dispatch).
//   - On round completion, commit the stats update and record the round.
//
// Notes:
//   - Stats writes go through stats.Store.Update, so every change is saved at once.
//   - History is optional and best effort: failures are logged, never returned.

package play

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/whoeats/internal/catalog"
	"github.com/robalobadob/whoeats/internal/game"
	"github.com/robalobadob/whoeats/internal/history"
	"github.com/robalobadob/whoeats/internal/shuffle"
	"github.com/robalobadob/whoeats/internal/stats"
	"github.com/robalobadob/whoeats/internal/store"
	"github.com/robalobadob/whoeats/internal/telemetry"
)

// RoundRecorder stores completed rounds (history.Store).
type RoundRecorder interface {
	Insert(ctx context.Context, r history.Round) error
}

// Service owns session state transitions for all players.
type Service struct {
	sessions store.Sessions
	stats    *stats.Store
	rounds   RoundRecorder // may be nil
	tracer   trace.Tracer

	animals []catalog.Animal
	src     shuffle.Source
	now     func() time.Time

	mu sync.Mutex // one transition in flight
}

// Option customises a Service.
type Option func(*Service)

// WithRounds records completed rounds to r.
func WithRounds(r RoundRecorder) Option { return func(s *Service) { s.rounds = r } }

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(t trace.Tracer) Option { return func(s *Service) { s.tracer = t } }

// WithSource sets the shuffle source for new sessions.
func WithSource(src shuffle.Source) Option { return func(s *Service) { s.src = src } }

// WithClock sets the clock for new sessions and history timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New builds a Service drawing rounds from animals.
func New(sessions store.Sessions, st *stats.Store, animals []catalog.Animal, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		stats:    st,
		tracer:   telemetry.Tracer("play"),
		animals:  animals,
		src:      shuffle.Default,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Result is what a dispatch returns to the presentation layer.
type Result struct {
	State     game.Snapshot    `json:"state"`
	Completed bool             `json:"completed"`
	Stats     *stats.GameStats `json:"stats,omitempty"`
}

// Start creates a menu-screen session owned by owner.
func (s *Service) Start(ctx context.Context, owner string) (*game.Session, error) {
	sess := game.New(s.animals, s.src, s.now)
	sess.ID = uuid.NewString()
	sess.Owner = owner
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	log.Debug().Str("session", sess.ID).Str("owner", owner).Msg("session started")
	return sess, nil
}

// Get returns owner's session id, or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, owner, id string) (*game.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Owner != owner {
		return nil, store.ErrNotFound
	}
	return sess, nil
}

// Snapshot returns the current state of owner's session id.
func (s *Service) Snapshot(ctx context.Context, owner, id string) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.Get(ctx, owner, id)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Dispatch applies ev to owner's session id.
func (s *Service) Dispatch(ctx context.Context, owner, id string, ev game.Event) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "play.dispatch", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("event.name", ev.Name),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, owner, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	out, err := sess.Apply(ev)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{State: sess.Snapshot()}, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Result{}, fmt.Errorf("save session: %w", err)
	}

	res := Result{State: sess.Snapshot(), Completed: out.Completed}
	span.SetAttributes(
		attribute.String("game.mode", string(res.State.Mode)),
		attribute.Bool("game.matched", out.Matched),
		attribute.Bool("game.completed", out.Completed),
	)
	if !out.Completed {
		return res, nil
	}

	updated, err := s.complete(ctx, sess)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	res.Stats = &updated
	return res, nil
}

// complete commits a finished round.
func (s *Service) complete(ctx context.Context, sess *game.Session) (stats.GameStats, error) {
	d, stars := sess.Difficulty(), sess.Stars()
	updated, err := s.stats.Update(ctx, sess.Owner, func(st stats.GameStats) stats.GameStats {
		return st.Record(d, stars)
	})
	if err != nil {
		return updated, fmt.Errorf("save stats: %w", err)
	}
	log.Info().
		Str("owner", sess.Owner).
		Str("difficulty", string(d)).
		Int("stars", stars).
		Int("totalGames", updated.TotalGames).
		Msg("round complete")

	if s.rounds != nil {
		r := history.Round{
			ID:         uuid.NewString(),
			Owner:      sess.Owner,
			Difficulty: string(d),
			Stars:      stars,
			Pairs:      game.CountFor(d),
			FinishedAt: s.now(),
		}
		if err := s.rounds.Insert(ctx, r); err != nil {
			log.Warn().Err(err).Str("owner", sess.Owner).Msg("record round")
		}
	}
	return updated, nil
}

// IsBadEvent reports whether err came from malformed client input.
func IsBadEvent(err error) bool {
	return errors.Is(err, game.ErrUnknownEvent) || errors.Is(err, game.ErrBadDifficulty)
}
