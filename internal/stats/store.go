package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/whoeats/internal/store"
)

// Key is the fixed slot name the record lives under.
const Key = "animalGameStats"

// SlotKey scopes Key to one player.
func SlotKey(owner string) string { return owner + ":" + Key }

// Slot is a persistent key-value slot (see store.MemorySlot, store.SQLSlot).
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store loads and saves GameStats through a Slot.
// Update is the mutation path: every change is written immediately.
type Store struct {
	slot Slot
	mu   sync.Mutex // serialises read-modify-write cycles
}

// NewStore wraps slot.
func NewStore(slot Slot) *Store { return &Store{slot: slot} }

// Load returns the owner's stats. It never fails: absent, unreadable
// or malformed values yield Default().
func (s *Store) Load(ctx context.Context, owner string) GameStats {
	raw, err := s.slot.Get(ctx, SlotKey(owner))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("owner", owner).Msg("read stats slot")
		}
		return Default()
	}
	st, err := Decode(raw)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("discarding malformed stats")
		return Default()
	}
	return st
}

// Save writes st unconditionally.
func (s *Store) Save(ctx context.Context, owner string, st GameStats) error {
	b, err := Encode(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return s.slot.Put(ctx, SlotKey(owner), b)
}

// Update applies fn to the owner's current stats and saves the result.
func (s *Store) Update(ctx context.Context, owner string, fn func(GameStats) GameStats) (GameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.Load(ctx, owner))
	if err := s.Save(ctx, owner, next); err != nil {
		return next, err
	}
	return next, nil
}

// Claim folds from's stats into to's and clears from.
// Used when an anonymous player signs in.
func (s *Store) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.slot.Get(ctx, SlotKey(from)); errors.Is(err, store.ErrNotFound) {
		return nil
	}
	merged := Merge(s.Load(ctx, to), s.Load(ctx, from))
	if err := s.Save(ctx, to, merged); err != nil {
		return err
	}
	return s.slot.Delete(ctx, SlotKey(from))
}
