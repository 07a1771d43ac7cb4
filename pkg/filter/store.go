package filter

import (
	"sort"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// Listener receives the new filtered pool after every recomputation. The
// slice is read-only from the listener's side and fully replaces whatever
// the listener held before.
type Listener func(filtered []*model.Game)

// Store holds the active predicate per filter key and the canonical record
// set. Apply always rescans the canonical set, so loosening one dimension
// takes effect without resetting the others. The store is not safe for
// concurrent use; the dashboard serializes access to it.
type Store struct {
	canonical []*model.Game
	preds     map[string]Predicate
	listeners []Listener
	filtered  []*model.Game
}

// NewStore creates a store over the canonical record set. The initial
// filtered pool is the whole set.
func NewStore(canonical []*model.Game) *Store {
	s := &Store{
		canonical: canonical,
		preds:     make(map[string]Predicate),
	}
	s.filtered = s.compute()
	return s
}

// Subscribe registers a listener for filtered-pool broadcasts. It does not
// replay the current pool; read Filtered for that.
func (s *Store) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Set installs or replaces the predicate under key, recomputes the pool
// from the canonical set, and broadcasts. A nil predicate clears the key.
func (s *Store) Set(key string, p Predicate) error {
	if p == nil {
		s.Clear(key)
		return nil
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.preds[key] = p
	s.refresh()
	return nil
}

// Clear removes the predicate under key and rebroadcasts.
func (s *Store) Clear(key string) {
	if _, ok := s.preds[key]; !ok {
		return
	}
	delete(s.preds, key)
	s.refresh()
}

// Reset removes every predicate and rebroadcasts the full canonical set.
func (s *Store) Reset() {
	if len(s.preds) == 0 {
		return
	}
	s.preds = make(map[string]Predicate)
	s.refresh()
}

// Filtered returns the current filtered pool.
func (s *Store) Filtered() []*model.Game { return s.filtered }

// Canonical returns the full record set, unaffected by filters.
func (s *Store) Canonical() []*model.Game { return s.canonical }

// Replace swaps in a new canonical record set, keeping the active
// predicates, and rebroadcasts. Used on full data reload.
func (s *Store) Replace(canonical []*model.Game) {
	s.canonical = canonical
	s.refresh()
}

// Describe returns the active predicates in key order, for robot output.
func (s *Store) Describe() []Description {
	keys := sortedKeys(s.preds)
	out := make([]Description, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.preds[k].Describe())
	}
	return out
}

// Apply recomputes the filtered pool from the canonical set without
// broadcasting. It is pure over the store's state: deterministic, and
// idempotent while predicates are unchanged.
func (s *Store) Apply() []*model.Game {
	s.filtered = s.compute()
	return s.filtered
}

func (s *Store) refresh() {
	s.filtered = s.compute()
	for _, fn := range s.listeners {
		fn(s.filtered)
	}
}

// compute tests every canonical record against every predicate, preserving
// canonical order. Records pass only when all predicates pass.
func (s *Store) compute() []*model.Game {
	out := make([]*model.Game, 0, len(s.canonical))
	for _, g := range s.canonical {
		if s.matchAll(g) {
			out = append(out, g)
		}
	}
	return out
}

func (s *Store) matchAll(g *model.Game) bool {
	for _, p := range s.preds {
		if !p.Match(g) {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
