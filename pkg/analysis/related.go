// Package analysis derives relationships over the canonical record set:
// the shared-genre relatedness index and the genre co-occurrence graph.
// All outputs are deterministic and capped unless a caller injects its own
// randomness for sampling.
package analysis

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/r-bassi/SteamVista/pkg/model"
)

const (
	// DefaultRelatedCap bounds a related sample in the standard layout.
	DefaultRelatedCap = 5
	// WideRelatedCap bounds a related sample when the host surface is wide.
	WideRelatedCap = 10

	// sharedGenreMin is the strict lower bound on shared tags: two records
	// are related only when they share MORE than this many genre tags.
	sharedGenreMin = 2
)

// Related reports whether a and b are related: distinct records sharing
// more than two genre tags.
func Related(a, b *model.Game) bool {
	if a == b || a.ID == b.ID {
		return false
	}
	return a.SharedGenres(b) > sharedGenreMin
}

// RelatedTo returns every record in pool related to g, in pool order.
// The result shares no backing array with pool.
func RelatedTo(g *model.Game, pool []*model.Game) []*model.Game {
	var out []*model.Game
	for _, other := range pool {
		if Related(g, other) {
			out = append(out, other)
		}
	}
	return out
}

// Sample shuffles related with rng and truncates to limit. The input slice
// is not modified; a nil rng keeps pool order and just truncates, which
// callers use for reproducible robot output.
func Sample(related []*model.Game, limit int, rng *rand.Rand) []*model.Game {
	out := make([]*model.Game, len(related))
	copy(out, related)
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildRelatedIndex fills RelatedCount on every record. Records with two
// or fewer genre tags cannot be related to anything and keep a zero count.
// Counting is O(n^2) over the catalog so records are processed in parallel.
func BuildRelatedIndex(ctx context.Context, games []*model.Game) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, game := range games {
		game := game
		if len(game.Genres) <= sharedGenreMin {
			game.RelatedCount = 0
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := 0
			for _, other := range games {
				if Related(game, other) {
					n++
				}
			}
			game.RelatedCount = n
			return nil
		})
	}
	return g.Wait()
}
