package loader

import (
	"sort"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// Options configures normalization.
type Options struct {
	// MiscGenres lists the niche tags collapsed into MiscLabel. Each
	// qualifying tag is removed and at most one MiscLabel entry is added
	// per record.
	MiscGenres []string `yaml:"misc_genres"`
	MiscLabel  string   `yaml:"misc_label"`
}

// DefaultOptions returns the stock niche-genre list.
func DefaultOptions() Options {
	return Options{
		MiscGenres: []string{
			"Animation & Modeling",
			"Audio Production",
			"Design & Illustration",
			"Education",
			"Game Development",
			"Photo Editing",
			"Software Training",
			"Utilities",
			"Video Production",
			"Web Publishing",
		},
		MiscLabel: "Miscellaneous",
	}
}

// Normalize performs the one-time transform of raw rows into the canonical
// record set: field coercion, genre derivation, niche-genre collapsing,
// popularity ranking, and main-genre assignment.
func Normalize(rows []Row, opts Options) *Catalog {
	games := make([]*model.Game, 0, len(rows))
	for _, row := range rows {
		g := gameFromRow(row)
		collapseMisc(&g, opts)
		games = append(games, &g)
	}

	tax := buildTaxonomy(games)
	for _, g := range games {
		g.GenreMain = mainGenre(g.Genres, tax)
	}

	return &Catalog{Games: games, Taxonomy: tax}
}

// NormalizeGames is Normalize for records that are already typed, used when
// the dataset arrives pre-coerced (JSON exports of this tool, tests).
func NormalizeGames(games []model.Game, opts Options) *Catalog {
	ptrs := make([]*model.Game, 0, len(games))
	for i := range games {
		g := games[i].Clone()
		collapseMisc(&g, opts)
		ptrs = append(ptrs, &g)
	}
	tax := buildTaxonomy(ptrs)
	for _, g := range ptrs {
		g.GenreMain = mainGenre(g.Genres, tax)
	}
	return &Catalog{Games: ptrs, Taxonomy: tax}
}

// collapseMisc replaces every qualifying niche tag with at most one
// MiscLabel entry, preserving the relative order of the surviving tags.
func collapseMisc(g *model.Game, opts Options) {
	if len(opts.MiscGenres) == 0 {
		return
	}
	misc := make(map[string]bool, len(opts.MiscGenres))
	for _, m := range opts.MiscGenres {
		misc[m] = true
	}

	collapsed := false
	out := g.Genres[:0]
	for _, tag := range g.Genres {
		if misc[tag] {
			collapsed = true
			continue
		}
		if tag == opts.MiscLabel {
			collapsed = true
			continue
		}
		out = append(out, tag)
	}
	if collapsed {
		out = append(out, opts.MiscLabel)
	}
	g.Genres = out
}

// buildTaxonomy tallies occurrences of every surviving genre tag and ranks
// tags by descending popularity. An empty-string tag is discarded before
// ranking; ties keep first-occurrence order so the ranking is deterministic.
func buildTaxonomy(games []*model.Game) model.Taxonomy {
	pop := make(map[string]int)
	var seen []string
	for _, g := range games {
		for _, tag := range g.Genres {
			if _, ok := pop[tag]; !ok {
				seen = append(seen, tag)
			}
			pop[tag]++
		}
	}
	delete(pop, "")

	firstSeen := make(map[string]int, len(seen))
	for i, tag := range seen {
		firstSeen[tag] = i
	}

	ranking := make([]string, 0, len(pop))
	for tag := range pop {
		ranking = append(ranking, tag)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if pop[ranking[i]] != pop[ranking[j]] {
			return pop[ranking[i]] > pop[ranking[j]]
		}
		return firstSeen[ranking[i]] < firstSeen[ranking[j]]
	})

	return model.Taxonomy{Popularity: pop, Ranking: ranking}
}

// mainGenre reproduces the source tool's assignment: scan the record's
// tags tracking the LARGEST ranking index seen, so with multiple tags the
// least popular one wins. That comparison looks unintended (the natural
// pick would be the most popular tag) but is kept for compatibility with
// existing catalogs. Records with no ranked tags get no main genre.
func mainGenre(genres []string, tax model.Taxonomy) string {
	highest := -1
	for _, tag := range genres {
		if idx := tax.RankOf(tag); idx >= highest {
			highest = idx
		}
	}
	if highest < 0 || highest >= len(tax.Ranking) {
		return ""
	}
	return tax.Ranking[highest]
}
