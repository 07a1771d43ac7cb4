package analysis

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// GenreGraph is the co-occurrence graph over genre tags: one node per tag,
// one weighted edge per tag pair that appears together on at least one
// record, weighted by how many records carry both.
type GenreGraph struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[string]int64
	names map[int64]string
}

// GenreScore pairs one genre tag with a computed metric.
type GenreScore struct {
	Genre string  `json:"genre"`
	Score float64 `json:"score"`
}

// GenreLink is one co-occurrence edge, for graph exports.
type GenreLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// BuildGenreGraph constructs the co-occurrence graph from the catalog.
// The empty tag is skipped; duplicate tags on one record count once.
func BuildGenreGraph(games []*model.Game) *GenreGraph {
	gg := &GenreGraph{
		g:     simple.NewWeightedUndirectedGraph(0, 0),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
	}
	for _, game := range games {
		tags := uniqueTags(game.Genres)
		for _, tag := range tags {
			gg.node(tag)
		}
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				gg.bump(tags[i], tags[j])
			}
		}
	}
	return gg
}

func uniqueTags(genres []string) []string {
	seen := make(map[string]bool, len(genres))
	var out []string
	for _, tag := range genres {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (gg *GenreGraph) node(tag string) int64 {
	if id, ok := gg.ids[tag]; ok {
		return id
	}
	id := int64(len(gg.ids))
	gg.ids[tag] = id
	gg.names[id] = tag
	gg.g.AddNode(simple.Node(id))
	return id
}

func (gg *GenreGraph) bump(a, b string) {
	ai, bi := gg.ids[a], gg.ids[b]
	w := 0.0
	if e := gg.g.WeightedEdge(ai, bi); e != nil {
		w = e.Weight()
	}
	gg.g.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(ai), T: simple.Node(bi), W: w + 1,
	})
}

// Genres lists every tag in the graph, sorted.
func (gg *GenreGraph) Genres() []string {
	out := make([]string, 0, len(gg.ids))
	for tag := range gg.ids {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// CoOccurrence returns how many records carry both tags.
func (gg *GenreGraph) CoOccurrence(a, b string) float64 {
	ai, aok := gg.ids[a]
	bi, bok := gg.ids[b]
	if !aok || !bok {
		return 0
	}
	e := gg.g.WeightedEdge(ai, bi)
	if e == nil {
		return 0
	}
	return e.Weight()
}

// Degree returns the number of distinct tags co-occurring with tag.
func (gg *GenreGraph) Degree(tag string) int {
	id, ok := gg.ids[tag]
	if !ok {
		return 0
	}
	return gg.g.From(id).Len()
}

// Links returns every co-occurrence edge with deterministic ordering.
func (gg *GenreGraph) Links() []GenreLink {
	var out []GenreLink
	edges := gg.g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		a, b := gg.names[e.From().ID()], gg.names[e.To().ID()]
		if a > b {
			a, b = b, a
		}
		out = append(out, GenreLink{Source: a, Target: b, Weight: e.Weight()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// Centrality ranks tags by PageRank over the co-occurrence structure.
// Undirected edges are mirrored into a directed graph because PageRank is
// defined over directed walks. Ties break on tag name so the order is
// stable across runs.
func (gg *GenreGraph) Centrality() []GenreScore {
	if len(gg.ids) == 0 {
		return nil
	}
	dg := simple.NewWeightedDirectedGraph(0, 0)
	for id := range gg.names {
		dg.AddNode(simple.Node(id))
	}
	edges := gg.g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		f, t, w := e.From().ID(), e.To().ID(), e.Weight()
		dg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(f), T: simple.Node(t), W: w})
		dg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(t), T: simple.Node(f), W: w})
	}

	ranks := network.PageRank(dg, 0.85, 1e-6)
	out := make([]GenreScore, 0, len(ranks))
	for id, score := range ranks {
		out = append(out, GenreScore{Genre: gg.names[id], Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
