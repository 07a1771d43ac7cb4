package view

import (
	"sort"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// ForceNode is one node of the force-directed view: either a genre hub or
// a game. Kind distinguishes them explicitly rather than by field presence.
type ForceNode struct {
	ID    string         `json:"id"`
	Kind  model.NodeKind `json:"kind"`
	Title string         `json:"title,omitempty"`
	Size  float64        `json:"size,omitempty"`
}

// ForceLink connects a genre hub to a game carrying that genre tag.
type ForceLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ForceGraph is the node/link assembly consumed by the force layout.
type ForceGraph struct {
	Nodes []ForceNode `json:"nodes"`
	Links []ForceLink `json:"links"`
}

// BuildForceGraph assembles genre hubs and game nodes from the pool: one
// node per distinct non-empty genre tag, one node per game, one link per
// (genre, game) incidence. Ordering is deterministic: genres sorted, games
// in pool order, links in game-then-genre order.
func BuildForceGraph(records []*model.Game) *ForceGraph {
	genreSet := make(map[string]bool)
	for _, g := range records {
		for _, tag := range g.Genres {
			if tag != "" {
				genreSet[tag] = true
			}
		}
	}
	genres := make([]string, 0, len(genreSet))
	for tag := range genreSet {
		genres = append(genres, tag)
	}
	sort.Strings(genres)

	fg := &ForceGraph{}
	for _, tag := range genres {
		fg.Nodes = append(fg.Nodes, ForceNode{ID: tag, Kind: model.GenreGroupNode})
	}
	for _, g := range records {
		fg.Nodes = append(fg.Nodes, ForceNode{
			ID:    g.ID,
			Kind:  model.RecordNode,
			Title: g.Title,
			Size:  float64(g.RelatedCount),
		})
		for _, tag := range g.Genres {
			if tag != "" {
				fg.Links = append(fg.Links, ForceLink{Source: tag, Target: g.ID})
			}
		}
	}
	return fg
}

// ForceAdapter maintains the force-graph assembly for the filtered pool.
type ForceAdapter struct {
	graph    *ForceGraph
	selected string
}

func NewForceAdapter() *ForceAdapter {
	return &ForceAdapter{graph: &ForceGraph{}}
}

// OnFilteredDataChanged rebuilds the node/link assembly.
func (f *ForceAdapter) OnFilteredDataChanged(records []*model.Game) {
	f.graph = BuildForceGraph(records)
}

// OnSelectionChanged records the emphasized node.
func (f *ForceAdapter) OnSelectionChanged(selectedID string, relatedIDs []string) {
	f.selected = selectedID
}

// Graph returns the current assembly.
func (f *ForceAdapter) Graph() *ForceGraph { return f.graph }

// SelectedID returns the emphasized record id, empty when idle.
func (f *ForceAdapter) SelectedID() string { return f.selected }
