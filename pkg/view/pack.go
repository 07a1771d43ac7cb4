// Package view holds the data side of each coordinated view: every adapter
// consumes the filtered pool and selection broadcasts and exposes the
// layout-ready structure a renderer would draw. Layout mechanics (circle
// packing, force simulation, axis drawing) stay external.
package view

import (
	"github.com/r-bassi/SteamVista/pkg/model"
)

// PackAdapter maintains the genre-grouped hierarchy for the bubble/pack
// view: records grouped under their main genre, groups ordered by taxonomy
// rank, leaves sized by peak CCU.
type PackAdapter struct {
	taxonomy model.Taxonomy
	root     *model.PackNode
	selected string
	related  map[string]bool
}

// NewPackAdapter creates a pack adapter over the load-time taxonomy.
func NewPackAdapter(tax model.Taxonomy) *PackAdapter {
	return &PackAdapter{taxonomy: tax, root: model.BuildPackHierarchy(nil, tax)}
}

// OnFilteredDataChanged rebuilds the hierarchy from the new pool.
func (p *PackAdapter) OnFilteredDataChanged(records []*model.Game) {
	p.root = model.BuildPackHierarchy(records, p.taxonomy)
}

// OnSelectionChanged records the highlight set.
func (p *PackAdapter) OnSelectionChanged(selectedID string, relatedIDs []string) {
	p.selected = selectedID
	if selectedID == "" {
		p.related = nil
		return
	}
	p.related = make(map[string]bool, len(relatedIDs))
	for _, id := range relatedIDs {
		p.related[id] = true
	}
}

// Root returns the current hierarchy.
func (p *PackAdapter) Root() *model.PackNode { return p.root }

// Highlight classifies one record node for rendering: "selected",
// "related", or "" for no emphasis.
func (p *PackAdapter) Highlight(id string) string {
	switch {
	case id != "" && id == p.selected:
		return "selected"
	case p.related[id]:
		return "related"
	default:
		return ""
	}
}
