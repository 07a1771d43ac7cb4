package model

import "sort"

// NodeKind tags a pack-hierarchy node. The hierarchy has exactly three
// levels: a single root, one group per main genre, and one leaf per game.
type NodeKind int

const (
	RootNode NodeKind = iota
	GenreGroupNode
	RecordNode
)

// String returns the kind name for display and debugging.
func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "root"
	case GenreGroupNode:
		return "genre"
	case RecordNode:
		return "game"
	}
	return "unknown"
}

// PackNode is one node of the pack hierarchy. Kind determines which of the
// payload fields is meaningful: Genre for GenreGroupNode, Game for
// RecordNode, neither for RootNode.
type PackNode struct {
	Kind     NodeKind
	Genre    string
	Game     *Game
	Children []*PackNode

	// Value is the subtree's peak-CCU sum, the sizing metric for the
	// bubble layout. NaN peak values contribute zero.
	Value float64
}

// UngroupedGenre labels the group that collects records without a main
// genre; they are kept apart from every real genre group.
const UngroupedGenre = "(ungrouped)"

// BuildPackHierarchy groups games by main genre and sizes every subtree by
// peak CCU. Group order follows the taxonomy ranking so the most popular
// genre comes first; the ungrouped bucket, when present, is placed last.
func BuildPackHierarchy(games []*Game, tax Taxonomy) *PackNode {
	byGenre := make(map[string][]*Game)
	for _, g := range games {
		key := g.GenreMain
		if key == "" {
			key = UngroupedGenre
		}
		byGenre[key] = append(byGenre[key], g)
	}

	root := &PackNode{Kind: RootNode}

	order := make([]string, 0, len(byGenre))
	for genre := range byGenre {
		if genre != UngroupedGenre {
			order = append(order, genre)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		ri, rj := tax.RankOf(order[i]), tax.RankOf(order[j])
		if ri != rj {
			return rankLess(ri, rj)
		}
		return order[i] < order[j]
	})
	if _, ok := byGenre[UngroupedGenre]; ok {
		order = append(order, UngroupedGenre)
	}

	for _, genre := range order {
		group := &PackNode{Kind: GenreGroupNode, Genre: genre}
		for _, g := range byGenre[genre] {
			leaf := &PackNode{Kind: RecordNode, Game: g, Value: sizeOf(g)}
			group.Children = append(group.Children, leaf)
			group.Value += leaf.Value
		}
		root.Children = append(root.Children, group)
		root.Value += group.Value
	}

	return root
}

// rankLess orders taxonomy ranks with unranked (-1) genres after all
// ranked ones.
func rankLess(a, b int) bool {
	if a < 0 {
		return false
	}
	if b < 0 {
		return true
	}
	return a < b
}

func sizeOf(g *Game) float64 {
	if g.PeakCCU != g.PeakCCU { // NaN
		return 0
	}
	return g.PeakCCU
}

// Walk visits the node and its descendants in depth-first order. The visit
// function returning false prunes the subtree.
func (n *PackNode) Walk(visit func(*PackNode) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// LeafCount returns the number of RecordNode descendants.
func (n *PackNode) LeafCount() int {
	count := 0
	n.Walk(func(p *PackNode) bool {
		if p.Kind == RecordNode {
			count++
		}
		return true
	})
	return count
}
