package model

import (
	"math"
	"testing"
)

func packFixture() ([]*Game, Taxonomy) {
	games := []*Game{
		{ID: "1", GenreMain: "Action", PeakCCU: 100},
		{ID: "2", GenreMain: "Action", PeakCCU: 50},
		{ID: "3", GenreMain: "Indie", PeakCCU: math.NaN()},
		{ID: "4", GenreMain: "", PeakCCU: 10},
	}
	tax := Taxonomy{
		Popularity: map[string]int{"Action": 2, "Indie": 1},
		Ranking:    []string{"Action", "Indie"},
	}
	return games, tax
}

func TestBuildPackHierarchy(t *testing.T) {
	games, tax := packFixture()
	root := BuildPackHierarchy(games, tax)

	if root.Kind != RootNode {
		t.Fatalf("root kind = %v, want RootNode", root.Kind)
	}
	if len(root.Children) != 3 {
		t.Fatalf("got %d groups, want 3", len(root.Children))
	}
	for _, group := range root.Children {
		if group.Kind != GenreGroupNode {
			t.Errorf("group kind = %v, want GenreGroupNode", group.Kind)
		}
		for _, leaf := range group.Children {
			if leaf.Kind != RecordNode {
				t.Errorf("leaf kind = %v, want RecordNode", leaf.Kind)
			}
		}
	}

	// Rank order, ungrouped last.
	if root.Children[0].Genre != "Action" ||
		root.Children[1].Genre != "Indie" ||
		root.Children[2].Genre != UngroupedGenre {
		t.Errorf("group order = %s, %s, %s",
			root.Children[0].Genre, root.Children[1].Genre, root.Children[2].Genre)
	}

	// Sizing: NaN peak contributes zero.
	if root.Children[0].Value != 150 {
		t.Errorf("Action group value = %v, want 150", root.Children[0].Value)
	}
	if root.Children[1].Value != 0 {
		t.Errorf("Indie group value = %v, want 0", root.Children[1].Value)
	}
	if root.Value != 160 {
		t.Errorf("root value = %v, want 160", root.Value)
	}
}

func TestBuildPackHierarchy_Empty(t *testing.T) {
	root := BuildPackHierarchy(nil, Taxonomy{})
	if root == nil || root.Kind != RootNode {
		t.Fatal("empty hierarchy should still have a root")
	}
	if len(root.Children) != 0 {
		t.Errorf("empty hierarchy has %d groups", len(root.Children))
	}
	if got := root.LeafCount(); got != 0 {
		t.Errorf("LeafCount() = %d, want 0", got)
	}
}

func TestPackNode_Walk(t *testing.T) {
	games, tax := packFixture()
	root := BuildPackHierarchy(games, tax)

	visited := 0
	root.Walk(func(n *PackNode) bool {
		visited++
		return true
	})
	// 1 root + 3 groups + 4 leaves.
	if visited != 8 {
		t.Errorf("Walk() visited %d nodes, want 8", visited)
	}

	// Pruning a group skips its leaves.
	visited = 0
	root.Walk(func(n *PackNode) bool {
		visited++
		return n.Kind != GenreGroupNode
	})
	if visited != 4 {
		t.Errorf("pruned Walk() visited %d nodes, want 4", visited)
	}
}

func TestNodeKind_String(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{RootNode, "root"},
		{GenreGroupNode, "genre"},
		{RecordNode, "game"},
		{NodeKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
