package analysis

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/r-bassi/SteamVista/pkg/model"
)

func game(id string, genres ...string) *model.Game {
	return &model.Game{ID: id, Title: "Game " + id, Genres: genres}
}

func TestRelated_SharedGenreThreshold(t *testing.T) {
	a := game("a", "Action", "Indie", "RPG", "Strategy")
	tests := []struct {
		name  string
		other *model.Game
		want  bool
	}{
		{"three shared", game("b", "Action", "Indie", "RPG"), true},
		{"exactly two shared", game("c", "Action", "Indie"), false},
		{"one shared", game("d", "Action"), false},
		{"none shared", game("e", "Racing"), false},
		{"self", a, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Related(a, tt.other); got != tt.want {
				t.Errorf("Related() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelatedTo_ExcludesSelf(t *testing.T) {
	a := game("a", "Action", "Indie", "RPG")
	pool := []*model.Game{
		a,
		game("b", "Action", "Indie", "RPG"),
		game("c", "Action", "Indie", "RPG", "Strategy"),
		game("d", "Racing"),
	}
	got := RelatedTo(a, pool)
	if len(got) != 2 {
		t.Fatalf("RelatedTo() returned %d records, want 2", len(got))
	}
	for _, g := range got {
		if g.ID == "a" {
			t.Error("RelatedTo() must not include the record itself")
		}
	}
}

func TestSample_CapAndShuffle(t *testing.T) {
	var pool []*model.Game
	for i := 0; i < 20; i++ {
		pool = append(pool, game(fmt.Sprintf("g%d", i), "Action", "Indie", "RPG"))
	}

	got := Sample(pool, DefaultRelatedCap, rand.New(rand.NewSource(1)))
	if len(got) != DefaultRelatedCap {
		t.Errorf("Sample() returned %d records, want %d", len(got), DefaultRelatedCap)
	}

	wide := Sample(pool, WideRelatedCap, rand.New(rand.NewSource(1)))
	if len(wide) != WideRelatedCap {
		t.Errorf("Sample() wide returned %d records, want %d", len(wide), WideRelatedCap)
	}

	// Same seed, same order.
	a := Sample(pool, DefaultRelatedCap, rand.New(rand.NewSource(7)))
	b := Sample(pool, DefaultRelatedCap, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("Sample() with equal seeds diverged at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}

	// Nil rng keeps pool order.
	det := Sample(pool, 3, nil)
	if det[0].ID != "g0" || det[1].ID != "g1" || det[2].ID != "g2" {
		t.Errorf("Sample() with nil rng reordered: %s %s %s", det[0].ID, det[1].ID, det[2].ID)
	}

	// Input must not be mutated.
	if pool[0].ID != "g0" {
		t.Error("Sample() mutated its input slice")
	}
}

func TestSample_FewerThanCap(t *testing.T) {
	pool := []*model.Game{game("a", "Action")}
	got := Sample(pool, DefaultRelatedCap, rand.New(rand.NewSource(1)))
	if len(got) != 1 {
		t.Errorf("Sample() returned %d records, want 1", len(got))
	}
}

func TestBuildRelatedIndex(t *testing.T) {
	games := []*model.Game{
		game("a", "Action", "Indie", "RPG"),
		game("b", "Action", "Indie", "RPG"),
		game("c", "Action", "Indie", "RPG", "Strategy"),
		game("d", "Action", "Indie"), // two genres only, never counted
		game("e", "Racing"),
	}
	if err := BuildRelatedIndex(context.Background(), games); err != nil {
		t.Fatalf("BuildRelatedIndex() error = %v", err)
	}
	wants := map[string]int{"a": 2, "b": 2, "c": 2, "d": 0, "e": 0}
	for _, g := range games {
		if g.RelatedCount != wants[g.ID] {
			t.Errorf("RelatedCount[%s] = %d, want %d", g.ID, g.RelatedCount, wants[g.ID])
		}
	}
}

func TestBuildRelatedIndex_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	games := []*model.Game{
		game("a", "Action", "Indie", "RPG"),
		game("b", "Action", "Indie", "RPG"),
	}
	if err := BuildRelatedIndex(ctx, games); err == nil {
		t.Error("BuildRelatedIndex() with canceled context should fail")
	}
}
