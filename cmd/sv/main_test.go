package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/r-bassi/SteamVista/pkg/dashboard"
	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/recipe"
)

const fixtureCSV = `AppID,Name,Price,Release date,Genres,Peak CCU
10,Alpha Strike,9.99,"Jan 5, 2020","Action,Shooter",1200
20,Beta Quest,0,"Mar 2, 2023","Action,RPG",300
30,Gamma Farm,19.99,"Jul 9, 2021",Simulation,80
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog(writeFixture(t), "")
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if len(cat.Games) != 3 {
		t.Fatalf("loadCatalog() returned %d games, want 3", len(cat.Games))
	}
	if cat.Taxonomy.Ranking[0] != "Action" {
		t.Errorf("top ranked genre = %q, want Action", cat.Taxonomy.Ranking[0])
	}
}

func TestLoadCatalogMiscOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "misc.yaml")
	yml := "misc_genres:\n  - Simulation\nmisc_label: Other\n"
	if err := os.WriteFile(cfg, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := loadCatalog(writeFixture(t), cfg)
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}

	var gamma *model.Game
	for _, g := range cat.Games {
		if g.ID == "30" {
			gamma = g
		}
	}
	if gamma == nil {
		t.Fatal("fixture game 30 missing")
	}
	if len(gamma.Genres) != 1 || gamma.Genres[0] != "Other" {
		t.Errorf("genres after override = %v, want [Other]", gamma.Genres)
	}
}

func TestFindGame(t *testing.T) {
	pool := []*model.Game{{ID: "10"}, {ID: "20"}}
	if g := findGame(pool, "20"); g == nil || g.ID != "20" {
		t.Errorf("findGame(20) = %v", g)
	}
	if g := findGame(pool, "99"); g != nil {
		t.Errorf("findGame(99) = %v, want nil", g)
	}
}

func TestSortedPoolAppliesRecipeSort(t *testing.T) {
	cat, err := loadCatalog(writeFixture(t), "")
	if err != nil {
		t.Fatal(err)
	}
	dash, err := dashboard.New(context.Background(), cat, dashboard.Options{})
	if err != nil {
		t.Fatal(err)
	}

	r := &recipe.Recipe{Sort: recipe.SortConfig{Field: "price", Direction: "desc"}}
	pool := sortedPool(dash, r)
	if pool[0].ID != "30" {
		t.Errorf("price desc sort put %s first, want 30", pool[0].ID)
	}

	// No sort field keeps dashboard order and identity.
	plain := sortedPool(dash, nil)
	if len(plain) != 3 || plain[0].ID != "10" {
		t.Errorf("unsorted pool = %v games starting with %s, want 10", len(plain), plain[0].ID)
	}
}

func TestValidateOptionalNumber(t *testing.T) {
	if err := validateOptionalNumber(""); err != nil {
		t.Errorf("empty string rejected: %v", err)
	}
	if err := validateOptionalNumber("12.5"); err != nil {
		t.Errorf("12.5 rejected: %v", err)
	}
	if err := validateOptionalNumber("abc"); err == nil {
		t.Error("abc accepted")
	}
}
