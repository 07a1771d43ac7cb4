package model

import (
	"math"
	"testing"
	"time"
)

func TestRating_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"OverwhelminglyPositive", RatingOverwhelminglyPositive, true},
		{"VeryPositive", RatingVeryPositive, true},
		{"MostlyPositive", RatingMostlyPositive, true},
		{"Positive", RatingPositive, true},
		{"Mixed", RatingMixed, true},
		{"Negative", RatingNegative, true},
		{"MostlyNegative", RatingMostlyNegative, true},
		{"Invalid", "Stellar", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rating.IsValid(); got != tt.want {
				t.Errorf("Rating.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGame_Clone(t *testing.T) {
	g := Game{
		ID:                 "1",
		Title:              "Alpha",
		Genres:             []string{"Action", "Indie"},
		SupportedLanguages: []string{"English"},
	}
	c := g.Clone()
	c.Genres[0] = "Changed"
	c.SupportedLanguages[0] = "Changed"
	if g.Genres[0] != "Action" {
		t.Error("Clone() shares the Genres backing array")
	}
	if g.SupportedLanguages[0] != "English" {
		t.Error("Clone() shares the SupportedLanguages backing array")
	}
}

func TestGame_Validate(t *testing.T) {
	tests := []struct {
		name    string
		game    Game
		wantErr bool
	}{
		{"valid", Game{ID: "1", Title: "Alpha", Price: 10}, false},
		{"missing id", Game{Title: "Alpha"}, true},
		{"missing title", Game{ID: "1"}, true},
		{"negative price", Game{ID: "1", Title: "Alpha", Price: -1}, true},
		{"NaN price allowed", Game{ID: "1", Title: "Alpha", Price: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.game.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGame_SharedGenres(t *testing.T) {
	a := &Game{ID: "a", Genres: []string{"X", "Y", "Z", "W"}}
	b := &Game{ID: "b", Genres: []string{"X", "Y", "Z"}}
	c := &Game{ID: "c", Genres: []string{"Q"}}
	if got := a.SharedGenres(b); got != 3 {
		t.Errorf("SharedGenres(a, b) = %d, want 3", got)
	}
	if got := a.SharedGenres(c); got != 0 {
		t.Errorf("SharedGenres(a, c) = %d, want 0", got)
	}
	if got := c.SharedGenres(c); got != 1 {
		t.Errorf("SharedGenres(c, c) = %d, want 1", got)
	}
}

func TestTaxonomy_RankOf(t *testing.T) {
	tax := Taxonomy{Ranking: []string{"Action", "Indie"}}
	if got := tax.RankOf("Action"); got != 0 {
		t.Errorf("RankOf(Action) = %d, want 0", got)
	}
	if got := tax.RankOf("Indie"); got != 1 {
		t.Errorf("RankOf(Indie) = %d, want 1", got)
	}
	if got := tax.RankOf("Unknown"); got != -1 {
		t.Errorf("RankOf(Unknown) = %d, want -1", got)
	}
}

func TestGame_ZeroReleaseDate(t *testing.T) {
	g := Game{ID: "1", Title: "Alpha"}
	if !g.ReleaseDate.IsZero() {
		t.Error("zero value should carry the zero time")
	}
	dated := Game{ID: "2", Title: "Beta", ReleaseDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	if dated.ReleaseDate.IsZero() {
		t.Error("set date should not be zero")
	}
}
