package model

import (
	"fmt"
	"math"
	"time"
)

// Game represents one catalog entry. Numeric fields use float64 so that a
// failed coercion can be carried as NaN; range filters treat NaN as
// never-matching rather than rejecting the record at load time.
type Game struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	ReleaseDate        time.Time `json:"release_date,omitzero"`
	Price              float64   `json:"price"`
	Rating             Rating    `json:"rating,omitempty"`
	MetacriticScore    float64   `json:"metacritic_score"`
	PositiveRatio      float64   `json:"positive_ratio"`
	UserReviews        float64   `json:"user_reviews"`
	UserScore          float64   `json:"user_score"`
	AveragePlaytime    float64   `json:"average_playtime_forever"`
	DLCCount           float64   `json:"dlc_count"`
	PeakCCU            float64   `json:"peak_ccu"`
	SupportedLanguages []string  `json:"supported_languages,omitempty"`
	Developers         string    `json:"developers,omitempty"`
	Publishers         string    `json:"publishers,omitempty"`
	About              string    `json:"about,omitempty"`
	Genres             []string  `json:"genres,omitempty"`

	// GenreMain is assigned once by the normalizer; empty for records
	// without genres, which group separately in the pack hierarchy.
	GenreMain string `json:"genre_main,omitempty"`

	// RelatedCount is filled by the relationship index. It is only
	// meaningful for records with more than two genre tags.
	RelatedCount int `json:"related_count,omitempty"`
}

// Clone creates a deep copy of the game.
func (g Game) Clone() Game {
	clone := g
	if g.SupportedLanguages != nil {
		clone.SupportedLanguages = make([]string, len(g.SupportedLanguages))
		copy(clone.SupportedLanguages, g.SupportedLanguages)
	}
	if g.Genres != nil {
		clone.Genres = make([]string, len(g.Genres))
		copy(clone.Genres, g.Genres)
	}
	return clone
}

// Validate checks if the game data is logically valid.
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game ID cannot be empty")
	}
	if g.Title == "" {
		return fmt.Errorf("game title cannot be empty")
	}
	if !math.IsNaN(g.Price) && g.Price < 0 {
		return fmt.Errorf("price (%v) cannot be negative", g.Price)
	}
	return nil
}

// HasGenre reports whether the game carries the given genre tag.
func (g *Game) HasGenre(tag string) bool {
	for _, t := range g.Genres {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedGenres returns the number of genre tags the game shares with other.
func (g *Game) SharedGenres(other *Game) int {
	n := 0
	for _, t := range g.Genres {
		if other.HasGenre(t) {
			n++
		}
	}
	return n
}

// Rating is the review-summary bucket assigned by the storefront.
type Rating string

const (
	RatingOverwhelminglyPositive Rating = "Overwhelmingly Positive"
	RatingVeryPositive           Rating = "Very Positive"
	RatingMostlyPositive         Rating = "Mostly Positive"
	RatingPositive               Rating = "Positive"
	RatingMixed                  Rating = "Mixed"
	RatingNegative               Rating = "Negative"
	RatingMostlyNegative         Rating = "Mostly Negative"
)

// IsValid returns true if the rating is a recognized bucket.
func (r Rating) IsValid() bool {
	switch r {
	case RatingOverwhelminglyPositive, RatingVeryPositive, RatingMostlyPositive,
		RatingPositive, RatingMixed, RatingNegative, RatingMostlyNegative:
		return true
	}
	return false
}

// Ratings lists all recognized buckets in storefront order.
func Ratings() []Rating {
	return []Rating{
		RatingOverwhelminglyPositive,
		RatingVeryPositive,
		RatingMostlyPositive,
		RatingPositive,
		RatingMixed,
		RatingNegative,
		RatingMostlyNegative,
	}
}

// Taxonomy is the genre popularity table computed once per load. It is an
// immutable value threaded into consumers by parameter, never ambient state.
type Taxonomy struct {
	// Popularity maps a genre tag to its occurrence count across the catalog.
	Popularity map[string]int `json:"popularity"`

	// Ranking lists genre tags in descending popularity order.
	Ranking []string `json:"ranking"`
}

// RankOf returns the position of tag in the ranking, or -1 if absent.
func (t Taxonomy) RankOf(tag string) int {
	for i, g := range t.Ranking {
		if g == tag {
			return i
		}
	}
	return -1
}
