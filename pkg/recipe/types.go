// Package recipe defines reusable view presets: named bundles of filter
// values, sort order, and display options, loadable from YAML.
package recipe

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/r-bassi/SteamVista/pkg/filter"
	"github.com/r-bassi/SteamVista/pkg/model"
)

// Recipe defines a reusable view configuration for the catalog.
type Recipe struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Filters     FilterConfig `yaml:"filters,omitempty" json:"filters,omitempty"`
	Sort        SortConfig   `yaml:"sort,omitempty" json:"sort,omitempty"`
	View        ViewConfig   `yaml:"view,omitempty" json:"view,omitempty"`
}

// RangeConfig is one numeric bound pair. A nil side is unbounded.
type RangeConfig struct {
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// FilterConfig holds the filter values a recipe installs. Zero fields
// install nothing for that dimension.
type FilterConfig struct {
	Price          *RangeConfig `yaml:"price,omitempty" json:"price,omitempty"`
	PeakCCU        *RangeConfig `yaml:"peak_ccu,omitempty" json:"peak_ccu,omitempty"`
	PositiveRatio  *RangeConfig `yaml:"positive_ratio,omitempty" json:"positive_ratio,omitempty"`
	UserScore      *RangeConfig `yaml:"user_score,omitempty" json:"user_score,omitempty"`
	UserReviews    *RangeConfig `yaml:"user_reviews,omitempty" json:"user_reviews,omitempty"`
	Playtime       *RangeConfig `yaml:"average_playtime,omitempty" json:"average_playtime,omitempty"`
	DLCCount       *RangeConfig `yaml:"dlc_count,omitempty" json:"dlc_count,omitempty"`
	ReleasedAfter  string       `yaml:"released_after,omitempty" json:"released_after,omitempty"`   // relative "14d", "2w", "1m", "1y" or ISO date
	ReleasedBefore string       `yaml:"released_before,omitempty" json:"released_before,omitempty"` // relative or ISO date
	Rating         string       `yaml:"rating,omitempty" json:"rating,omitempty"`
	Genres         []string     `yaml:"genres,omitempty" json:"genres,omitempty"`
	Languages      []string     `yaml:"languages,omitempty" json:"languages,omitempty"`
}

// SortConfig defines how to order the filtered pool for list surfaces.
type SortConfig struct {
	Field     string      `yaml:"field" json:"field"`                             // price, release, peak_ccu, positive_ratio, playtime, title, related
	Direction string      `yaml:"direction,omitempty" json:"direction,omitempty"` // asc, desc
	Secondary *SortConfig `yaml:"secondary,omitempty" json:"secondary,omitempty"` // tie-breaker
}

// ViewConfig controls display options.
type ViewConfig struct {
	GroupBy       string `yaml:"group_by,omitempty" json:"group_by,omitempty"` // genre, none
	MaxItems      int    `yaml:"max_items,omitempty" json:"max_items,omitempty"`
	WideRelated   bool   `yaml:"wide_related,omitempty" json:"wide_related,omitempty"` // sample 10 related records instead of 5
	TruncateTitle int    `yaml:"truncate_title,omitempty" json:"truncate_title,omitempty"`
}

// relativeTimePattern matches relative time expressions like "14d", "2w", "1m", "1y".
var relativeTimePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// ParseRelativeTime converts a relative time string to an absolute time
// counted back from now. Supports Nd, Nw, Nm, Ny, plus ISO 8601 dates.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	s = strings.TrimSpace(s)

	if matches := relativeTimePattern.FindStringSubmatch(strings.ToLower(s)); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		switch matches[2] {
		case "d":
			return now.AddDate(0, 0, -n), nil
		case "w":
			return now.AddDate(0, 0, -n*7), nil
		case "m":
			return now.AddDate(0, -n, 0), nil
		case "y":
			return now.AddDate(-n, 0, 0), nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &TimeParseError{Input: s}
}

// TimeParseError indicates a time parsing failure.
type TimeParseError struct {
	Input string
}

func (e *TimeParseError) Error() string {
	return "invalid time format: " + e.Input + " (expected relative like '14d', '2w', '1m' or ISO date)"
}

// Predicates converts the filter config into keyed predicates ready for
// the store. Date expressions resolve against now.
func (c FilterConfig) Predicates(now time.Time) (map[string]filter.Predicate, error) {
	out := make(map[string]filter.Predicate)

	ranges := map[string]*RangeConfig{
		"price":            c.Price,
		"peak_ccu":         c.PeakCCU,
		"positive_ratio":   c.PositiveRatio,
		"user_score":       c.UserScore,
		"user_reviews":     c.UserReviews,
		"average_playtime": c.Playtime,
		"dlc_count":        c.DLCCount,
	}
	for field, rc := range ranges {
		if rc == nil {
			continue
		}
		min, max := math.Inf(-1), math.Inf(1)
		if rc.Min != nil {
			min = *rc.Min
		}
		if rc.Max != nil {
			max = *rc.Max
		}
		out[field] = filter.NumRange{Field: field, Min: min, Max: max}
	}

	if c.ReleasedAfter != "" || c.ReleasedBefore != "" {
		start, err := ParseRelativeTime(c.ReleasedAfter, now)
		if err != nil {
			return nil, fmt.Errorf("released_after: %w", err)
		}
		end, err := ParseRelativeTime(c.ReleasedBefore, now)
		if err != nil {
			return nil, fmt.Errorf("released_before: %w", err)
		}
		out["release_date"] = filter.DateRange{Start: start, End: end}
	}

	if c.Rating != "" {
		out["rating"] = filter.Category{Field: "rating", Value: c.Rating}
	}
	if len(c.Genres) > 0 {
		out["genres"] = filter.AnyOf{Field: "genres", Allowed: c.Genres}
	}
	if len(c.Languages) > 0 {
		out["languages"] = filter.AnyOf{Field: "languages", Allowed: c.Languages}
	}

	return out, nil
}

// Less compares two records under the sort config. Unparseable fields
// sort last regardless of direction.
func (s SortConfig) Less(a, b *model.Game) bool {
	cmp := s.compare(a, b)
	if cmp == 0 && s.Secondary != nil {
		return s.Secondary.Less(a, b)
	}
	return cmp < 0
}

func (s SortConfig) compare(a, b *model.Game) int {
	desc := strings.EqualFold(s.Direction, "desc")

	switch s.Field {
	case "title":
		return flip(strings.Compare(a.Title, b.Title), desc)
	case "release":
		switch {
		case a.ReleaseDate.IsZero() && b.ReleaseDate.IsZero():
			return 0
		case a.ReleaseDate.IsZero():
			return 1
		case b.ReleaseDate.IsZero():
			return -1
		case a.ReleaseDate.Before(b.ReleaseDate):
			return flip(-1, desc)
		case a.ReleaseDate.After(b.ReleaseDate):
			return flip(1, desc)
		}
		return 0
	case "related":
		return flip(intCompare(a.RelatedCount, b.RelatedCount), desc)
	default:
		av, bv := numField(s.Field, a), numField(s.Field, b)
		switch {
		case math.IsNaN(av) && math.IsNaN(bv):
			return 0
		case math.IsNaN(av):
			return 1
		case math.IsNaN(bv):
			return -1
		case av < bv:
			return flip(-1, desc)
		case av > bv:
			return flip(1, desc)
		}
		return 0
	}
}

func numField(field string, g *model.Game) float64 {
	switch field {
	case "price":
		return g.Price
	case "peak_ccu":
		return g.PeakCCU
	case "positive_ratio":
		return g.PositiveRatio
	case "user_score":
		return g.UserScore
	case "playtime", "average_playtime":
		return g.AveragePlaytime
	case "dlc_count":
		return g.DLCCount
	default:
		return math.NaN()
	}
}

func flip(cmp int, desc bool) int {
	if desc {
		return -cmp
	}
	return cmp
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortGames orders the pool in place under the config. A zero config
// leaves the pool untouched.
func (s SortConfig) SortGames(games []*model.Game) {
	if s.Field == "" {
		return
	}
	sort.SliceStable(games, func(i, j int) bool {
		return s.Less(games[i], games[j])
	})
}

func f(v float64) *float64 { return &v }

// DefaultRecipe shows the whole catalog grouped by genre.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:        "default",
		Description: "Full catalog grouped by main genre",
		Sort:        SortConfig{Field: "peak_ccu", Direction: "desc"},
		View:        ViewConfig{GroupBy: "genre"},
	}
}

// FreeToPlayRecipe keeps only zero-price records.
func FreeToPlayRecipe() Recipe {
	return Recipe{
		Name:        "free-to-play",
		Description: "Free titles ordered by concurrent players",
		Filters:     FilterConfig{Price: &RangeConfig{Min: f(0), Max: f(0)}},
		Sort:        SortConfig{Field: "peak_ccu", Direction: "desc"},
	}
}

// RecentRecipe keeps titles released in the last year.
func RecentRecipe() Recipe {
	return Recipe{
		Name:        "recent",
		Description: "Released in the last year",
		Filters:     FilterConfig{ReleasedAfter: "1y"},
		Sort:        SortConfig{Field: "release", Direction: "desc"},
	}
}

// HighlyRatedRecipe keeps well reviewed titles.
func HighlyRatedRecipe() Recipe {
	return Recipe{
		Name:        "highly-rated",
		Description: "Positive ratio of 80 or better",
		Filters: FilterConfig{
			PositiveRatio: &RangeConfig{Min: f(80)},
			UserReviews:   &RangeConfig{Min: f(100)},
		},
		Sort: SortConfig{
			Field:     "positive_ratio",
			Direction: "desc",
			Secondary: &SortConfig{Field: "peak_ccu", Direction: "desc"},
		},
	}
}

// HiddenGemsRecipe keeps loved titles with small audiences.
func HiddenGemsRecipe() Recipe {
	return Recipe{
		Name:        "hidden-gems",
		Description: "High scores, under a thousand reviews",
		Filters: FilterConfig{
			PositiveRatio: &RangeConfig{Min: f(85)},
			UserReviews:   &RangeConfig{Max: f(1000)},
		},
		Sort: SortConfig{Field: "positive_ratio", Direction: "desc"},
		View: ViewConfig{WideRelated: true},
	}
}

// MultiplayerGiantsRecipe keeps titles with huge concurrent audiences.
func MultiplayerGiantsRecipe() Recipe {
	return Recipe{
		Name:        "multiplayer-giants",
		Description: "Peak concurrency above ten thousand",
		Filters:     FilterConfig{PeakCCU: &RangeConfig{Min: f(10000)}},
		Sort:        SortConfig{Field: "peak_ccu", Direction: "desc"},
		View:        ViewConfig{MaxItems: 50},
	}
}

// BuiltinRecipes returns all built-in recipes.
func BuiltinRecipes() []Recipe {
	return []Recipe{
		DefaultRecipe(),
		FreeToPlayRecipe(),
		RecentRecipe(),
		HighlyRatedRecipe(),
		HiddenGemsRecipe(),
		MultiplayerGiantsRecipe(),
	}
}
