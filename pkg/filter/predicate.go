// Package filter holds the filter predicate store: the mapping from filter
// key to predicate parameters, and the pure conjunctive application of all
// predicates to the canonical record set.
//
// Misconfigured predicates are never errors at match time. A numeric range
// with min greater than max matches nothing, NaN field values never match a
// range, the zero time on a record never matches an active date range, and
// an empty allowed set matches everything. The store degrades to empty
// results rather than failing a session.
package filter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// Predicate tests one record against one configured filter dimension.
type Predicate interface {
	Match(g *model.Game) bool
	// Validate rejects predicates referencing unknown fields. Parameter
	// misconfiguration (inverted ranges) is deliberately not an error.
	Validate() error
	// Describe returns the JSON-friendly form used by robot output.
	Describe() Description
}

// Description is the serialized form of one predicate.
type Description struct {
	Kind    string    `json:"kind"`
	Field   string    `json:"field"`
	Min     *float64  `json:"min,omitempty"`
	Max     *float64  `json:"max,omitempty"`
	Start   time.Time `json:"start,omitzero"`
	End     time.Time `json:"end,omitzero"`
	Value   string    `json:"value,omitempty"`
	Allowed []string  `json:"allowed,omitempty"`
}

// Numeric field accessors, keyed by the names the filter UI and recipes use.
var numFields = map[string]func(*model.Game) float64{
	"price":            func(g *model.Game) float64 { return g.Price },
	"metacritic_score": func(g *model.Game) float64 { return g.MetacriticScore },
	"positive_ratio":   func(g *model.Game) float64 { return g.PositiveRatio },
	"user_reviews":     func(g *model.Game) float64 { return g.UserReviews },
	"user_score":       func(g *model.Game) float64 { return g.UserScore },
	"average_playtime": func(g *model.Game) float64 { return g.AveragePlaytime },
	"dlc_count":        func(g *model.Game) float64 { return g.DLCCount },
	"peak_ccu":         func(g *model.Game) float64 { return g.PeakCCU },
	"related_count":    func(g *model.Game) float64 { return float64(g.RelatedCount) },
}

// Categorical field accessors. The bool marks case-insensitive fields.
var catFields = map[string]struct {
	get  func(*model.Game) string
	fold bool
}{
	"rating":     {func(g *model.Game) string { return string(g.Rating) }, true},
	"genre_main": {func(g *model.Game) string { return g.GenreMain }, false},
	"developers": {func(g *model.Game) string { return g.Developers }, true},
	"publishers": {func(g *model.Game) string { return g.Publishers }, true},
}

// Set-valued field accessors.
var setFields = map[string]func(*model.Game) []string{
	"genres":    func(g *model.Game) []string { return g.Genres },
	"languages": func(g *model.Game) []string { return g.SupportedLanguages },
}

// NumFieldNames lists the numeric filter dimensions, for UIs and recipes.
func NumFieldNames() []string {
	return sortedKeys(numFields)
}

// SetFieldNames lists the set-valued filter dimensions.
func SetFieldNames() []string {
	return sortedKeys(setFields)
}

// NumRange matches records whose numeric field falls inside [Min, Max]
// inclusive. NaN never matches; Min > Max matches nothing.
type NumRange struct {
	Field string
	Min   float64
	Max   float64
}

func (p NumRange) Match(g *model.Game) bool {
	get, ok := numFields[p.Field]
	if !ok {
		return false
	}
	v := get(g)
	if math.IsNaN(v) || p.Min > p.Max {
		return false
	}
	return v >= p.Min && v <= p.Max
}

func (p NumRange) Validate() error {
	if _, ok := numFields[p.Field]; !ok {
		return fmt.Errorf("unknown numeric field %q", p.Field)
	}
	return nil
}

func (p NumRange) Describe() Description {
	min, max := p.Min, p.Max
	return Description{Kind: "range", Field: p.Field, Min: &min, Max: &max}
}

// DateRange matches records whose release date falls inside [Start, End]
// inclusive. A zero bound leaves that side unbounded; a record whose date
// failed to parse (the zero time) never matches an active date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (p DateRange) Match(g *model.Game) bool {
	d := g.ReleaseDate
	if d.IsZero() {
		return false
	}
	if !p.Start.IsZero() && d.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && d.After(p.End) {
		return false
	}
	return true
}

func (p DateRange) Validate() error { return nil }

func (p DateRange) Describe() Description {
	return Description{Kind: "date_range", Field: "release_date", Start: p.Start, End: p.End}
}

// Category matches records whose categorical field equals Value exactly.
// An empty Value means no filter and always matches. Comparison folds case
// for fields marked case-insensitive.
type Category struct {
	Field string
	Value string
}

func (p Category) Match(g *model.Game) bool {
	if p.Value == "" {
		return true
	}
	f, ok := catFields[p.Field]
	if !ok {
		return false
	}
	if f.fold {
		return strings.EqualFold(f.get(g), p.Value)
	}
	return f.get(g) == p.Value
}

func (p Category) Validate() error {
	if _, ok := catFields[p.Field]; !ok {
		return fmt.Errorf("unknown categorical field %q", p.Field)
	}
	return nil
}

func (p Category) Describe() Description {
	return Description{Kind: "category", Field: p.Field, Value: p.Value}
}

// AnyOf matches records whose set field intersects Allowed. An empty
// Allowed set always matches, regardless of the record's own set.
type AnyOf struct {
	Field   string
	Allowed []string
}

func (p AnyOf) Match(g *model.Game) bool {
	if len(p.Allowed) == 0 {
		return true
	}
	get, ok := setFields[p.Field]
	if !ok {
		return false
	}
	for _, have := range get(g) {
		for _, want := range p.Allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (p AnyOf) Validate() error {
	if _, ok := setFields[p.Field]; !ok {
		return fmt.Errorf("unknown set field %q", p.Field)
	}
	return nil
}

func (p AnyOf) Describe() Description {
	return Description{Kind: "any_of", Field: p.Field, Allowed: p.Allowed}
}
