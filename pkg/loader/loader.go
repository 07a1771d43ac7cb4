// Package loader reads a tabular game dataset (CSV, JSON, or SQLite) and
// normalizes it into the canonical record set shared by every view.
//
// Malformed rows are never rejected: a field that fails coercion is carried
// as NaN (numeric), the zero time (date), or an empty set, and the range and
// set filters exclude such records naturally.
package loader

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// Row is one raw dataset row: column name to untyped text.
type Row map[string]string

// Catalog is the canonical output of a load: normalized records plus the
// genre taxonomy computed over them. Records are immutable in their data
// fields for the session; filtering hands out new slices of these pointers,
// never copies.
type Catalog struct {
	Games    []*model.Game
	Taxonomy model.Taxonomy
}

// Load reads a dataset by file extension (.csv, .json, .db/.sqlite) and
// normalizes it with the default options.
func Load(path string) (*Catalog, error) {
	rows, err := LoadRows(path)
	if err != nil {
		return nil, err
	}
	return Normalize(rows, DefaultOptions()), nil
}

// LoadRows reads raw rows by file extension without normalizing.
func LoadRows(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

// Column aliases: datasets in the wild disagree on header casing and
// spelling, so lookups are case-insensitive over a fixed alias list.
var columnAliases = map[string][]string{
	"id":            {"app_id", "appid", "id"},
	"title":         {"name", "title"},
	"release_date":  {"release date", "release_date", "date_release"},
	"price":         {"price", "price_final"},
	"rating":        {"rating"},
	"metacritic":    {"metacritic score", "metacritic_score"},
	"positive":      {"positive_ratio", "positive ratio"},
	"user_reviews":  {"user_reviews", "user reviews"},
	"user_score":    {"user score", "user_score"},
	"playtime":      {"average playtime forever", "average_playtime_forever"},
	"dlc":           {"dlc count", "dlc_count"},
	"peak_ccu":      {"peak ccu", "peak_ccu"},
	"languages":     {"supported languages", "supported_languages"},
	"genres":        {"genres"},
	"developers":    {"developers", "developer"},
	"publishers":    {"publishers", "publisher"},
	"about":         {"about the game", "about"},
}

func (r Row) lookup(field string) (string, bool) {
	for _, alias := range columnAliases[field] {
		for col, val := range r {
			if strings.EqualFold(strings.TrimSpace(col), alias) {
				return val, true
			}
		}
	}
	return "", false
}

// number coerces a column to float64; absent or malformed values yield NaN.
func (r Row) number(field string) float64 {
	raw, ok := r.lookup(field)
	if !ok {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (r Row) text(field string) string {
	raw, _ := r.lookup(field)
	return strings.TrimSpace(raw)
}

var dateFormats = []string{
	"Jan 2, 2006",
	"2 Jan, 2006",
	"2006-01-02",
	time.RFC3339,
}

// date coerces a column to a time; absent or malformed values yield the
// zero time, which no active date filter matches.
func (r Row) date(field string) time.Time {
	raw, ok := r.lookup(field)
	if !ok {
		return time.Time{}
	}
	raw = strings.TrimSpace(raw)
	for _, f := range dateFormats {
		if t, err := time.Parse(f, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// list coerces a delimited column to a trimmed string set. It accepts both
// plain comma lists and the bracketed quoted form the Steam dump uses
// ("['English', 'French']"); absent input yields an empty set.
func (r Row) list(field string) []string {
	raw, ok := r.lookup(field)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// gameFromRow coerces one raw row into a typed record. Genre derivation and
// main-genre assignment happen later, in Normalize, because they need the
// whole catalog.
func gameFromRow(r Row) model.Game {
	g := model.Game{
		ID:                 r.text("id"),
		Title:              r.text("title"),
		ReleaseDate:        r.date("release_date"),
		Price:              r.number("price"),
		Rating:             model.Rating(r.text("rating")),
		MetacriticScore:    r.number("metacritic"),
		PositiveRatio:      r.number("positive"),
		UserReviews:        r.number("user_reviews"),
		UserScore:          r.number("user_score"),
		AveragePlaytime:    r.number("playtime"),
		DLCCount:           r.number("dlc"),
		PeakCCU:            r.number("peak_ccu"),
		SupportedLanguages: r.list("languages"),
		Developers:         r.text("developers"),
		Publishers:         r.text("publishers"),
		About:              decodeHTMLEntities(r.text("about")),
		Genres:             splitGenres(r.text("genres")),
	}
	// Absent price means free-to-play, not unknown.
	if _, ok := r.lookup("price"); !ok {
		g.Price = 0
	}
	return g
}

// splitGenres derives the genre set from a comma-delimited string; each
// entry is trimmed and empty input yields an empty set.
func splitGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		out = append(out, part)
	}
	return out
}

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

func decodeHTMLEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return htmlEntities.Replace(s)
}
