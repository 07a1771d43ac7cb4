package loader

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `app_id,Name,Release date,Price,Rating,Genres,Supported languages,Peak CCU,DLC count
10,Counter-Strike,"Nov 1, 2000",9.99,Very Positive,"Action","['English', 'French']",13912,0
570,Dota 2,"Jul 9, 2013",0,Very Positive,"Action, Strategy","['English']",551875,0
1091500,Cyberpunk 2077,"Dec 10, 2020",59.99,Very Positive,"RPG","['English', 'Polish']",1054388,2
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "games.csv", sampleCSV)
	rows, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("LoadCSV() returned %d rows, want 3", len(rows))
	}
	if got := rows[0].text("title"); got != "Counter-Strike" {
		t.Errorf("title = %q, want %q", got, "Counter-Strike")
	}
	if got := rows[1].number("peak_ccu"); got != 551875 {
		t.Errorf("peak_ccu = %v, want 551875", got)
	}
	want := time.Date(2020, time.December, 10, 0, 0, 0, 0, time.UTC)
	if got := rows[2].date("release_date"); !got.Equal(want) {
		t.Errorf("release_date = %v, want %v", got, want)
	}
	langs := rows[0].list("languages")
	if len(langs) != 2 || langs[0] != "English" || langs[1] != "French" {
		t.Errorf("languages = %v, want [English French]", langs)
	}
}

func TestLoadJSON_Array(t *testing.T) {
	path := writeTemp(t, "games.json", `[
		{"app_id": 10, "name": "Counter-Strike", "price": 9.99, "genres": ["Action"]},
		{"app_id": 570, "name": "Dota 2", "price": 0, "genres": ["Action", "Strategy"]}
	]`)
	rows, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("LoadJSON() returned %d rows, want 2", len(rows))
	}
	if got := rows[0].text("id"); got != "10" {
		t.Errorf("id = %q, want %q", got, "10")
	}
	g := gameFromRow(rows[1])
	if len(g.Genres) != 2 || g.Genres[1] != "Strategy" {
		t.Errorf("Genres = %v, want [Action Strategy]", g.Genres)
	}
}

func TestLoadJSON_KeyedObject(t *testing.T) {
	path := writeTemp(t, "games.json", `{
		"10": {"name": "Counter-Strike", "price": 9.99}
	}`)
	rows, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("LoadJSON() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].text("id"); got != "10" {
		t.Errorf("id = %q, want %q (taken from object key)", got, "10")
	}
}

func TestLoadRows_UnsupportedFormat(t *testing.T) {
	if _, err := LoadRows("games.parquet"); err == nil {
		t.Error("LoadRows() with unsupported extension should fail")
	}
}

func TestRowCoercion_Malformed(t *testing.T) {
	row := Row{"Price": "free!", "Release date": "someday", "Genres": ""}
	if got := row.number("price"); !math.IsNaN(got) {
		t.Errorf("number() on malformed input = %v, want NaN", got)
	}
	if got := row.date("release_date"); !got.IsZero() {
		t.Errorf("date() on malformed input = %v, want zero time", got)
	}
	g := gameFromRow(row)
	if len(g.Genres) != 0 {
		t.Errorf("Genres = %v, want empty", g.Genres)
	}
	if !math.IsNaN(g.PeakCCU) {
		t.Errorf("absent PeakCCU = %v, want NaN", g.PeakCCU)
	}
}

func TestGameFromRow_AbsentPriceIsFree(t *testing.T) {
	g := gameFromRow(Row{"Name": "Freebie"})
	if g.Price != 0 {
		t.Errorf("absent price = %v, want 0", g.Price)
	}
}

func TestNormalize_MiscCollapse(t *testing.T) {
	rows := []Row{
		{"app_id": "1", "Name": "A", "Genres": "Action, Utilities, Education"},
		{"app_id": "2", "Name": "B", "Genres": "Action"},
	}
	cat := Normalize(rows, DefaultOptions())
	got := cat.Games[0].Genres
	if len(got) != 2 || got[0] != "Action" || got[1] != "Miscellaneous" {
		t.Errorf("Genres = %v, want [Action Miscellaneous]", got)
	}
}

func TestNormalize_Ranking(t *testing.T) {
	rows := []Row{
		{"app_id": "1", "Genres": "Action, Indie"},
		{"app_id": "2", "Genres": "Action, Strategy"},
		{"app_id": "3", "Genres": "Action"},
		{"app_id": "4", "Genres": "Indie"},
	}
	cat := Normalize(rows, DefaultOptions())
	tax := cat.Taxonomy
	if tax.Popularity["Action"] != 3 || tax.Popularity["Indie"] != 2 {
		t.Errorf("Popularity = %v", tax.Popularity)
	}
	want := []string{"Action", "Indie", "Strategy"}
	if strings.Join(tax.Ranking, ",") != strings.Join(want, ",") {
		t.Errorf("Ranking = %v, want %v", tax.Ranking, want)
	}
}

func TestNormalize_EmptyTagDroppedFromRanking(t *testing.T) {
	rows := []Row{
		{"app_id": "1", "Genres": "Action,"},
		{"app_id": "2", "Genres": "Action"},
	}
	cat := Normalize(rows, DefaultOptions())
	if _, ok := cat.Taxonomy.Popularity[""]; ok {
		t.Error("empty tag should be dropped before ranking")
	}
	for _, tag := range cat.Taxonomy.Ranking {
		if tag == "" {
			t.Error("empty tag present in ranking")
		}
	}
}

// The main-genre scan keeps the tag with the largest ranking index, so the
// least popular of a record's tags wins. Catalog compatibility depends on
// this exact behavior.
func TestNormalize_MainGenreLeastPopularWins(t *testing.T) {
	rows := []Row{
		{"app_id": "1", "Genres": "Action, Strategy"},
		{"app_id": "2", "Genres": "Action"},
		{"app_id": "3", "Genres": "Action"},
	}
	cat := Normalize(rows, DefaultOptions())
	// Ranking is [Action Strategy]; record 1 carries both, so the lower
	// ranked Strategy becomes its main genre.
	if got := cat.Games[0].GenreMain; got != "Strategy" {
		t.Errorf("GenreMain = %q, want %q", got, "Strategy")
	}
	if got := cat.Games[1].GenreMain; got != "Action" {
		t.Errorf("GenreMain = %q, want %q", got, "Action")
	}
}

func TestNormalize_NoGenres(t *testing.T) {
	cat := Normalize([]Row{{"app_id": "1", "Name": "Blank"}}, DefaultOptions())
	if got := cat.Games[0].GenreMain; got != "" {
		t.Errorf("GenreMain = %q, want empty", got)
	}
}

func TestLoad_EndToEnd(t *testing.T) {
	path := writeTemp(t, "games.csv", sampleCSV)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Games) != 3 {
		t.Fatalf("Load() returned %d games, want 3", len(cat.Games))
	}
	if got := cat.Games[0].GenreMain; got != "Action" {
		t.Errorf("GenreMain = %q, want %q", got, "Action")
	}
	if len(cat.Taxonomy.Ranking) == 0 || cat.Taxonomy.Ranking[0] != "Action" {
		t.Errorf("Ranking = %v, want Action first", cat.Taxonomy.Ranking)
	}
}
