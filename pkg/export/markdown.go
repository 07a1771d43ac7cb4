package export

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// GenerateMarkdown creates a catalog report: summary counts, a genre
// breakdown ordered by taxonomy rank, and a per-record table.
func GenerateMarkdown(games []*model.Game, tax model.Taxonomy, title string) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	free := 0
	dated := 0
	for _, g := range games {
		if g.Price == 0 {
			free++
		}
		if !g.ReleaseDate.IsZero() {
			dated++
		}
	}
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n", len(games)))
	sb.WriteString(fmt.Sprintf("- **Free to play**: %d\n", free))
	sb.WriteString(fmt.Sprintf("- **With release date**: %d\n", dated))
	sb.WriteString(fmt.Sprintf("- **Genres**: %d\n\n", len(tax.Ranking)))

	sb.WriteString("## Genres\n\n")
	sb.WriteString("| Rank | Genre | Records |\n")
	sb.WriteString("|---|---|---|\n")
	for i, genre := range tax.Ranking {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d |\n", i+1, genre, tax.Popularity[genre]))
	}
	sb.WriteString("\n---\n\n")

	sb.WriteString("## Records\n\n")
	sb.WriteString("| Title | Main genre | Price | Peak CCU | Positive | Released |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, g := range games {
		safeTitle := strings.ReplaceAll(g.Title, "|", "\\|")
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			safeTitle,
			orDash(g.GenreMain),
			money(g.Price),
			num(g.PeakCCU),
			num(g.PositiveRatio),
			date(g.ReleaseDate)))
	}
	sb.WriteString("\n")

	return sb.String(), nil
}

// SaveMarkdownToFile writes the report, ordered by peak CCU descending so
// the biggest titles lead.
func SaveMarkdownToFile(games []*model.Game, tax model.Taxonomy, filename string) error {
	sorted := make([]*model.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].PeakCCU, sorted[j].PeakCCU
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	content, err := GenerateMarkdown(sorted, tax, "Catalog Export")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(content), 0o644)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("$%.2f", v)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.0f", v)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
