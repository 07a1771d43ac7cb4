package ui

import (
	"fmt"
	"io"
	"math"

	"github.com/r-bassi/SteamVista/pkg/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// Tier controls how much detail a list row carries. Wider terminals get
// more columns.
type Tier int

const (
	TierCompact Tier = iota
	TierNormal
	TierWide
	TierUltraWide
)

// GameItem wraps a catalog record for the bubbles list.
type GameItem struct {
	Game *model.Game
}

func (i GameItem) FilterValue() string {
	return i.Game.Title + " " + i.Game.GenreMain
}

// GameDelegate renders one catalog row per line. Selection and related
// markers come from the parent model, not the record itself.
type GameDelegate struct {
	Tier       Tier
	SelectedID string
	Related    map[string]bool
}

func (d GameDelegate) Height() int  { return 1 }
func (d GameDelegate) Spacing() int { return 0 }

func (d GameDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d GameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GameItem)
	if !ok {
		return
	}
	g := gi.Game

	cursor := "  "
	rowStyle := NormalRowStyle
	if index == m.Index() {
		cursor = "> "
		rowStyle = SelectedRowStyle
	}

	mark := " "
	switch {
	case g.ID == d.SelectedID:
		mark = SelectedMarkStyle.Render("●")
	case d.Related[g.ID]:
		mark = RelatedMarkStyle.Render("◆")
	}

	width := m.Width() - 4
	if width < 20 {
		width = 20
	}

	var line string
	switch d.Tier {
	case TierCompact:
		line = runewidth.Truncate(g.Title, width, "…")
	case TierNormal:
		title := runewidth.FillRight(runewidth.Truncate(g.Title, width-16, "…"), width-16)
		line = fmt.Sprintf("%s %8s", title, FormatPrice(g.Price))
	case TierWide:
		title := runewidth.FillRight(runewidth.Truncate(g.Title, width-40, "…"), width-40)
		genre := lipglossRender(genreColor(g.GenreMain), runewidth.FillRight(runewidth.Truncate(g.GenreMain, 14, "…"), 14))
		line = fmt.Sprintf("%s %s %8s %8s", title, genre, FormatPrice(g.Price), FormatCCU(g.PeakCCU))
	default: // TierUltraWide
		title := runewidth.FillRight(runewidth.Truncate(g.Title, width-62, "…"), width-62)
		genre := lipglossRender(genreColor(g.GenreMain), runewidth.FillRight(runewidth.Truncate(g.GenreMain, 14, "…"), 14))
		rating := runewidth.FillRight(runewidth.Truncate(string(g.Rating), 20, "…"), 20)
		line = fmt.Sprintf("%s %s %s %8s %8s", title, genre, rating, FormatPrice(g.Price), FormatCCU(g.PeakCCU))
	}

	fmt.Fprint(w, cursor+mark+" "+rowStyle.Render(line))
}

// FormatPrice renders a price column value. NaN means the source row had
// no usable number.
func FormatPrice(p float64) string {
	if math.IsNaN(p) {
		return "-"
	}
	if p == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", p)
}

// FormatCCU renders peak concurrent users with a k suffix past 10000.
func FormatCCU(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	if v >= 10000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

// TierForWidth picks the densest row layout that fits the list width.
func TierForWidth(width int) Tier {
	switch {
	case width > 120:
		return TierUltraWide
	case width > 90:
		return TierWide
	case width > 60:
		return TierNormal
	default:
		return TierCompact
	}
}
