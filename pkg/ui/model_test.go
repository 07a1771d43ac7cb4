package ui

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/r-bassi/SteamVista/pkg/dashboard"
	"github.com/r-bassi/SteamVista/pkg/filter"
	"github.com/r-bassi/SteamVista/pkg/loader"
	"github.com/r-bassi/SteamVista/pkg/model"

	tea "github.com/charmbracelet/bubbletea"
)

func testGame(id, title, genreMain string, price float64, genres ...string) *model.Game {
	return &model.Game{
		ID:        id,
		Title:     title,
		GenreMain: genreMain,
		Price:     price,
		Genres:    genres,
		Rating:    model.RatingPositive,
		PeakCCU:   100,
	}
}

func testDashboard(t *testing.T) *dashboard.Dashboard {
	t.Helper()
	cat := &loader.Catalog{
		Games: []*model.Game{
			testGame("10", "Alpha Strike", "Action", 9.99, "Action", "Shooter", "Multiplayer", "Co-op"),
			testGame("20", "Beta Quest", "Action", 0, "Action", "Shooter", "Multiplayer", "RPG"),
			testGame("30", "Gamma Farm", "Simulation", 19.99, "Simulation"),
		},
	}
	d, err := dashboard.New(context.Background(), cat, dashboard.Options{})
	if err != nil {
		t.Fatalf("dashboard.New() error = %v", err)
	}
	return d
}

func TestNewModelSeedsFromDashboard(t *testing.T) {
	m := NewModel(testDashboard(t))

	games := m.FilteredGames()
	if len(games) != 3 {
		t.Fatalf("FilteredGames() returned %d games, want 3", len(games))
	}
	if games[0].Title != "Alpha Strike" {
		t.Errorf("first game = %q, want Alpha Strike", games[0].Title)
	}
}

func TestDataMsgReplacesList(t *testing.T) {
	m := NewModel(testDashboard(t))

	next, _ := m.Update(DataMsg{Games: []*model.Game{
		testGame("30", "Gamma Farm", "Simulation", 19.99, "Simulation"),
	}})
	m = next.(Model)

	games := m.FilteredGames()
	if len(games) != 1 || games[0].ID != "30" {
		t.Errorf("after DataMsg, list = %v games, want just id 30", len(games))
	}
}

func TestSelectionMsgUpdatesState(t *testing.T) {
	m := NewModel(testDashboard(t))

	next, _ := m.Update(SelectionMsg{SelectedID: "10", RelatedIDs: []string{"20"}})
	m = next.(Model)

	if m.SelectedID() != "10" {
		t.Errorf("SelectedID() = %q, want 10", m.SelectedID())
	}

	next, _ = m.Update(SelectionMsg{})
	m = next.(Model)
	if m.SelectedID() != "" {
		t.Errorf("SelectedID() after clear = %q, want empty", m.SelectedID())
	}
}

func TestEnterTriggersSelectCmd(t *testing.T) {
	d := testDashboard(t)
	m := NewModel(d)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	cmd()

	if d.SelectedID() != "10" {
		t.Errorf("dashboard SelectedID() = %q, want 10", d.SelectedID())
	}
}

func TestSelectCmdReportsFilteredOutRecord(t *testing.T) {
	d := testDashboard(t)
	m := NewModel(d)

	// Narrow the pool so id 10 is gone, then click it.
	if err := d.UpdateFilter("price", filter.NumRange{Field: "price", Min: 15, Max: 25}); err != nil {
		t.Fatalf("UpdateFilter() error = %v", err)
	}
	cmd := m.selectCmd("10")
	msg := cmd()
	failed, ok := msg.(SelectFailedMsg)
	if !ok {
		t.Fatalf("selectCmd on absent id returned %T, want SelectFailedMsg", msg)
	}
	if failed.ID != "10" {
		t.Errorf("SelectFailedMsg.ID = %q, want 10", failed.ID)
	}

	next, _ := m.Update(failed)
	m = next.(Model)
	if !strings.Contains(m.statusNote, "not in current filters") {
		t.Errorf("statusNote = %q, want a not-in-filters note", m.statusNote)
	}

	// A click that lands keeps the footer quiet.
	if msg := m.selectCmd("30")(); msg != nil {
		t.Errorf("selectCmd on present id returned %v, want nil", msg)
	}
}

func TestResetCmdClearsFilterAndSelection(t *testing.T) {
	d := testDashboard(t)
	m := NewModel(d)
	if err := d.SelectByID("10"); err != nil {
		t.Fatalf("SelectByID() error = %v", err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if cmd == nil {
		t.Fatal("reset key produced no command")
	}
	cmd()

	if d.SelectedID() != "" {
		t.Errorf("selection not cleared, got %q", d.SelectedID())
	}
	if len(d.Filtered()) != 3 {
		t.Errorf("Filtered() = %d games after reset, want 3", len(d.Filtered()))
	}
}

func TestDetailMarkdownContent(t *testing.T) {
	m := NewModel(testDashboard(t))
	m.selectedID = "10"
	m.relatedIDs = []string{"20"}

	md := m.detailMarkdown(m.FilteredGames()[0])

	for _, want := range []string{"# Alpha Strike", "$9.99", "### Profile", "### Related (1)", "Beta Quest"} {
		if !strings.Contains(md, want) {
			t.Errorf("detail markdown missing %q", want)
		}
	}
}

func TestDetailMarkdownOmitsRelatedForOtherRows(t *testing.T) {
	m := NewModel(testDashboard(t))
	m.selectedID = "10"
	m.relatedIDs = []string{"20"}

	md := m.detailMarkdown(m.FilteredGames()[2])
	if strings.Contains(md, "### Related") {
		t.Error("related section rendered for a non-selected record")
	}
}

func TestRecipePickerApply(t *testing.T) {
	d := testDashboard(t)
	m := NewModel(d)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	if !m.pickerOpen {
		t.Fatal("picker did not open")
	}

	// Walk to the free-to-play recipe.
	for i := 0; i < 20 && (m.picker.Selected() == nil || m.picker.Selected().Name != "free-to-play"); i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
		m = next.(Model)
	}
	if m.picker.Selected() == nil || m.picker.Selected().Name != "free-to-play" {
		t.Fatal("free-to-play recipe not reachable in picker")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.pickerOpen {
		t.Error("picker still open after apply")
	}
	if cmd == nil {
		t.Fatal("apply produced no command")
	}
	cmd()

	filtered := d.Filtered()
	if len(filtered) != 1 || filtered[0].ID != "20" {
		t.Errorf("free-to-play recipe left %d games, want just id 20", len(filtered))
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Free"},
		{9.99, "$9.99"},
		{math.NaN(), "-"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCCU(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{542, "542"},
		{25000, "25k"},
		{math.NaN(), "-"},
	}
	for _, tt := range tests {
		if got := FormatCCU(tt.in); got != tt.want {
			t.Errorf("FormatCCU(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierForWidth(t *testing.T) {
	tests := []struct {
		width int
		want  Tier
	}{
		{40, TierCompact},
		{80, TierNormal},
		{100, TierWide},
		{150, TierUltraWide},
	}
	for _, tt := range tests {
		if got := TierForWidth(tt.width); got != tt.want {
			t.Errorf("TierForWidth(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestRenderBarClamps(t *testing.T) {
	if got := renderBar(0.5); !strings.HasPrefix(got, "█████░") {
		t.Errorf("renderBar(0.5) = %q", got)
	}
	if got := renderBar(2); strings.Contains(got, "░") {
		t.Errorf("renderBar(2) = %q, want fully filled", got)
	}
	if got := renderBar(-1); strings.Contains(got, "█") {
		t.Errorf("renderBar(-1) = %q, want empty", got)
	}
}

func TestRelayDropsBeforeAttach(t *testing.T) {
	r := NewRelay()
	// Must not panic or block with no program attached.
	r.OnFilteredDataChanged(nil)
	r.OnSelectionChanged("", nil)
}

func TestRecipePickerNavigation(t *testing.T) {
	p := NewRecipePickerModel(nil, "")
	if p.Selected() != nil {
		t.Error("empty picker Selected() != nil")
	}

	m := NewModel(testDashboard(t))
	p = NewRecipePickerModel(m.recipes, "")
	p.MoveUp()
	first := p.Selected()
	if first == nil {
		t.Fatal("picker has no selection")
	}
	p.MoveDown()
	second := p.Selected()
	if second == nil || second.Name == first.Name {
		t.Error("MoveDown did not advance selection")
	}
	for i := 0; i < 50; i++ {
		p.MoveDown()
	}
	if p.Selected() == nil {
		t.Error("MoveDown past end lost selection")
	}
}
