package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/r-bassi/SteamVista/pkg/dashboard"
	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/recipe"
	"github.com/r-bassi/SteamVista/pkg/selection"
	"github.com/r-bassi/SteamVista/pkg/view"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	SplitViewThreshold = 100
)

type focus int

const (
	focusList focus = iota
	focusDetail
)

// YankedMsg reports a clipboard copy so the footer can confirm it.
type YankedMsg struct {
	ID  string
	Err error
}

// SelectFailedMsg reports a click on a record missing from the filtered
// pool, so the footer can explain why no highlight appeared.
type SelectFailedMsg struct {
	ID string
}

// Model is the top-level TUI state: a filterable game list on the left and
// a markdown detail pane on the right. All catalog mutations go through the
// dashboard; broadcasts come back in as DataMsg/SelectionMsg.
type Model struct {
	dash     *dashboard.Dashboard
	games    []*model.Game
	byID     map[string]*model.Game
	list     list.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	recipes    []recipe.Recipe
	picker     RecipePickerModel
	pickerOpen bool

	selectedID string
	relatedIDs []string

	activeRecipe string
	statusNote   string

	focused     focus
	isSplitView bool
	showDetails bool
	ready       bool
	width       int
	height      int
}

// NewModel builds the TUI over an already constructed dashboard. The model
// seeds its list from the current filtered pool, so it does not depend on
// catching the registration broadcast.
func NewModel(dash *dashboard.Dashboard) Model {
	games := dash.Filtered()

	items := make([]list.Item, len(games))
	for i, g := range games {
		items[i] = GameItem{Game: g}
	}

	delegate := GameDelegate{Tier: TierCompact}
	l := list.New(items, delegate, 0, 0)
	l.Title = "SteamVista"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	m := Model{
		dash:     dash,
		list:     l,
		renderer: r,
		recipes:  recipe.BuiltinRecipes(),
		focused:  focusList,
	}
	m.setGames(games)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case DataMsg:
		m.setGames(msg.Games)

	case SelectionMsg:
		m.selectedID = msg.SelectedID
		m.relatedIDs = msg.RelatedIDs
		m.refreshDelegate()
		m.updateViewportContent()

	case YankedMsg:
		if msg.Err != nil {
			m.statusNote = "clipboard unavailable"
		} else {
			m.statusNote = "copied " + msg.ID
		}

	case SelectFailedMsg:
		m.statusNote = msg.ID + " not in current filters"

	case tea.KeyMsg:
		if m.pickerOpen {
			switch msg.String() {
			case "j", "down":
				m.picker.MoveDown()
			case "k", "up":
				m.picker.MoveUp()
			case "enter":
				m.pickerOpen = false
				if r := m.picker.Selected(); r != nil {
					m.activeRecipe = r.Name
					m.statusNote = "recipe: " + r.Name
					return m, m.applyRecipeCmd(*r)
				}
			case "esc", "q":
				m.pickerOpen = false
			}
			return m, nil
		}

		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "ctrl+c", "q":
				if m.showDetails && !m.isSplitView {
					m.showDetails = false
					return m, nil
				}
				return m, tea.Quit
			case "esc":
				if m.showDetails && !m.isSplitView {
					m.showDetails = false
					return m, nil
				}
			case "tab":
				if m.isSplitView {
					if m.focused == focusList {
						m.focused = focusDetail
					} else {
						m.focused = focusList
					}
				}
			case "p":
				m.picker = NewRecipePickerModel(m.recipes, m.activeRecipe)
				m.picker.SetSize(m.width, m.height)
				m.pickerOpen = true
				return m, nil
			case "a":
				m.activeRecipe = ""
				m.statusNote = "filters cleared"
				return m, m.resetCmd()
			case "x":
				return m, m.deselectCmd()
			case "c":
				if g := m.highlightedGame(); g != nil {
					return m, yankCmd(g.ID)
				}
			}

			if m.focused == focusList {
				switch msg.String() {
				case "enter":
					if g := m.highlightedGame(); g != nil {
						if !m.isSplitView {
							m.showDetails = true
							m.updateViewportContent()
						}
						return m, m.selectCmd(g.ID)
					}
				}
			} else {
				m.viewport, cmd = m.viewport.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.isSplitView = msg.Width > SplitViewThreshold
		m.ready = true

		headerHeight := 1
		availableHeight := msg.Height - headerHeight

		var listWidth int
		if m.isSplitView {
			listWidth = int(float64(msg.Width) * 0.4)
			detailWidth := msg.Width - listWidth - 4

			m.list.SetSize(listWidth, availableHeight)
			m.viewport = viewport.New(detailWidth, availableHeight-2)
		} else {
			listWidth = msg.Width
			m.list.SetSize(msg.Width, availableHeight)
			m.viewport = viewport.New(msg.Width, availableHeight-2)
		}

		m.refreshDelegate()
		m.picker.SetSize(msg.Width, msg.Height)

		if m.isSplitView {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(m.viewport.Width),
			)
		}
		m.updateViewportContent()
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	if m.isSplitView && m.focused == focusList {
		m.updateViewportContent()
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading catalog..."
	}

	if m.pickerOpen {
		return m.picker.View()
	}

	var body string
	if m.isSplitView {
		var listStyle, detailStyle lipgloss.Style
		if m.focused == focusList {
			listStyle = FocusedPanelStyle
			detailStyle = PanelStyle
		} else {
			listStyle = PanelStyle
			detailStyle = FocusedPanelStyle
		}

		listView := listStyle.Width(m.list.Width()).Height(m.height - 2).Render(m.list.View())
		detailView := detailStyle.Width(m.viewport.Width + 2).Height(m.height - 2).Render(m.viewport.View())

		body = lipgloss.JoinHorizontal(lipgloss.Top, listView, detailView)
	} else {
		if m.showDetails {
			body = m.viewport.View()
		} else {
			body = m.list.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderFooter() string {
	recipeStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(ColorSubtext)
	countStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Padding(0, 1)

	recipeTxt := m.activeRecipe
	if recipeTxt == "" {
		recipeTxt = "ALL"
	}
	status := fmt.Sprintf(" Recipe: %s ", recipeTxt)

	count := fmt.Sprintf("%d/%d games", len(m.list.Items()), len(m.dash.Canonical()))

	selTxt := ""
	if m.selectedID != "" {
		selTxt = fmt.Sprintf(" ● %s +%d related ", m.selectedID, len(m.relatedIDs))
	}

	noteTxt := ""
	if m.statusNote != "" {
		noteTxt = " " + m.statusNote + " "
	}

	var keys string
	if m.list.FilterState() == list.Filtering {
		keys = "esc: cancel search • enter: accept"
	} else if m.isSplitView {
		keys = "enter: relate • tab: focus • p: recipes • a: all • c: yank id • /: search • q: quit"
	} else if m.showDetails {
		keys = "esc: back • j/k: scroll • q: quit"
	} else {
		keys = "enter: details • p: recipes • a: all • c: yank id • /: search • q: quit"
	}

	statusSection := recipeStyle.Background(ColorPrimary).Padding(0, 1).Render(status)
	selSection := lipgloss.NewStyle().Background(ColorBgHighlight).Foreground(ColorAccent).Render(selTxt)
	noteSection := lipgloss.NewStyle().Background(ColorBgHighlight).Foreground(ColorWarn).Render(noteTxt)
	countSection := countStyle.Render(count)
	keysSection := helpStyle.Padding(0, 1).Render(keys)

	leftWidth := lipgloss.Width(statusSection) + lipgloss.Width(selSection) + lipgloss.Width(noteSection)
	rightWidth := lipgloss.Width(countSection) + lipgloss.Width(keysSection)

	remaining := m.width - leftWidth - rightWidth
	if remaining < 0 {
		remaining = 0
	}
	filler := lipgloss.NewStyle().Background(ColorBgDark).Width(remaining).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, statusSection, selSection, noteSection, filler, countSection, keysSection)
}

// setGames replaces the list contents with a new filtered pool.
func (m *Model) setGames(games []*model.Game) {
	m.games = games

	m.byID = make(map[string]*model.Game, len(m.dash.Canonical()))
	for _, g := range m.dash.Canonical() {
		m.byID[g.ID] = g
	}

	items := make([]list.Item, len(games))
	for i, g := range games {
		items[i] = GameItem{Game: g}
	}
	m.list.SetItems(items)
	if len(items) > 0 && m.list.Index() >= len(items) {
		m.list.Select(0)
	}
	m.refreshDelegate()
	m.updateViewportContent()
}

func (m *Model) refreshDelegate() {
	related := make(map[string]bool, len(m.relatedIDs))
	for _, id := range m.relatedIDs {
		related[id] = true
	}
	m.list.SetDelegate(GameDelegate{
		Tier:       TierForWidth(m.list.Width()),
		SelectedID: m.selectedID,
		Related:    related,
	})
}

func (m *Model) highlightedGame() *model.Game {
	item := m.list.SelectedItem()
	if item == nil {
		return nil
	}
	return item.(GameItem).Game
}

func (m *Model) updateViewportContent() {
	g := m.highlightedGame()
	if g == nil {
		m.viewport.SetContent("No games match the current filters")
		return
	}

	rendered, err := m.renderer.Render(m.detailMarkdown(g))
	if err != nil {
		m.viewport.SetContent(fmt.Sprintf("Error rendering detail: %v", err))
		return
	}
	m.viewport.SetContent(rendered)
}

// detailMarkdown builds the glamour source for one record.
func (m *Model) detailMarkdown(g *model.Game) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", g.Title))

	released := "-"
	if !g.ReleaseDate.IsZero() {
		released = g.ReleaseDate.Format("2006-01-02")
	}
	sb.WriteString("| ID | Genre | Price | Released | Rating |\n|---|---|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| **%s** | %s | %s | %s | %s |\n\n",
		g.ID, orDash(g.GenreMain), FormatPrice(g.Price), released, orDash(string(g.Rating))))

	if g.About != "" {
		sb.WriteString("### About\n")
		sb.WriteString(g.About + "\n\n")
	}

	if len(g.Genres) > 0 {
		sb.WriteString("### Genres\n")
		sb.WriteString(strings.Join(g.Genres, ", ") + "\n\n")
	}

	if g.Developers != "" || g.Publishers != "" {
		sb.WriteString(fmt.Sprintf("**Developers:** %s  \n**Publishers:** %s\n\n",
			orDash(g.Developers), orDash(g.Publishers)))
	}

	sb.WriteString("### Profile\n")
	sb.WriteString("| Axis | Value | Scale |\n|---|---|---|\n")
	for _, axis := range view.RadarAxes(g) {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			axis.Name, FormatCCU(axis.Value), renderBar(axis.Norm)))
	}
	sb.WriteString("\n")

	if g.ID == m.selectedID && len(m.relatedIDs) > 0 {
		sb.WriteString(fmt.Sprintf("### Related (%d)\n", len(m.relatedIDs)))
		for _, id := range m.relatedIDs {
			title := id
			if rg, ok := m.byID[id]; ok {
				title = rg.Title
			}
			sb.WriteString(fmt.Sprintf("- %s\n", title))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderBar draws a ten-cell meter for a normalized axis value.
func renderBar(norm float64) string {
	filled := int(norm*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Dashboard mutations run as commands so their broadcasts re-enter the
// program through the relay instead of re-entering Update directly.

func (m *Model) selectCmd(id string) tea.Cmd {
	dash := m.dash
	return func() tea.Msg {
		var nf *selection.NotFoundError
		if err := dash.SelectByID(id); errors.As(err, &nf) {
			return SelectFailedMsg{ID: nf.ID}
		}
		return nil
	}
}

func (m *Model) deselectCmd() tea.Cmd {
	dash := m.dash
	return func() tea.Msg {
		dash.ResetSelection()
		return nil
	}
}

func (m *Model) resetCmd() tea.Cmd {
	dash := m.dash
	return func() tea.Msg {
		dash.ResetSelection()
		dash.ResetFilters()
		return nil
	}
}

func (m *Model) applyRecipeCmd(r recipe.Recipe) tea.Cmd {
	dash := m.dash
	return func() tea.Msg {
		_ = recipe.Install(dash, r, time.Now())
		return nil
	}
}

func yankCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return YankedMsg{ID: id, Err: clipboard.WriteAll(id)}
	}
}

// FilteredGames returns the games currently in the list (exposed for testing).
func (m Model) FilteredGames() []*model.Game {
	items := m.list.Items()
	games := make([]*model.Game, len(items))
	for i, item := range items {
		games[i] = item.(GameItem).Game
	}
	return games
}

// SelectedID returns the id highlighted by the last selection broadcast.
func (m Model) SelectedID() string { return m.selectedID }
