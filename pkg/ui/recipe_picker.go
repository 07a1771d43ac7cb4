package ui

import (
	"strings"

	"github.com/r-bassi/SteamVista/pkg/recipe"

	"github.com/charmbracelet/lipgloss"
)

// RecipePickerModel is a modal list of saved filter recipes.
type RecipePickerModel struct {
	recipes       []recipe.Recipe
	currentName   string
	selectedIndex int
	width         int
	height        int
}

// NewRecipePickerModel creates a picker over the given recipes. currentName
// marks the recipe already applied, if any.
func NewRecipePickerModel(recipes []recipe.Recipe, currentName string) RecipePickerModel {
	selectedIdx := 0
	for i, r := range recipes {
		if r.Name == currentName {
			selectedIdx = i
			break
		}
	}
	return RecipePickerModel{
		recipes:       recipes,
		currentName:   currentName,
		selectedIndex: selectedIdx,
	}
}

// SetSize updates the picker dimensions.
func (m *RecipePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up.
func (m *RecipePickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down.
func (m *RecipePickerModel) MoveDown() {
	if m.selectedIndex < len(m.recipes)-1 {
		m.selectedIndex++
	}
}

// Selected returns the highlighted recipe, or nil when the picker is empty.
func (m *RecipePickerModel) Selected() *recipe.Recipe {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.recipes) {
		return &m.recipes[m.selectedIndex]
	}
	return nil
}

// View renders the picker overlay centered in the viewport.
func (m *RecipePickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	boxWidth := 44
	if m.width < 54 {
		boxWidth = m.width - 10
	}
	if boxWidth < 28 {
		boxWidth = 28
	}

	var lines []string
	lines = append(lines, TitleStyle.Render("Apply Recipe"))
	lines = append(lines, "")

	for i, r := range m.recipes {
		isSelected := i == m.selectedIndex
		isCurrent := r.Name == m.currentName

		itemStyle := NormalRowStyle
		prefix := "  "
		if isSelected {
			itemStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			prefix = "> "
		}

		suffix := ""
		if isCurrent {
			suffix = " " + lipgloss.NewStyle().Foreground(ColorSecondary).Render("✓")
		}

		lines = append(lines, itemStyle.Render(prefix+r.Name)+suffix)
		if isSelected && r.Description != "" {
			lines = append(lines, DimRowStyle.Render("    "+r.Description))
		}
	}

	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().Foreground(ColorSubtext).Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: apply | esc: cancel"))

	content := strings.Join(lines, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
