package view

import (
	"math"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// ScatterAttr is one axis of the scatterplot matrix.
type ScatterAttr struct {
	Name string
	Get  func(*model.Game) float64
}

// ScatterAttrs returns the matrix axes in display order. Supported
// languages enter as a count since the matrix is numeric.
func ScatterAttrs() []ScatterAttr {
	return []ScatterAttr{
		{"Peak CCU", func(g *model.Game) float64 { return g.PeakCCU }},
		{"Price", func(g *model.Game) float64 { return g.Price }},
		{"DLC count", func(g *model.Game) float64 { return g.DLCCount }},
		{"Supported languages", func(g *model.Game) float64 {
			if g.SupportedLanguages == nil {
				return math.NaN()
			}
			return float64(len(g.SupportedLanguages))
		}},
		{"Average playtime forever", func(g *model.Game) float64 { return g.AveragePlaytime }},
	}
}

// ScatterPoint is one record's position in one cell.
type ScatterPoint struct {
	ID string
	X  float64
	Y  float64
}

// ScatterCell is one (row, column) pairing of attributes. Records with NaN
// on either axis are excluded from the cell, not from the matrix.
type ScatterCell struct {
	XAttr  string
	YAttr  string
	Points []ScatterPoint
}

// Extent is the [Min, Max] of one attribute over the pool, ignoring NaN.
type Extent struct {
	Min float64
	Max float64
}

// ScatterAdapter maintains the scatterplot-matrix cells for the current
// filtered pool.
type ScatterAdapter struct {
	attrs    []ScatterAttr
	cells    []ScatterCell
	extents  map[string]Extent
	selected string
}

func NewScatterAdapter() *ScatterAdapter {
	return &ScatterAdapter{attrs: ScatterAttrs()}
}

// OnFilteredDataChanged recomputes every cell from the new pool.
func (s *ScatterAdapter) OnFilteredDataChanged(records []*model.Game) {
	s.cells = s.cells[:0]
	s.extents = make(map[string]Extent, len(s.attrs))

	for _, attr := range s.attrs {
		ext := Extent{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, g := range records {
			v := attr.Get(g)
			if math.IsNaN(v) {
				continue
			}
			ext.Min = math.Min(ext.Min, v)
			ext.Max = math.Max(ext.Max, v)
		}
		if math.IsInf(ext.Min, 1) {
			ext = Extent{}
		}
		s.extents[attr.Name] = ext
	}

	for _, xa := range s.attrs {
		for _, ya := range s.attrs {
			cell := ScatterCell{XAttr: xa.Name, YAttr: ya.Name}
			for _, g := range records {
				x, y := xa.Get(g), ya.Get(g)
				if math.IsNaN(x) || math.IsNaN(y) {
					continue
				}
				cell.Points = append(cell.Points, ScatterPoint{ID: g.ID, X: x, Y: y})
			}
			s.cells = append(s.cells, cell)
		}
	}
}

// OnSelectionChanged records the highlighted point id.
func (s *ScatterAdapter) OnSelectionChanged(selectedID string, relatedIDs []string) {
	s.selected = selectedID
}

// Cells returns the matrix cells in row-major axis order.
func (s *ScatterAdapter) Cells() []ScatterCell { return s.cells }

// ExtentOf returns the pool extent of one attribute.
func (s *ScatterAdapter) ExtentOf(attr string) Extent { return s.extents[attr] }

// SelectedID returns the highlighted record id, empty when idle.
func (s *ScatterAdapter) SelectedID() string { return s.selected }
