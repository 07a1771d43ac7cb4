package view

import (
	"math"

	"github.com/r-bassi/SteamVista/pkg/model"
)

// RadarAxis is one spoke of the radar chart for the selected record.
// Max is the fixed chart maximum for the axis, not a pool extent; the
// chart stays comparable across selections.
type RadarAxis struct {
	Name  string
	Value float64
	Max   float64
	// Norm is Value/Max clamped to [0, 1]; NaN values normalize to 0 so
	// the polygon stays drawable.
	Norm float64
}

// axisDefs fixes the axis order and maxima.
var axisDefs = []struct {
	name string
	max  float64
	get  func(*model.Game) float64
}{
	{"Peak CCU", 2000, func(g *model.Game) float64 { return g.PeakCCU }},
	{"Price", 100, func(g *model.Game) float64 { return g.Price }},
	{"DLC count", 10, func(g *model.Game) float64 { return g.DLCCount }},
	{"positive_ratio", 100, func(g *model.Game) float64 { return g.PositiveRatio }},
	{"User score", 100, func(g *model.Game) float64 { return g.UserScore }},
	{"Average playtime forever", 3000, func(g *model.Game) float64 { return g.AveragePlaytime }},
}

// RadarAxes computes the spokes for one record.
func RadarAxes(g *model.Game) []RadarAxis {
	out := make([]RadarAxis, len(axisDefs))
	for i, def := range axisDefs {
		v := def.get(g)
		norm := 0.0
		if !math.IsNaN(v) {
			norm = math.Min(math.Max(v/def.max, 0), 1)
		}
		out[i] = RadarAxis{Name: def.name, Value: v, Max: def.max, Norm: norm}
	}
	return out
}

// RadarAdapter maintains the radar chart for the selected record. With no
// selection the chart is empty.
type RadarAdapter struct {
	pool []*model.Game
	axes []RadarAxis
	id   string
}

func NewRadarAdapter() *RadarAdapter { return &RadarAdapter{} }

// OnFilteredDataChanged keeps the pool so a later selection can resolve.
// A selection that just fell out of the pool keeps its chart until the
// controller broadcasts the clear.
func (r *RadarAdapter) OnFilteredDataChanged(records []*model.Game) {
	r.pool = records
}

// OnSelectionChanged recomputes the spokes for the new selection.
func (r *RadarAdapter) OnSelectionChanged(selectedID string, relatedIDs []string) {
	r.id = selectedID
	r.axes = nil
	if selectedID == "" {
		return
	}
	for _, g := range r.pool {
		if g.ID == selectedID {
			r.axes = RadarAxes(g)
			return
		}
	}
}

// Axes returns the current spokes, nil when nothing is selected.
func (r *RadarAdapter) Axes() []RadarAxis { return r.axes }

// SelectedID returns the record the chart describes.
func (r *RadarAdapter) SelectedID() string { return r.id }
