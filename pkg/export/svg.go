package export

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/view"
)

const (
	scatterCellSize = 160
	scatterPadding  = 28
	dotRadius       = 2
)

// WriteScatterSVG renders the scatterplot matrix of the pool as static
// SVG. Cells reuse the view adapter's NaN-excluding extraction, so the
// artifact matches exactly what the interactive matrix would show.
func WriteScatterSVG(w io.Writer, games []*model.Game) error {
	adapter := view.NewScatterAdapter()
	adapter.OnFilteredDataChanged(games)
	attrs := view.ScatterAttrs()
	n := len(attrs)

	size := n*scatterCellSize + (n+1)*scatterPadding
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#282a36")

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			x0 := scatterPadding + col*(scatterCellSize+scatterPadding)
			y0 := scatterPadding + row*(scatterCellSize+scatterPadding)
			canvas.Rect(x0, y0, scatterCellSize, scatterCellSize,
				"fill:none;stroke:#44475a;stroke-width:1")

			xa, ya := attrs[col], attrs[row]
			if row == col {
				canvas.Text(x0+scatterCellSize/2, y0+scatterCellSize/2, xa.Name,
					"fill:#f8f8f2;font-size:10px;text-anchor:middle;font-family:monospace")
				continue
			}

			xe := adapter.ExtentOf(xa.Name)
			ye := adapter.ExtentOf(ya.Name)
			for _, g := range games {
				xv, yv := xa.Get(g), ya.Get(g)
				if math.IsNaN(xv) || math.IsNaN(yv) {
					continue
				}
				px := x0 + scale(xv, xe, scatterCellSize)
				// SVG y grows downward; flip so larger values plot higher.
				py := y0 + scatterCellSize - scale(yv, ye, scatterCellSize)
				canvas.Circle(px, py, dotRadius, "fill:#8be9fd;fill-opacity:0.6")
			}
		}
	}

	canvas.End()
	return nil
}

// scale maps v inside ext to a pixel offset in [0, span].
func scale(v float64, ext view.Extent, span int) int {
	if ext.Max <= ext.Min {
		return span / 2
	}
	return int((v - ext.Min) / (ext.Max - ext.Min) * float64(span))
}

// WriteRadarSVG renders the radar chart for one record: six fixed axes
// with the chart maxima the radar view prescribes.
func WriteRadarSVG(w io.Writer, g *model.Game) error {
	axes := view.RadarAxes(g)

	const size = 420
	cx, cy := size/2, size/2
	radius := float64(size)/2 - 60

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#282a36")
	canvas.Text(cx, 24, g.Title,
		"fill:#f8f8f2;font-size:13px;text-anchor:middle;font-family:monospace")

	// Concentric grid rings at 20% steps.
	for level := 1; level <= 5; level++ {
		r := int(radius * float64(level) / 5)
		canvas.Circle(cx, cy, r, "fill:none;stroke:#44475a;stroke-width:1")
	}

	angle := func(i int) float64 {
		return 2*math.Pi*float64(i)/float64(len(axes)) - math.Pi/2
	}

	var xs, ys []int
	for i, ax := range axes {
		a := angle(i)
		// Spoke and label.
		sx := cx + int(radius*math.Cos(a))
		sy := cy + int(radius*math.Sin(a))
		canvas.Line(cx, cy, sx, sy, "stroke:#44475a;stroke-width:1")
		lx := cx + int((radius+26)*math.Cos(a))
		ly := cy + int((radius+26)*math.Sin(a))
		canvas.Text(lx, ly, ax.Name,
			"fill:#6272a4;font-size:9px;text-anchor:middle;font-family:monospace")

		xs = append(xs, cx+int(radius*ax.Norm*math.Cos(a)))
		ys = append(ys, cy+int(radius*ax.Norm*math.Sin(a)))
	}

	canvas.Polygon(xs, ys,
		"fill:#bd93f9;fill-opacity:0.35;stroke:#bd93f9;stroke-width:2")
	for i := range xs {
		canvas.Circle(xs[i], ys[i], 3, "fill:#ff79c6")
	}

	canvas.End()
	return nil
}

// SaveScatterSVG writes the scatter matrix to a file.
func SaveScatterSVG(games []*model.Game, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()
	return WriteScatterSVG(f, games)
}

// SaveRadarSVG writes one record's radar chart to a file.
func SaveRadarSVG(g *model.Game, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()
	return WriteRadarSVG(f, g)
}
