package export

import (
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/r-bassi/SteamVista/pkg/model"
	"github.com/r-bassi/SteamVista/pkg/view"
)

// SaveRadarPNG rasterizes the radar chart for one record, mirroring the
// SVG renderer's geometry so both artifacts agree.
func SaveRadarPNG(g *model.Game, filename string) error {
	axes := view.RadarAxes(g)

	const size = 420
	cx, cy := float64(size)/2, float64(size)/2
	radius := float64(size)/2 - 60

	dc := gg.NewContext(size, size)
	dc.SetRGB(0.157, 0.165, 0.212)
	dc.Clear()

	// Grid rings.
	dc.SetRGB(0.267, 0.278, 0.353)
	dc.SetLineWidth(1)
	for level := 1; level <= 5; level++ {
		dc.DrawCircle(cx, cy, radius*float64(level)/5)
		dc.Stroke()
	}

	angle := func(i int) float64 {
		return 2*math.Pi*float64(i)/float64(len(axes)) - math.Pi/2
	}

	// Spokes and labels.
	for i, ax := range axes {
		a := angle(i)
		dc.SetRGB(0.267, 0.278, 0.353)
		dc.DrawLine(cx, cy, cx+radius*math.Cos(a), cy+radius*math.Sin(a))
		dc.Stroke()

		dc.SetRGB(0.385, 0.447, 0.643)
		lx := cx + (radius+26)*math.Cos(a)
		ly := cy + (radius+26)*math.Sin(a)
		dc.DrawStringAnchored(ax.Name, lx, ly, 0.5, 0.5)
	}

	// Value polygon.
	dc.NewSubPath()
	for i, ax := range axes {
		a := angle(i)
		dc.LineTo(cx+radius*ax.Norm*math.Cos(a), cy+radius*ax.Norm*math.Sin(a))
	}
	dc.ClosePath()
	dc.SetRGBA(0.741, 0.576, 0.976, 0.35)
	dc.FillPreserve()
	dc.SetRGB(0.741, 0.576, 0.976)
	dc.SetLineWidth(2)
	dc.Stroke()

	// Vertex dots.
	dc.SetRGB(1, 0.475, 0.776)
	for i, ax := range axes {
		a := angle(i)
		dc.DrawCircle(cx+radius*ax.Norm*math.Cos(a), cy+radius*ax.Norm*math.Sin(a), 3)
		dc.Fill()
	}

	// Title.
	dc.SetRGB(0.973, 0.973, 0.949)
	dc.DrawStringAnchored(g.Title, cx, 24, 0.5, 0.5)

	return dc.SavePNG(filename)
}
