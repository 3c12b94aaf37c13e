package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/cmb-spectrum/internal/randomwalk"
)

// WalkWidth and WalkHeight are the size of the random walk figure.
const (
	WalkWidth  = 10 * vg.Inch
	WalkHeight = 6 * vg.Inch
)

var walkColor = color.RGBA{R: 76, G: 0, B: 176, A: 204}

// WriteWalk renders the trajectory as PNG with start and end markers.
func WriteWalk(w io.Writer, traj randomwalk.Trajectory) error {
	if traj.Len() == 0 {
		return errors.New("render walk: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("2D Random Walk Simulation\nn = %d steps", traj.Len()-1)
	p.X.Label.Text = "X Position"
	p.Y.Label.Text = "Y Position"
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(grid)

	path, err := plotter.NewLine(traj)
	if err != nil {
		return fmt.Errorf("render walk: %w", err)
	}
	path.LineStyle.Width = vg.Points(0.5)
	path.LineStyle.Color = walkColor
	p.Add(path)

	endX, endY := traj.End()
	start, err := marker(0, 0, color.RGBA{G: 128, A: 255})
	if err != nil {
		return fmt.Errorf("render walk: %w", err)
	}
	end, err := marker(endX, endY, color.RGBA{R: 255, A: 255})
	if err != nil {
		return fmt.Errorf("render walk: %w", err)
	}
	p.Add(start, end)
	p.Legend.Add("Start (0,0)", start)
	p.Legend.Add("End", end)

	wt, err := p.WriterTo(WalkWidth, WalkHeight, "png")
	if err != nil {
		return fmt.Errorf("render walk: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("encode walk png: %w", err)
	}
	return nil
}

func marker(x, y float64, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	return s, nil
}
