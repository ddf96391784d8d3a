package render

import (
	"fmt"
	"io"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func writeRaster(w io.Writer, format Format, fig Figure) (int64, error) {
	left, err := newPlot(fig.Left)
	if err != nil {
		return 0, fmt.Errorf("left panel: %w", err)
	}
	right, err := newPlot(fig.Right)
	if err != nil {
		return 0, fmt.Errorf("right panel: %w", err)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch),
		vgimg.UseDPI(fig.DPI),
		vgimg.UseBackgroundColor(backgroundColor),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Centimeter,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	var wt io.WriterTo
	switch format {
	case FormatPNG:
		wt = vgimg.PngCanvas{Canvas: img}
	case FormatJPEG:
		wt = vgimg.JpegCanvas{Canvas: img}
	case FormatTIFF:
		wt = vgimg.TiffCanvas{Canvas: img}
	default:
		return 0, fmt.Errorf("not a raster format: %q", format)
	}
	return wt.WriteTo(w)
}

// newPlot builds a square-axis lag plot with a dashed grid.
func newPlot(panel Panel) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = panel.Title
	if panel.Subtitle != "" {
		p.Title.Text += "\n" + panel.Subtitle
	}
	p.Title.TextStyle.Color = panel.TitleColor
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(3), vg.Points(2)}
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = dashes
	p.Add(grid)

	s, err := plotter.NewScatter(panel.Points)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = panel.Color
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	return p, nil
}
