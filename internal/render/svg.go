package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// svg panel margins in pixels.
const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 70
	marginBottom = 55
	gridSteps    = 5
)

// countingWriter reports how many bytes the svg encoder produced.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func writeSVG(w io.Writer, fig Figure) (int64, error) {
	cw := &countingWriter{w: w}
	width := int(math.Round(fig.Width * float64(fig.DPI)))
	height := int(math.Round(fig.Height * float64(fig.DPI)))

	canvas := svg.New(cw)
	canvas.Start(width, height)
	canvas.Title(fig.Left.Title + " / " + fig.Right.Title)
	canvas.Rect(0, 0, width, height, "fill:"+cssColor(backgroundColor))

	half := width / 2
	drawPanel(canvas, fig.Left, 0, half, height)
	drawPanel(canvas, fig.Right, half, width-half, height)

	canvas.End()
	return cw.n, cw.err
}

func drawPanel(canvas *svg.SVG, panel Panel, x0, width, height int) {
	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom
	left := x0 + marginLeft
	top := marginTop
	px := func(v float64) int { return left + int(math.Round(v*float64(plotW))) }
	py := func(v float64) int { return top + plotH - int(math.Round(v*float64(plotH))) }

	canvas.Gstyle("font-family:sans-serif")

	// Title lines, centered over the plot area.
	cx := left + plotW/2
	titleStyle := fmt.Sprintf("text-anchor:middle;font-weight:bold;font-size:15px;fill:%s", cssColor(panel.TitleColor))
	lines := []string{panel.Title}
	if panel.Subtitle != "" {
		lines = append(lines, panel.Subtitle)
	}
	for i, line := range lines {
		canvas.Text(cx, marginTop-38+i*20, line, titleStyle)
	}

	// Grid and tick labels.
	gridStyle := fmt.Sprintf("stroke:%s;stroke-dasharray:4,3;stroke-width:1", cssColor(gridColor))
	for i := 0; i <= gridSteps; i++ {
		v := float64(i) / gridSteps
		canvas.Line(px(v), top, px(v), top+plotH, gridStyle)
		canvas.Line(left, py(v), left+plotW, py(v), gridStyle)
		label := fmt.Sprintf("%.1f", v)
		canvas.Text(px(v), top+plotH+18, label, "text-anchor:middle;font-size:11px")
		canvas.Text(left-8, py(v)+4, label, "text-anchor:end;font-size:11px")
	}
	canvas.Rect(left, top, plotW, plotH, "fill:none;stroke:"+cssColor(frameColor))

	// Axis labels.
	canvas.Text(cx, height-12, panel.XLabel, "text-anchor:middle;font-size:13px")
	canvas.TranslateRotate(x0+22, top+plotH/2, -90)
	canvas.Text(0, 0, panel.YLabel, "text-anchor:middle;font-size:13px")
	canvas.Gend()

	// Points.
	canvas.Gstyle(pointStyle(panel.Color))
	for i := 0; i < panel.Points.Len(); i++ {
		x, y := panel.Points.XY(i)
		canvas.Circle(px(x), py(y), 3)
	}
	canvas.Gend()

	canvas.Gend()
}

func pointStyle(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	var b strings.Builder
	fmt.Fprintf(&b, "stroke:none;fill:rgb(%d,%d,%d)", nc.R, nc.G, nc.B)
	if nc.A != 255 {
		fmt.Fprintf(&b, ";fill-opacity:%.2f", float64(nc.A)/255)
	}
	return b.String()
}

func cssColor(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nc.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", nc.R, nc.G, nc.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", nc.R, nc.G, nc.B, float64(nc.A)/255)
}
