package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/plotter"
)

// Panel is one scatter plot of the figure.
type Panel struct {
	Title      string
	Subtitle   string
	XLabel     string
	YLabel     string
	Color      color.Color // point color, alpha honored
	TitleColor color.Color
	Points     plotter.XYer
}

// Figure is a one-row, two-column layout. Width and Height are in inches.
type Figure struct {
	Width  float64
	Height float64
	DPI    int
	Left   Panel
	Right  Panel
}

// Default figure geometry: 12x5 inches at 100 DPI gives a 1200x500 image.
const (
	DefaultWidth  = 12.0
	DefaultHeight = 5.0
	DefaultDPI    = 100
)

// Panel colors.
var (
	BadColor        = color.NRGBA{R: 255, A: 153}
	BadTitleColor   = color.NRGBA{R: 139, A: 255}
	GoodColor       = color.NRGBA{G: 128, A: 153}
	GoodTitleColor  = color.NRGBA{G: 100, A: 255}
	gridColor       = color.NRGBA{R: 128, G: 128, B: 128, A: 77}
	frameColor      = color.NRGBA{A: 255}
	backgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Comparison returns the standard bad-versus-good lag-1 figure.
func Comparison(bad, good plotter.XYer) Figure {
	return Figure{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
		Left: Panel{
			Title:      "Bad RNG (Lag-1 Plot)",
			Subtitle:   "Note the visible lines/lattice structure",
			XLabel:     "U_i",
			YLabel:     "U_{i+1}",
			Color:      BadColor,
			TitleColor: BadTitleColor,
			Points:     bad,
		},
		Right: Panel{
			Title:      "Good RNG (Lag-1 Plot)",
			Subtitle:   `Note the random "cloud" with no pattern`,
			XLabel:     "U_i",
			YLabel:     "U_{i+1}",
			Color:      GoodColor,
			TitleColor: GoodTitleColor,
			Points:     good,
		},
	}
}

// Validate checks geometry and that both panels have data.
func (f Figure) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %vx%v in", f.Width, f.Height)
	}
	if f.DPI <= 0 {
		return fmt.Errorf("figure dpi must be positive, got %d", f.DPI)
	}
	if f.Left.Points == nil || f.Right.Points == nil {
		return fmt.Errorf("figure panels need points")
	}
	return nil
}

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatTIFF Format = "tiff"
	FormatSVG  Format = "svg"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q (want .png, .jpg, .tiff or .svg)", filepath.Ext(path))
	}
}

// Write encodes fig in the given format and returns the bytes written.
func Write(w io.Writer, format Format, fig Figure) (int64, error) {
	if err := fig.Validate(); err != nil {
		return 0, err
	}
	switch format {
	case FormatPNG, FormatJPEG, FormatTIFF:
		return writeRaster(w, format, fig)
	case FormatSVG:
		return writeSVG(w, fig)
	default:
		return 0, fmt.Errorf("unsupported format %q", format)
	}
}

// Save writes fig to path, replacing any existing file. The format follows
// the extension. The image is encoded into a temporary file in the same
// directory and renamed over path, so a failed encode leaves path untouched.
func Save(path string, fig Figure) (int64, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	if err := fig.Validate(); err != nil {
		return 0, err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()

	n, err := Write(f, format, fig)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return n, fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("rename %s: %w", path, err)
	}
	return n, nil
}
