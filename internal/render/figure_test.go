package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/roach88/lagplot/internal/lag"
	"github.com/roach88/lagplot/internal/rng"
)

func testFigure(t *testing.T) Figure {
	t.Helper()

	bad, err := rng.GenerateLCG(rng.DefaultLCGParams(), 500)
	require.NoError(t, err)
	good, err := rng.Generate(rng.NewPCG(1), 500)
	require.NoError(t, err)

	badPairs, err := lag.New(bad)
	require.NoError(t, err)
	goodPairs, err := lag.New(good)
	require.NoError(t, err)

	return Comparison(badPairs, goodPairs)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"rng_comparison.png": FormatPNG,
		"out/PLOT.PNG":       FormatPNG,
		"a.jpg":              FormatJPEG,
		"a.jpeg":             FormatJPEG,
		"a.tif":              FormatTIFF,
		"a.tiff":             FormatTIFF,
		"a.svg":              FormatSVG,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("plot.gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".gif")

	_, err = FormatFromPath("noext")
	require.Error(t, err)
}

func TestWrite_PNG(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, FormatPNG, testFigure(t))
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestWrite_SVG(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, FormatSVG, testFigure(t))
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `width="1200"`)
	assert.Contains(t, out, "Bad RNG (Lag-1 Plot)")
	assert.Contains(t, out, "Good RNG (Lag-1 Plot)")
	assert.Contains(t, out, "fill:rgb(255,0,0)")
	assert.Contains(t, out, "fill:rgb(0,128,0)")
	// 499 points per panel.
	assert.Equal(t, 998, bytes.Count(buf.Bytes(), []byte("<circle")))
}

func TestWrite_InvalidFigure(t *testing.T) {
	fig := testFigure(t)

	noDPI := fig
	noDPI.DPI = 0
	_, err := Write(&bytes.Buffer{}, FormatPNG, noDPI)
	require.Error(t, err)

	noPoints := fig
	noPoints.Right.Points = nil
	_, err = Write(&bytes.Buffer{}, FormatSVG, noPoints)
	require.Error(t, err)

	_, err = Write(&bytes.Buffer{}, Format("bmp"), fig)
	require.Error(t, err)
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rng_comparison.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	n, err := Save(path, testFigure(t))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestSave_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "plot.png")
	_, err := Save(path, testFigure(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestSave_FailedEncodeKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rng_comparison.png")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	// The scatter plotter rejects NaN coordinates, so encoding fails.
	fig := testFigure(t)
	fig.Right.Points = plotter.XYs{{X: 0.1, Y: math.NaN()}}

	_, err := Save(path, fig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestSave_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	_, err := Save(path, testFigure(t))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, "rgb(139,0,0)", cssColor(BadTitleColor))
	assert.Equal(t, "rgba(128,128,128,0.30)", cssColor(gridColor))
	assert.Equal(t, "stroke:none;fill:rgb(0,128,0);fill-opacity:0.60", pointStyle(GoodColor))
}
