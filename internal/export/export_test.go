package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thywilljoshua/boardmate/internal/store"
	"github.com/thywilljoshua/boardmate/internal/study/studytest"
)

func TestPaginate(t *testing.T) {
	assert.Equal(t, []float64{0, -297, -594}, Paginate(600, 297))
	assert.Equal(t, []float64{0}, Paginate(297, 297))
	assert.Equal(t, []float64{0}, Paginate(100, 297))
	assert.Equal(t, []float64{0, -297}, Paginate(594, 297))
	assert.Nil(t, Paginate(0, 297))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "science_-_light_notes.pdf", FileName("Science - Light"))
	assert.Equal(t, "social_science_-_the_rise_of_nationalism_notes.pdf", FileName("Social Science - The  Rise\tof Nationalism"))
	assert.Equal(t, "science_-_acids-bases_notes.pdf", FileName("Science - Acids/Bases"))
}

func TestBuildDocument(t *testing.T) {
	assert.Nil(t, BuildDocument(nil, "x"))
	assert.True(t, BuildDocument(nil, "x").Empty())

	m := studytest.Material()
	doc := BuildDocument(&m, "Science - Light")
	require.NotNil(t, doc)

	kinds := map[BlockKind]int{}
	var headings []string
	for _, b := range doc.Blocks {
		kinds[b.Kind]++
		if b.Kind == Heading {
			headings = append(headings, b.Text)
		}
	}
	assert.Equal(t, []string{"Flashcards", "Definitions", "Important Questions", "Chapter Summary", "Improvement Tips"}, headings)
	assert.Equal(t, 1, kinds[Title])
	assert.Equal(t, 5, kinds[Card])
	assert.Equal(t, 6+5, kinds[Term])
	assert.Equal(t, 5, kinds[Hint])
	assert.Equal(t, 4, kinds[Bullet])
	assert.Equal(t, "Science - Light", doc.Blocks[0].Text)
}

type fixedRaster struct {
	w, h int
	err  error
}

func (f fixedRaster) Rasterize(ctx context.Context, doc *Document, theme store.Theme) (*Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	dc := gg.NewContext(f.w, f.h)
	dc.SetHexColor(LightBackground)
	dc.Clear()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return &Snapshot{PNG: buf.Bytes(), Width: f.w, Height: f.h}, nil
}

func TestExportThreePages(t *testing.T) {
	dir := t.TempDir()
	m := studytest.Material()
	e := NewExporter(fixedRaster{w: 210, h: 600}, dir, zap.NewNop())

	res, err := e.Export(context.Background(), BuildDocument(&m, "Science - Light"), store.Light)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "science_-_light_notes.pdf"), res.Path)
	assert.InDelta(t, 600, res.ImageHeight, 0.01)
	require.Equal(t, 3, res.Pages())
	assert.Equal(t, 0.0, res.Offsets[0])
	assert.InDelta(t, -297, res.Offsets[1], 0.01)
	assert.InDelta(t, -594, res.Offsets[2], 0.01)

	n, err := CountPages(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, e.Downloading())
}

func TestExportRendersDocument(t *testing.T) {
	dir := t.TempDir()
	m := studytest.Material()
	e := NewExporter(GGRasterizer{}, dir, nil)

	for _, theme := range []store.Theme{store.Dark, store.Light} {
		res, err := e.Export(context.Background(), BuildDocument(&m, "Science - Light"), theme)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Pages(), 1)
		assert.Equal(t, 0.0, res.Offsets[0], "first page always at the top")

		n, err := CountPages(res.Path)
		require.NoError(t, err)
		assert.Equal(t, res.Pages(), n)
	}
}

func TestGGRasterizerScale(t *testing.T) {
	m := studytest.Material()
	snap, err := GGRasterizer{}.Rasterize(context.Background(), BuildDocument(&m, "Science - Light"), store.Dark)
	require.NoError(t, err)
	assert.Equal(t, PageWidthPx*Scale, snap.Width)
	assert.Greater(t, snap.Height, snap.Width, "full notes are taller than wide")
	assert.True(t, bytes.HasPrefix(snap.PNG, []byte("\x89PNG")))
}

func TestGGRasterizerBadFont(t *testing.T) {
	m := studytest.Material()
	_, err := GGRasterizer{FontPath: filepath.Join(t.TempDir(), "missing.ttf")}.
		Rasterize(context.Background(), BuildDocument(&m, "x"), store.Light)
	assert.Error(t, err)
}

func TestExportEmptyIsNoop(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(fixedRaster{err: errors.New("must not be called")}, dir, nil)
	res, err := e.Export(context.Background(), nil, store.Light)
	require.NoError(t, err)
	assert.Zero(t, res.Pages())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportFailureLogsAndLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.ErrorLevel)
	e := NewExporter(fixedRaster{err: errors.New("canvas tainted")}, dir, zap.New(core))

	m := studytest.Material()
	_, err := e.Export(context.Background(), BuildDocument(&m, "Science - Light"), store.Dark)
	require.Error(t, err)
	assert.False(t, e.Downloading())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Error generating PDF", logs.All()[0].Message)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := studytest.Material()
	_, err := NewExporter(GGRasterizer{}, dir, nil).Export(ctx, BuildDocument(&m, "t"), store.Light)
	assert.ErrorIs(t, err, context.Canceled)
}
