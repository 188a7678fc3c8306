// Package export renders study material to a paginated A4 PDF.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/boardmate/internal/store"
)

const snapshotImage = "snapshot"

type Result struct {
	Path string `json:"path"`
	// Offsets holds the image y position in mm for every page.
	Offsets     []float64 `json:"offsets"`
	ImageHeight float64   `json:"image_height_mm"`
}

func (r Result) Pages() int { return len(r.Offsets) }

type Exporter struct {
	raster Rasterizer
	outDir string
	log    *zap.Logger

	downloading atomic.Bool
}

func NewExporter(raster Rasterizer, outDir string, log *zap.Logger) *Exporter {
	if raster == nil {
		raster = GGRasterizer{}
	}
	if outDir == "" {
		outDir = "."
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{raster: raster, outDir: outDir, log: log}
}

// Downloading reports whether an export is in progress.
func (e *Exporter) Downloading() bool { return e.downloading.Load() }

// Export rasterizes doc and writes it as an A4 portrait PDF named after the
// document title. An empty document is a no-op. Failures are logged and
// leave no file behind.
func (e *Exporter) Export(ctx context.Context, doc *Document, theme store.Theme) (Result, error) {
	if doc.Empty() {
		return Result{}, nil
	}
	e.downloading.Store(true)
	defer e.downloading.Store(false)

	res, err := e.export(ctx, doc, theme)
	if err != nil {
		e.log.Error("Error generating PDF", zap.String("title", doc.Title), zap.Error(err))
		return Result{}, err
	}
	e.log.Info("PDF written",
		zap.String("path", res.Path),
		zap.Int("pages", res.Pages()),
		zap.Float64("image_height_mm", res.ImageHeight))
	return res, nil
}

func (e *Exporter) export(ctx context.Context, doc *Document, theme store.Theme) (Result, error) {
	snap, err := e.raster.Rasterize(ctx, doc, theme)
	if err != nil {
		return Result{}, fmt.Errorf("capture: %w", err)
	}
	if snap == nil || snap.Width <= 0 || snap.Height <= 0 {
		return Result{}, errors.New("capture: empty snapshot")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pageW, pageH := pdf.GetPageSize()

	ratio := float64(snap.Width) / float64(snap.Height)
	imgHeight := pageW / ratio

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(snapshotImage, opts, bytes.NewReader(snap.PNG))
	offsets := Paginate(imgHeight, pageH)
	for _, y := range offsets {
		pdf.AddPage()
		pdf.ImageOptions(snapshotImage, 0, y, pageW, imgHeight, false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return Result{}, fmt.Errorf("assemble: %w", err)
	}

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return Result{}, err
	}
	path := filepath.Join(e.outDir, FileName(doc.Title))
	tmp, err := os.CreateTemp(e.outDir, ".boardmate-*.pdf")
	if err != nil {
		return Result{}, err
	}
	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("write pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Result{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return Result{}, err
	}
	return Result{Path: path, Offsets: offsets, ImageHeight: imgHeight}, nil
}

// CountPages opens a PDF and returns its page count.
func CountPages(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, fmt.Errorf("read pdf %s: %w", path, err)
	}
	return doc.NumPage(), nil
}
