package export

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/thywilljoshua/boardmate/internal/store"
)

const (
	// Scale is the oversampling factor applied to every layout dimension.
	Scale = 2
	// PageWidthPx is the layout width in CSS pixels (A4 at 96 dpi).
	PageWidthPx = 794
	paddingPx   = 32
	lineSpacing = 1.5
)

const (
	DarkBackground  = "#1e293b"
	LightBackground = "#ffffff"
)

// Snapshot is a rasterized document encoded as PNG.
type Snapshot struct {
	PNG    []byte
	Width  int
	Height int
}

type Rasterizer interface {
	Rasterize(ctx context.Context, doc *Document, theme store.Theme) (*Snapshot, error)
}

type palette struct {
	bg, title, text, body, hint, accent, card string
}

func paletteFor(theme store.Theme) palette {
	if theme.IsDark() {
		return palette{
			bg: DarkBackground, title: "#ffffff", text: "#e2e8f0", body: "#cbd5e1",
			hint: "#94a3b8", accent: "#0369a1", card: "#0c4a6e",
		}
	}
	return palette{
		bg: LightBackground, title: "#0f172a", text: "#1e293b", body: "#334155",
		hint: "#475569", accent: "#7dd3fc", card: "#f0f9ff",
	}
}

type faces struct {
	title, heading, term, body, hint font.Face
	sizes                            map[font.Face]float64
}

// GGRasterizer draws documents with gg using the Go font family, or a
// custom TTF for regular text when FontPath is set.
type GGRasterizer struct {
	FontPath string
}

func (r GGRasterizer) loadFaces() (*faces, error) {
	regularTTF := goregular.TTF
	if r.FontPath != "" {
		b, err := os.ReadFile(r.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		regularTTF = b
	}
	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	f := &faces{sizes: map[font.Face]float64{}}
	mk := func(fnt *truetype.Font, px float64) font.Face {
		size := px * Scale
		face := truetype.NewFace(fnt, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		f.sizes[face] = size
		return face
	}
	f.title = mk(bold, 30)
	f.heading = mk(bold, 24)
	f.term = mk(bold, 16)
	f.body = mk(regular, 16)
	f.hint = mk(italic, 14)
	return f, nil
}

type drawOp struct {
	face  font.Face
	color string
	x, y  float64 // y is the baseline
	text  string
	rect  *[4]float64
}

func (r GGRasterizer) Rasterize(ctx context.Context, doc *Document, theme store.Theme) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("nothing to rasterize")
	}
	fs, err := r.loadFaces()
	if err != nil {
		return nil, err
	}
	pal := paletteFor(theme)

	width := float64(PageWidthPx * Scale)
	pad := float64(paddingPx * Scale)
	inner := width - 2*pad

	measure := gg.NewContext(1, 1)
	var ops []drawOp
	y := pad

	text := func(face font.Face, color string, x, maxW float64, s string) {
		measure.SetFontFace(face)
		size := fs.sizes[face]
		for _, line := range measure.WordWrap(s, maxW) {
			ops = append(ops, drawOp{face: face, color: color, x: x, y: y + size, text: line})
			y += size * lineSpacing
		}
	}
	rect := func(color string, x, top, w, h float64) {
		ops = append(ops, drawOp{color: color, rect: &[4]float64{x, top, w, h}})
	}
	gap := func(px float64) { y += px * Scale }

	for _, b := range doc.Blocks {
		switch b.Kind {
		case Title:
			text(fs.title, pal.title, pad, inner, b.Text)
			gap(8)
		case Heading:
			gap(24)
			text(fs.heading, pal.text, pad, inner, b.Text)
			rect("#0ea5e9", pad, y, inner, 2*Scale)
			gap(14)
		case Card:
			top := y
			boxOps := len(ops)
			gap(8)
			text(fs.term, pal.text, pad+16*Scale, inner-24*Scale, b.Text)
			text(fs.body, pal.body, pad+16*Scale, inner-24*Scale, b.Detail)
			gap(4)
			h := y - top
			// Background and accent bar go under the text already queued.
			box := []drawOp{
				{color: pal.card, rect: &[4]float64{pad, top, inner, h}},
				{color: pal.accent, rect: &[4]float64{pad, top, 4 * Scale, h}},
			}
			ops = append(ops[:boxOps], append(box, ops[boxOps:]...)...)
			gap(8)
		case Term:
			text(fs.term, pal.text, pad, inner, b.Text)
		case Body:
			text(fs.body, pal.body, pad, inner, b.Text)
			gap(8)
		case Hint:
			text(fs.hint, pal.hint, pad, inner, b.Text)
			gap(8)
		case Bullet:
			text(fs.body, pal.body, pad+16*Scale, inner-16*Scale, "• "+b.Text)
		}
	}
	y += pad

	height := int(math.Ceil(y))
	dc := gg.NewContext(int(width), height)
	dc.SetHexColor(pal.bg)
	dc.Clear()
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc.SetHexColor(op.color)
		if op.rect != nil {
			dc.DrawRectangle(op.rect[0], op.rect[1], op.rect[2], op.rect[3])
			dc.Fill()
			continue
		}
		dc.SetFontFace(op.face)
		dc.DrawString(op.text, op.x, op.y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return &Snapshot{PNG: buf.Bytes(), Width: int(width), Height: height}, nil
}
