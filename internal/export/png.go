package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/piwi3910/YardCut/internal/model"
)

// Raster layout in pixels.
const (
	pngMaxSide     = 4000
	pngUnitPixels  = 8.0
	pngTitleHeight = 64.0
	pngAxisWidth   = 48.0
	pngMargin      = 16.0
)

// LayoutRenderer draws candidate layouts as raster images.
type LayoutRenderer struct {
	context *gg.Context
	scale   float64
	originX float64
	originY float64
}

// NewLayoutRenderer sizes a canvas for one candidate layout.
func NewLayoutRenderer(r model.PackResult) *LayoutRenderer {
	length := 1.0
	if l, ok := r.Length(); ok && l > 0 {
		length = l
	}
	width := r.ContainerWidth
	if width <= 0 || math.IsNaN(width) {
		width = 1
	}

	scale := pngUnitPixels
	if longest := math.Max(width, length) * scale; longest > pngMaxSide {
		scale = pngMaxSide / math.Max(width, length)
	}

	w := int(math.Ceil(pngAxisWidth + width*scale + 2*pngMargin))
	h := int(math.Ceil(pngTitleHeight + length*scale + 2*pngMargin))
	if !r.Feasible() {
		w = int(math.Max(float64(w), 480))
		h = int(pngTitleHeight + 80)
	}

	return &LayoutRenderer{
		context: gg.NewContext(w, h),
		scale:   scale,
		originX: pngMargin + pngAxisWidth,
		originY: pngMargin + pngTitleHeight,
	}
}

// Render paints the layout with its caption.
func (lr *LayoutRenderer) Render(c model.Comparison, cand model.OrientationResult) {
	dc := lr.context
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	for i, line := range diagramTitle(c, cand) {
		dc.DrawStringAnchored(line, float64(dc.Width())/2, pngMargin+float64(i)*16, 0.5, 1)
	}

	r := cand.Result
	if !r.Feasible() {
		dc.SetRGB(0.8, 0, 0)
		dc.DrawStringAnchored("No layout: "+r.Infeasible.String(), float64(dc.Width())/2, lr.originY+20, 0.5, 0.5)
		return
	}

	length := math.Max(r.TotalLength, 1)
	fw := r.ContainerWidth * lr.scale
	fh := length * lr.scale

	// Fabric
	dc.SetRGB(0.98, 0.98, 0.98)
	dc.DrawRectangle(lr.originX, lr.originY, fw, fh)
	dc.FillPreserve()
	dc.SetRGB(0.5, 0.5, 0.5)
	dc.SetLineWidth(1)
	dc.Stroke()

	for _, p := range r.Placements {
		x := lr.originX + p.X*lr.scale
		y := lr.originY + p.Y*lr.scale
		w := p.Width * lr.scale
		h := p.Height * lr.scale

		dc.SetRGB255(pieceFill[0], pieceFill[1], pieceFill[2])
		dc.DrawRectangle(x, y, w, h)
		dc.FillPreserve()
		dc.SetRGB255(pieceEdge[0], pieceEdge[1], pieceEdge[2])
		dc.SetLineWidth(1)
		dc.Stroke()

		label := fmt.Sprintf("%d", p.Index+1)
		if lw, lh := dc.MeasureString(label); lw < w && lh < h {
			dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
		}
	}

	// Length axis, 0 at the top
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.DrawLine(lr.originX-4, lr.originY, lr.originX-4, lr.originY+fh)
	dc.Stroke()
	step := axisStep(length)
	for v := 0.0; v <= length+1e-9; v += step {
		y := lr.originY + v*lr.scale
		dc.DrawLine(lr.originX-8, y, lr.originX-4, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%g", v), lr.originX-10, y, 1, 0.5)
	}
}

// EncodePNG writes the canvas to w.
func (lr *LayoutRenderer) EncodePNG(w io.Writer) error {
	return lr.context.EncodePNG(w)
}

// SavePNG writes the canvas to path.
func (lr *LayoutRenderer) SavePNG(path string) error {
	return lr.context.SavePNG(path)
}

// LayoutFileName names the file for one candidate, e.g. couch-3_98_horizontal.png.
func LayoutFileName(c model.Comparison, cand model.OrientationResult, ext string) string {
	name := c.Dataset
	if name == "" {
		name = "layout"
	}
	return fmt.Sprintf("%s_%g_%s%s", name, c.FabricWidth, cand.Orientation.Key(), ext)
}

// ExportPNG writes one image per candidate into dir and returns the paths written.
func ExportPNG(dir string, comparisons []model.Comparison) ([]string, error) {
	if !hasCandidates(comparisons) {
		return nil, ErrNothingToExport
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, c := range comparisons {
		for _, cand := range c.Candidates {
			lr := NewLayoutRenderer(cand.Result)
			lr.Render(c, cand)
			path := filepath.Join(dir, LayoutFileName(c, cand, ".png"))
			if err := lr.SavePNG(path); err != nil {
				return paths, fmt.Errorf("save %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
