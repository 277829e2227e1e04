package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/YardCut/internal/model"
)

// DXF layer names.
const (
	LayerFabric = "FABRIC"
	LayerPieces = "PIECES"
	LayerLabels = "LABELS"
)

// WriteLayoutDXF draws one feasible candidate as a flat cutting plan.
// Pieces are closed polylines. The fabric is drawn as two selvage lines
// and the final cut line, left open so the plan imports back as pieces
// only. Y runs negative so the plan reads top down like the diagrams.
func WriteLayoutDXF(path string, cand model.OrientationResult) error {
	r := cand.Result
	if !r.Feasible() {
		return fmt.Errorf("%s: %s", cand.Orientation, r.Infeasible)
	}
	if len(r.Placements) == 0 {
		return ErrNothingToExport
	}

	d := dxf.NewDrawing()
	if err := drawFabric(d, r); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerPieces, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerPieces, err)
	}
	for _, p := range r.Placements {
		if _, err := d.LwPolyline(true,
			[]float64{p.X, -p.Y},
			[]float64{p.Right(), -p.Y},
			[]float64{p.Right(), -p.Bottom()},
			[]float64{p.X, -p.Bottom()},
		); err != nil {
			return fmt.Errorf("piece %d: %w", p.Index+1, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerLabels, err)
	}
	for _, p := range r.Placements {
		h := textHeight(p)
		label := fmt.Sprintf("%d", p.Index+1)
		if _, err := d.Text(label, p.X+p.Width/2-h/4, -(p.Y + p.Height/2 + h/2), 0, h); err != nil {
			return fmt.Errorf("label %d: %w", p.Index+1, err)
		}
	}

	return d.SaveAs(path)
}

func drawFabric(d *drawing.Drawing, r model.PackResult) error {
	if _, err := d.AddLayer(LayerFabric, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerFabric, err)
	}
	w, l := r.ContainerWidth, r.TotalLength
	lines := [][4]float64{
		{0, 0, 0, -l}, // left selvage
		{0, -l, w, -l},
		{w, -l, w, 0}, // right selvage
	}
	for _, ln := range lines {
		if _, err := d.Line(ln[0], ln[1], 0, ln[2], ln[3], 0); err != nil {
			return fmt.Errorf("fabric outline: %w", err)
		}
	}
	return nil
}

// textHeight keeps labels inside small pieces.
func textHeight(p model.PlacedPiece) float64 {
	h := p.Height / 3
	if w := p.Width / 3; w < h {
		h = w
	}
	if h > 4 {
		h = 4
	}
	return h
}

// ExportDXF writes one DXF per feasible candidate into dir and returns the
// paths written. Infeasible candidates are skipped.
func ExportDXF(dir string, comparisons []model.Comparison) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, c := range comparisons {
		for _, cand := range c.Candidates {
			if !cand.Result.Feasible() || len(cand.Result.Placements) == 0 {
				continue
			}
			path := filepath.Join(dir, LayoutFileName(c, cand, ".dxf"))
			if err := WriteLayoutDXF(path, cand); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, ErrNothingToExport
	}
	return paths, nil
}
