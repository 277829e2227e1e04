package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/YardCut/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	RunID       string  `json:"run"`
	Dataset     string  `json:"dataset"`
	FabricWidth float64 `json:"fabric_width"`
	Orientation string  `json:"orientation"`
	Number      int     `json:"number"` // 1-based index shown on the diagrams
	PieceID     string  `json:"piece_id,omitempty"`
	PieceLabel  string  `json:"label"`
	Width       float64 `json:"width"`  // Extent across the fabric
	Height      float64 `json:"height"` // Extent along the fabric
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels writes a sheet of QR-coded labels, one per piece of the
// shorter layout of every comparison. Widths with no feasible layout are
// skipped.
func ExportLabels(path string, comparisons []model.Comparison) error {
	labels := CollectLabelInfos(comparisons)
	if len(labels) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PieceLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%d. %s", info.Number, info.PieceLabel)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%g across x %g along", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	where := fmt.Sprintf("%s @ %g wide", info.Dataset, info.FabricWidth)
	pdf.CellFormat(textW, 3, where, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pos := fmt.Sprintf("at (%g, %g) %s", info.X, info.Y, info.Orientation)
	pdf.CellFormat(textW, 3, pos, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos lists the pieces of each comparison's shorter layout
// in placement order.
func CollectLabelInfos(comparisons []model.Comparison) []LabelInfo {
	var labels []LabelInfo
	for _, c := range comparisons {
		best, ok := c.Best()
		if !ok {
			continue
		}
		for _, p := range best.Result.Placements {
			info := LabelInfo{
				RunID:       c.RunID,
				Dataset:     c.Dataset,
				FabricWidth: c.FabricWidth,
				Orientation: best.Orientation.Key(),
				Number:      p.Index + 1,
				PieceLabel:  c.PieceLabel(p.Index),
				Width:       p.Width,
				Height:      p.Height,
				X:           p.X,
				Y:           p.Y,
			}
			if p.Index < len(c.Pieces) {
				info.PieceID = c.Pieces[p.Index].ID
			}
			if info.PieceLabel == "" {
				info.PieceLabel = fmt.Sprintf("Piece %d", info.Number)
			}
			labels = append(labels, info)
		}
	}
	return labels
}
