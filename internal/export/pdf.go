// Package export renders yardage comparisons to PDF, PNG, DXF, Excel and
// printable piece labels.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/YardCut/internal/model"
)

// ErrNothingToExport is returned when no comparison holds anything to draw.
var ErrNothingToExport = errors.New("nothing to export")

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	titleHeight  = 18.0
	axisGutter   = 12.0
	drawAreaTop  = marginTop + titleHeight + 4.0
)

// Piece fill and edge colors, light blue with black edges.
var (
	pieceFill = [3]int{173, 216, 230}
	pieceEdge = [3]int{0, 0, 0}
)

// diagramTitle is the three-line caption shared by the PDF and PNG renderers.
func diagramTitle(c model.Comparison, cand model.OrientationResult) []string {
	total := "n/a"
	if cand.Estimate.Feasible {
		total = fmt.Sprintf("%.2f %s", cand.Estimate.Amount, cand.Estimate.DisplayUnit)
	}
	return []string{
		fmt.Sprintf("Width: %g", c.FabricWidth),
		fmt.Sprintf("Layout: %s", cand.Orientation.Title()),
		fmt.Sprintf("Total Length = %s", total),
	}
}

func hasCandidates(comparisons []model.Comparison) bool {
	for _, c := range comparisons {
		if len(c.Candidates) > 0 {
			return true
		}
	}
	return false
}

// ExportPDF writes one page per candidate layout followed by a summary page.
func ExportPDF(path string, comparisons []model.Comparison) error {
	if !hasCandidates(comparisons) {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, c := range comparisons {
		for _, cand := range c.Candidates {
			pdf.AddPage()
			renderLayoutPage(pdf, c, cand)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, comparisons)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws one candidate layout on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, c model.Comparison, cand model.OrientationResult) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	for i, line := range diagramTitle(c, cand) {
		pdf.SetXY(marginLeft, marginTop+float64(i)*6)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "C", false, 0, "")
	}

	r := cand.Result
	if !r.Feasible() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, drawAreaTop+10)
		msg := "No layout: " + r.Infeasible.String()
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, msg, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight - axisGutter
	drawHeight := pageHeight - drawAreaTop - marginBottom - 8

	// An empty layout still shows the bare fabric width.
	length := math.Max(r.TotalLength, 1)
	scale := math.Min(drawWidth/r.ContainerWidth, drawHeight/length)

	canvasW := r.ContainerWidth * scale
	canvasH := length * scale
	offsetX := marginLeft + axisGutter + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Fabric
	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range r.Placements {
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale
		pw := p.Width * scale
		ph := p.Height * scale

		pdf.SetFillColor(pieceFill[0], pieceFill[1], pieceFill[2])
		pdf.SetDrawColor(pieceEdge[0], pieceEdge[1], pieceEdge[2])
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		label := fmt.Sprintf("%d", p.Index+1)
		pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
		if lw := pdf.GetStringWidth(label); lw < pw && ph > 3 {
			pdf.SetXY(px+(pw-lw)/2, py+ph/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawLengthAxis(pdf, length, scale, offsetX, offsetY, canvasH)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	widthLabel := fmt.Sprintf("%g wide", r.ContainerWidth)
	wl := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wl)/2, offsetY+canvasH+1)
	pdf.CellFormat(wl, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawLengthAxis ticks the fabric length down the left edge with 0 at the top.
func drawLengthAxis(pdf *fpdf.Fpdf, length, scale, offsetX, offsetY, canvasH float64) {
	step := axisStep(length)
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetDrawColor(80, 80, 80)
	pdf.SetLineWidth(0.15)
	pdf.Line(offsetX-1, offsetY, offsetX-1, offsetY+canvasH)

	for v := 0.0; v <= length+1e-9; v += step {
		y := offsetY + v*scale
		pdf.Line(offsetX-2.5, y, offsetX-1, y)
		label := fmt.Sprintf("%g", v)
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(offsetX-3-lw, y-1.5)
		pdf.CellFormat(lw, 3, label, "", 0, "R", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// axisStep picks a 1, 2 or 5 times power-of-ten tick spacing giving
// roughly ten ticks.
func axisStep(length float64) float64 {
	if length <= 0 {
		return 1
	}
	raw := length / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// renderSummaryPage lists every candidate in one table.
func renderSummaryPage(pdf *fpdf.Fpdf, comparisons []model.Comparison) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Yardage Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{35, 20, 45, 25, 25, 30}
	headers := []string{"Dataset", "Width", "Orientation", "Length", "Amount", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	row := 0
	for _, c := range comparisons {
		best, hasBest := c.Best()
		for _, cand := range c.Candidates {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			rowData := summaryRow(c, cand)
			if row%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			style := ""
			if hasBest && cand.Orientation == best.Orientation {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, 9)

			xPos = marginLeft
			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
			row++
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Bold rows are the shorter layout for that width", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func summaryRow(c model.Comparison, cand model.OrientationResult) []string {
	length, amount, eff := "-", "-", "-"
	if l, ok := cand.Result.Length(); ok {
		length = fmt.Sprintf("%g", l)
		amount = fmt.Sprintf("%.2f %s", cand.Estimate.Amount, cand.Estimate.DisplayUnit)
		eff = fmt.Sprintf("%.1f%%", cand.Result.Efficiency())
	}
	return []string{
		c.Dataset,
		fmt.Sprintf("%g", c.FabricWidth),
		cand.Orientation.Key(),
		length,
		amount,
		eff,
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 30:
		return 10
	case minDim > 12:
		return 8
	default:
		return 6
	}
}
