package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/YardCut/internal/model"
)

const summarySheet = "Summary"

var summaryHeaders = []interface{}{
	"Dataset", "Fabric Width", "Orientation", "Feasible", "Length",
	"Amount", "Unit", "Buy", "Cost", "Efficiency %", "Best",
	"Remnant Area",
}

var placementHeaders = []interface{}{"#", "Label", "X", "Y", "Width", "Height", "Row"}

// ExportXLSX writes a workbook with a summary sheet and one placement
// sheet per feasible candidate.
func ExportXLSX(path string, comparisons []model.Comparison) error {
	if !hasCandidates(comparisons) {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeRow(f, summarySheet, 1, summaryHeaders); err != nil {
		return err
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, bold); err != nil {
		return err
	}

	row := 2
	sheetNum := 0
	for _, c := range comparisons {
		best, hasBest := c.Best()
		for _, cand := range c.Candidates {
			isBest := hasBest && best.Orientation == cand.Orientation
			if err := writeRow(f, summarySheet, row, summaryValues(c, cand, isBest)); err != nil {
				return err
			}
			row++

			if !cand.Result.Feasible() {
				continue
			}
			sheetNum++
			name := fmt.Sprintf("%d %s", sheetNum, cand.Orientation.Key())
			if err := writePlacementSheet(f, name, c, cand, bold); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func summaryValues(c model.Comparison, cand model.OrientationResult, isBest bool) []interface{} {
	e := cand.Estimate
	if !e.Feasible {
		return []interface{}{c.Dataset, c.FabricWidth, cand.Orientation.Key(), false}
	}
	return []interface{}{
		c.Dataset, c.FabricWidth, cand.Orientation.Key(), true, e.Length,
		e.Amount, e.DisplayUnit, e.PurchaseAmount, e.EstimatedCost,
		model.RoundTo(e.Efficiency, 1), isBest,
		model.RoundTo(model.TotalRemnantArea(cand.Remnants), 2),
	}
}

func writePlacementSheet(f *excelize.File, name string, c model.Comparison, cand model.OrientationResult, header int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	title := []interface{}{fmt.Sprintf("%s at %g wide, %s", c.Dataset, c.FabricWidth, cand.Orientation)}
	if err := writeRow(f, name, 1, title); err != nil {
		return err
	}
	if err := writeRow(f, name, 2, placementHeaders); err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 2, header); err != nil {
		return err
	}

	rowOf := make(map[int]int, len(cand.Result.Placements))
	for ri, r := range cand.Result.Rows {
		for _, pi := range r.Placements {
			rowOf[pi] = ri + 1
		}
	}

	for i, p := range cand.Result.Placements {
		values := []interface{}{p.Index + 1, c.PieceLabel(p.Index), p.X, p.Y, p.Width, p.Height, rowOf[i]}
		if err := writeRow(f, name, i+3, values); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
