// Package engine implements the greedy shelf packer that lays rectangular
// pieces out on a roll of fixed-width material, plus the orientation
// comparison and batch runners built on top of it.
package engine

import (
	"cmp"
	"slices"

	"github.com/piwi3910/YardCut/internal/model"
)

// Pack lays the pieces out on material containerWidth wide and returns the
// length consumed together with every piece's position.
//
// Pieces are sorted by height, tallest first, keeping input order among
// equal heights, then placed left to right into rows. A piece that does
// not fit in what is left of the current row starts a new row below the
// tallest piece of the current one. The result is the greedy layout, not
// an optimal one.
//
// If any width exceeds containerWidth, the returned result is infeasible
// (see model.PackResult.Feasible) and no packing is attempted. Malformed
// input returns an error wrapping ErrInvalidArgument.
func Pack(widths, heights []float64, containerWidth float64) (model.PackResult, error) {
	if err := validateInput(widths, heights, containerWidth); err != nil {
		return model.PackResult{}, err
	}

	for i, w := range widths {
		if w > containerWidth {
			return model.NewInfeasibleResult(containerWidth, i, w), nil
		}
	}

	pieces := make([]model.Piece, len(widths))
	for i := range widths {
		pieces[i] = model.Piece{Width: widths[i], Height: heights[i], Index: i}
	}
	slices.SortStableFunc(pieces, func(a, b model.Piece) int {
		return cmp.Compare(b.Height, a.Height)
	})

	return packSorted(pieces, containerWidth), nil
}

// PackPieces is Pack for callers that already hold model.Piece values.
// Piece.Index is ignored and reassigned from slice position.
func PackPieces(pieces []model.Piece, containerWidth float64) (model.PackResult, error) {
	widths := make([]float64, len(pieces))
	heights := make([]float64, len(pieces))
	for i, p := range pieces {
		widths[i] = p.Width
		heights[i] = p.Height
	}
	return Pack(widths, heights, containerWidth)
}

// shelf is the mutable state of the row being filled.
type shelf struct {
	y         float64 // Length consumed by closed rows
	height    float64 // Tallest piece in the open row
	x         float64 // Next free x in the open row
	remaining float64 // Width left in the open row
}

// packSorted runs the single placement pass over pieces already in
// placement order. Every width must be <= containerWidth.
func packSorted(pieces []model.Piece, containerWidth float64) model.PackResult {
	result := model.PackResult{
		ContainerWidth: containerWidth,
		Placements:     make([]model.PlacedPiece, 0, len(pieces)),
	}
	s := shelf{remaining: containerWidth}

	for _, pc := range pieces {
		if pc.Width <= s.remaining && len(result.Rows) > 0 {
			result.Placements = append(result.Placements, model.PlacedPiece{
				X: s.x, Y: s.y, Width: pc.Width, Height: pc.Height, Index: pc.Index,
			})
			s.x += pc.Width
			s.remaining -= pc.Width
			s.height = max(s.height, pc.Height)
		} else {
			// Close the open row; the first piece opens row 0 at y=0
			s.y += s.height
			result.Rows = append(result.Rows, model.Row{Y: s.y})
			result.Placements = append(result.Placements, model.PlacedPiece{
				X: 0, Y: s.y, Width: pc.Width, Height: pc.Height, Index: pc.Index,
			})
			s.x = pc.Width
			s.remaining = containerWidth - pc.Width
			s.height = pc.Height
		}

		row := &result.Rows[len(result.Rows)-1]
		row.Height = s.height
		row.UsedWidth = s.x
		row.Placements = append(row.Placements, len(result.Placements)-1)
	}

	result.TotalLength = s.y + s.height
	return result
}
