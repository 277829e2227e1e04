package engine

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/piwi3910/YardCut/internal/model"
)

// assertValidLayout checks the layout invariants every feasible result must hold.
func assertValidLayout(t *testing.T, r model.PackResult, widths, heights []float64) {
	t.Helper()
	require.True(t, r.Feasible(), "expected feasible result")
	require.Len(t, r.Placements, len(widths))

	seen := make([]bool, len(widths))
	for _, p := range r.Placements {
		require.GreaterOrEqual(t, p.Index, 0)
		require.Less(t, p.Index, len(widths))
		assert.False(t, seen[p.Index], "index %d placed twice", p.Index)
		seen[p.Index] = true

		assert.Equal(t, widths[p.Index], p.Width, "width of piece %d", p.Index)
		assert.Equal(t, heights[p.Index], p.Height, "height of piece %d", p.Index)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.Right(), r.ContainerWidth+1e-9, "piece %d sticks out of the fabric", p.Index)
		assert.LessOrEqual(t, p.Bottom(), r.TotalLength+1e-9, "piece %d runs past the total length", p.Index)
	}

	for i := range r.Placements {
		for j := i + 1; j < len(r.Placements); j++ {
			assert.False(t, r.Placements[i].Overlaps(r.Placements[j]),
				"pieces %d and %d overlap", r.Placements[i].Index, r.Placements[j].Index)
		}
	}

	var rowSum float64
	for _, row := range r.Rows {
		rowSum += row.Height
	}
	assert.InDelta(t, r.TotalLength, rowSum, 1e-9, "total length must equal the sum of row heights")
}

func TestPack_SingleRow(t *testing.T) {
	r, err := Pack([]float64{10, 10}, []float64{5, 5}, 30)
	require.NoError(t, err)

	assert.Equal(t, 5.0, r.TotalLength)
	want := []model.PlacedPiece{
		{X: 0, Y: 0, Width: 10, Height: 5, Index: 0},
		{X: 10, Y: 0, Width: 10, Height: 5, Index: 1},
	}
	if diff := cmp.Diff(want, r.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, r.Rows, 1)
	assert.Equal(t, 20.0, r.Rows[0].UsedWidth)
}

func TestPack_TwoRows(t *testing.T) {
	r, err := Pack([]float64{20, 20}, []float64{5, 7}, 30)
	require.NoError(t, err)

	assert.Equal(t, 12.0, r.TotalLength)
	want := []model.PlacedPiece{
		{X: 0, Y: 0, Width: 20, Height: 7, Index: 1},
		{X: 0, Y: 7, Width: 20, Height: 5, Index: 0},
	}
	if diff := cmp.Diff(want, r.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}

	wantRows := []model.Row{
		{Y: 0, Height: 7, UsedWidth: 20, Placements: []int{0}},
		{Y: 7, Height: 5, UsedWidth: 20, Placements: []int{1}},
	}
	if diff := cmp.Diff(wantRows, r.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPack_Infeasible(t *testing.T) {
	r, err := Pack([]float64{10}, []float64{5}, 5)
	require.NoError(t, err, "an oversized piece is a result, not an error")

	assert.False(t, r.Feasible())
	assert.True(t, math.IsNaN(r.TotalLength))
	assert.Empty(t, r.Placements)
	require.NotNil(t, r.Infeasible)
	assert.Equal(t, 0, r.Infeasible.Index)
	assert.Equal(t, 10.0, r.Infeasible.Width)
	assert.Equal(t, 5.0, r.Infeasible.ContainerWidth)
}

func TestPack_InfeasibleReportsFirstOversizedPiece(t *testing.T) {
	r, err := Pack([]float64{5, 50, 60}, []float64{1, 1, 1}, 45)
	require.NoError(t, err)
	require.NotNil(t, r.Infeasible)
	assert.Equal(t, 1, r.Infeasible.Index)
}

func TestPack_ZeroPieces(t *testing.T) {
	r, err := Pack([]float64{}, []float64{}, 45)
	require.NoError(t, err)
	assert.True(t, r.Feasible())
	assert.Equal(t, 0.0, r.TotalLength)
	assert.Empty(t, r.Placements)

	r, err = Pack(nil, nil, 45)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.TotalLength)
}

func TestPack_PieceExactlyFabricWidth(t *testing.T) {
	r, err := Pack([]float64{30}, []float64{4}, 30)
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.TotalLength)

	// A second piece cannot share the full-width row
	r, err = Pack([]float64{30, 5}, []float64{4, 2}, 30)
	require.NoError(t, err)
	assert.Equal(t, 6.0, r.TotalLength)
	assert.Equal(t, model.PlacedPiece{X: 0, Y: 4, Width: 5, Height: 2, Index: 1}, r.Placements[1])
}

func TestPack_ZeroHeightPiece(t *testing.T) {
	r, err := Pack([]float64{10}, []float64{0}, 30)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.TotalLength)
	require.Len(t, r.Placements, 1)

	// Zero-height piece forced into its own row contributes nothing
	r, err = Pack([]float64{20, 20}, []float64{3, 0}, 30)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.TotalLength)
	assertValidLayout(t, r, []float64{20, 20}, []float64{3, 0})
}

func TestPack_StableOrderForEqualHeights(t *testing.T) {
	widths := []float64{5, 6, 7, 8}
	heights := []float64{3, 9, 3, 3}

	r, err := Pack(widths, heights, 100)
	require.NoError(t, err)

	var order []int
	for _, p := range r.Placements {
		order = append(order, p.Index)
	}
	assert.Equal(t, []int{1, 0, 2, 3}, order, "equal heights must keep input order")
	assert.Equal(t, []float64{0, 6, 11, 18}, []float64{
		r.Placements[0].X, r.Placements[1].X, r.Placements[2].X, r.Placements[3].X,
	})
}

func TestPack_GreedyDoesNotBackfill(t *testing.T) {
	// Once a row is closed the packer never returns to it, even when a later
	// piece would fit in the leftover space.
	r, err := Pack([]float64{20, 25, 10}, []float64{9, 8, 1}, 30)
	require.NoError(t, err)

	// 20x9 at (0,0); 25x8 starts row at y=9; 10x1 does not fit beside it (5 left)
	assert.Equal(t, model.PlacedPiece{X: 0, Y: 17, Width: 10, Height: 1, Index: 2}, r.Placements[2])
	assert.Equal(t, 18.0, r.TotalLength)
}

func TestPack_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	widths, heights := randomPieces(rng, 40, 60)

	first, err := Pack(widths, heights, 60)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Pack(widths, heights, 60)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestPack_DoesNotMutateInput(t *testing.T) {
	widths := []float64{1, 2, 3}
	heights := []float64{1, 3, 2}
	_, err := Pack(widths, heights, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, widths)
	assert.Equal(t, []float64{1, 3, 2}, heights)
}

func TestPack_RandomLayoutsAreValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		fabric := float64(20 + rng.Intn(100))
		n := rng.Intn(30)
		widths, heights := randomPieces(rng, n, fabric)

		r, err := Pack(widths, heights, fabric)
		require.NoError(t, err)
		assertValidLayout(t, r, widths, heights)

		// Rows are in length order and each row's height is its tallest piece
		ys := make([]float64, len(r.Rows))
		for i, row := range r.Rows {
			ys[i] = row.Y
			tallest := 0.0
			for _, pi := range row.Placements {
				tallest = math.Max(tallest, r.Placements[pi].Height)
				assert.Equal(t, row.Y, r.Placements[pi].Y)
			}
			assert.Equal(t, tallest, row.Height)
		}
		assert.True(t, sort.Float64sAreSorted(ys))
	}
}

func TestPack_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		widths  []float64
		heights []float64
		width   float64
	}{
		{"mismatched lengths", []float64{1, 2}, []float64{1}, 10},
		{"zero container", []float64{1}, []float64{1}, 0},
		{"negative container", []float64{1}, []float64{1}, -5},
		{"NaN container", []float64{1}, []float64{1}, math.NaN()},
		{"infinite container", []float64{1}, []float64{1}, math.Inf(1)},
		{"negative width", []float64{-1}, []float64{1}, 10},
		{"negative height", []float64{1}, []float64{-1}, 10},
		{"NaN height", []float64{1}, []float64{math.NaN()}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.widths, tt.heights, tt.width)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "error should wrap ErrInvalidArgument: %v", err)
		})
	}
}

func TestPack_ReportsAllViolations(t *testing.T) {
	_, err := Pack([]float64{-1, 2}, []float64{1, -2, 3}, 0)
	require.Error(t, err)
	// mismatch + container + one width + one height
	assert.Len(t, multierr.Errors(err), 4)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPackPieces(t *testing.T) {
	r, err := PackPieces([]model.Piece{
		{Width: 20, Height: 5, Index: 99},
		{Width: 20, Height: 7, Index: 42},
	}, 30)
	require.NoError(t, err)
	assert.Equal(t, 12.0, r.TotalLength)
	assert.Equal(t, 1, r.Placements[0].Index, "indices follow slice position")
}

func randomPieces(rng *rand.Rand, n int, fabric float64) (widths, heights []float64) {
	widths = make([]float64, n)
	heights = make([]float64, n)
	for i := 0; i < n; i++ {
		widths[i] = math.Round(rng.Float64()*fabric*10) / 10
		// Coarse heights so ties are common
		heights[i] = float64(rng.Intn(8) * 5)
	}
	return widths, heights
}
