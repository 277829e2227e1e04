package export

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/YardCut/internal/engine"
	"github.com/piwi3910/YardCut/internal/model"
)

// buildComparisons packs a couch cut list at 98 (both orientations fit)
// and at 45 (neither fits).
func buildComparisons(t *testing.T) []model.Comparison {
	t.Helper()
	table, err := model.NewPieceTable("couch-3",
		[]float64{69, 90, 27, 59, 27, 26, 58, 40, 36, 36, 36, 42},
		[]float64{36, 36, 56, 31, 15, 15, 15, 15, 44, 44, 44, 49},
	)
	require.NoError(t, err)

	comparisons, err := engine.New(model.DefaultSettings()).CompareWidths(context.Background(), table, []float64{98, 45})
	require.NoError(t, err)
	return comparisons
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "file was not created")
	require.Greater(t, info.Size(), int64(500), "file seems too small")
}
