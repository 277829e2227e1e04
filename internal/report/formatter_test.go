package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/piwi3910/YardCut/internal/engine"
	"github.com/piwi3910/YardCut/internal/model"
)

func couchComparisons(t *testing.T, widths ...float64) []model.Comparison {
	t.Helper()
	table, err := model.NewPieceTable("couch-3",
		[]float64{69, 90, 27, 59, 27, 26, 58, 40, 36, 36, 36, 42},
		[]float64{36, 36, 56, 31, 15, 15, 15, 15, 44, 44, 44, 49},
	)
	require.NoError(t, err)
	comparisons, err := engine.New(model.DefaultSettings()).CompareWidths(context.Background(), table, widths)
	require.NoError(t, err)
	return comparisons
}

func TestDefaultFormatter_Text(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)
	ctx := context.Background()
	comparisons := couchComparisons(t, 45, 98)

	tests := map[string]struct {
		showInfeasible bool
		showBest       bool
		want           string
	}{
		"matches the plain printout": {
			want: "couch-3\n" +
				"horizontal along fabric width: 98 wide 8.14 yards\n" +
				"vertical along fabric width: 98 wide 8.39 yards\n",
		},
		"with infeasible orientations": {
			showInfeasible: true,
			want: "couch-3\n" +
				"horizontal along fabric width: 45 wide does not fit (piece 1 is 71 wide, fabric is only 45 wide)\n" +
				"vertical along fabric width: 45 wide does not fit (piece 3 is 58 wide, fabric is only 45 wide)\n" +
				"horizontal along fabric width: 98 wide 8.14 yards\n" +
				"vertical along fabric width: 98 wide 8.39 yards\n",
		},
		"with recommendation": {
			showBest: true,
			want: "couch-3\n" +
				"horizontal along fabric width: 98 wide 8.14 yards\n" +
				"vertical along fabric width: 98 wide 8.39 yards\n" +
				"best at 98: horizontal along fabric width, buy 8.25 yds\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			formatter.ShowInfeasible = tc.showInfeasible
			formatter.ShowBest = tc.showBest
			got, err := formatter.Format(ctx, comparisons, FormatText)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestDefaultFormatter_TextGroupsByDataset(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)

	bikes, err := model.NewPieceTable("bikes", []float64{102}, []float64{138})
	require.NoError(t, err)
	bikeRuns, err := engine.New(model.DefaultSettings()).CompareWidths(context.Background(), bikes, []float64{120})
	require.NoError(t, err)

	comparisons := append(couchComparisons(t, 98, 120), bikeRuns...)
	got, err := formatter.Format(context.Background(), comparisons, FormatText)
	require.NoError(t, err)

	out := string(got)
	assert.Equal(t, 1, strings.Count(out, "couch-3\n"))
	assert.Contains(t, out, "bikes\nhorizontal along fabric width: 120 wide 3.89 yards\n")
	// The bike frame only fits one way across 120
	assert.Equal(t, 1, strings.Count(out, "vertical along fabric width: 120 wide"))
}

func TestDefaultFormatter_Metric(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)

	c := model.Comparison{
		Dataset:     "cm",
		FabricWidth: 150,
		Candidates: []model.OrientationResult{{
			Orientation: model.OrientationHorizontalAcross,
			Estimate:    model.YardageEstimate{Feasible: true, Amount: 1.23, DisplayUnit: "m"},
		}},
	}
	got, err := formatter.Format(context.Background(), []model.Comparison{c}, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "cm\nhorizontal along fabric width: 150 wide 1.23 metres\n", string(got))
}

func TestDefaultFormatter_JSON(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)

	got, err := formatter.Format(context.Background(), couchComparisons(t, 45, 98), FormatJSON)
	require.NoError(t, err)

	var decoded []model.Comparison
	require.NoError(t, json.Unmarshal(got, &decoded))
	require.Len(t, decoded, 2)
	assert.False(t, decoded[0].Candidates[0].Result.Feasible())
	assert.Equal(t, 293.0, decoded[1].Candidates[0].Result.TotalLength)
	assert.Contains(t, string(got), `"total_length": null`)
}

func TestDefaultFormatter_YAML(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)

	got, err := formatter.Format(context.Background(), couchComparisons(t, 98), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(got), "orientation: horizontal")
	assert.Contains(t, string(got), "dataset: couch-3")

	var decoded []model.Comparison
	require.NoError(t, yaml.Unmarshal(got, &decoded))
	assert.Equal(t, 302.0, decoded[0].Candidates[1].Result.TotalLength)
}

func TestDefaultFormatter_UnsupportedFormat(t *testing.T) {
	formatter, err := NewDefaultFormatter()
	require.NoError(t, err)
	_, err = formatter.Format(context.Background(), nil, Format("markdown"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
