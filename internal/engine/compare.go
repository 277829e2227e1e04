package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/piwi3910/YardCut/internal/model"
)

// Packer runs orientation comparisons with a fixed set of settings.
type Packer struct {
	Settings model.Settings
}

func New(settings model.Settings) *Packer {
	return &Packer{Settings: settings}
}

// Compare packs table onto fabric fabricWidth wide twice: once with the
// horizontal dimension across the width and once with the vertical one.
// Both candidates are returned in model.Orientations order; neither is
// assumed to be the better one. Seam allowance is added to every piece
// before packing.
func (p *Packer) Compare(ctx context.Context, table model.PieceTable, fabricWidth float64) (model.Comparison, error) {
	if err := table.Validate(); err != nil {
		return model.Comparison{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if p.Settings.SeamAllowance < 0 {
		return model.Comparison{}, fmt.Errorf("%w: seam allowance must not be negative, got %v", ErrInvalidArgument, p.Settings.SeamAllowance)
	}

	logger := klog.FromContext(ctx)
	horizontal, vertical, refs := table.Expand(p.Settings.SeamAllowance)

	comparison := model.Comparison{
		RunID:       uuid.New().String()[:8],
		Dataset:     table.Name,
		FabricWidth: fabricWidth,
		Unit:        p.Settings.Unit,
		Pieces:      refs,
		Candidates:  make([]model.OrientationResult, 0, len(model.Orientations)),
	}

	for _, o := range model.Orientations {
		widths, heights := o.Dimensions(horizontal, vertical)
		result, err := Pack(widths, heights, fabricWidth)
		if err != nil {
			return model.Comparison{}, fmt.Errorf("packing %s: %w", o, err)
		}
		est := model.EstimateYardage(result, p.Settings)

		if result.Feasible() {
			logger.V(2).Info("Packed layout", "dataset", table.Name, "width", fabricWidth,
				"orientation", o.Key(), "length", result.TotalLength, "amount", est.Amount, "unit", est.DisplayUnit)
		} else {
			logger.V(2).Info("Layout infeasible", "dataset", table.Name, "width", fabricWidth,
				"orientation", o.Key(), "reason", result.Infeasible.String())
		}

		comparison.Candidates = append(comparison.Candidates, model.OrientationResult{
			Orientation: o,
			Result:      result,
			Estimate:    est,
			Remnants:    model.DetectRemnants(result, p.Settings.MinRemnant),
		})
	}

	return comparison, nil
}

// CompareWidths runs Compare for each width in order. When widths is
// empty the settings' default fabric widths are used.
func (p *Packer) CompareWidths(ctx context.Context, table model.PieceTable, widths []float64) ([]model.Comparison, error) {
	if len(widths) == 0 {
		widths = p.Settings.FabricWidths
	}
	results := make([]model.Comparison, 0, len(widths))
	for _, w := range widths {
		c, err := p.Compare(ctx, table, w)
		if err != nil {
			return nil, fmt.Errorf("width %g: %w", w, err)
		}
		results = append(results, c)
	}
	return results, nil
}
