package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/piwi3910/YardCut/internal/model"
)

// BatchJob is one (cut list, fabric width) pair.
type BatchJob struct {
	Table       model.PieceTable
	FabricWidth float64
}

// BatchJobs builds the cross product of tables and widths, tables outermost.
func BatchJobs(tables []model.PieceTable, widths []float64) []BatchJob {
	jobs := make([]BatchJob, 0, len(tables)*len(widths))
	for _, t := range tables {
		for _, w := range widths {
			jobs = append(jobs, BatchJob{Table: t, FabricWidth: w})
		}
	}
	return jobs
}

// RunBatch compares every job using up to workers goroutines (all CPUs when
// workers <= 0). Results are returned in job order. The first failing job
// cancels the rest; a cancelled ctx stops scheduling and returns its error.
func (p *Packer) RunBatch(ctx context.Context, jobs []BatchJob, workers int) ([]model.Comparison, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := klog.FromContext(ctx)
	results := make([]model.Comparison, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.V(4).Info("Running batch job", "index", i, "dataset", job.Table.Name, "width", job.FabricWidth)
			c, err := p.Compare(gctx, job.Table, job.FabricWidth)
			if err != nil {
				return fmt.Errorf("%s at width %g: %w", job.Table.Name, job.FabricWidth, err)
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
