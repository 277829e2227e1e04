package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/YardCut/internal/model"
)

func TestBatchJobs_CrossProduct(t *testing.T) {
	a := model.PieceTable{Name: "a"}
	b := model.PieceTable{Name: "b"}
	jobs := BatchJobs([]model.PieceTable{a, b}, []float64{45, 60})

	require.Len(t, jobs, 4)
	assert.Equal(t, "a", jobs[1].Table.Name)
	assert.Equal(t, 60.0, jobs[1].FabricWidth)
	assert.Equal(t, "b", jobs[2].Table.Name)
	assert.Equal(t, 45.0, jobs[2].FabricWidth)
}

func TestRunBatch_MatchesSequentialRuns(t *testing.T) {
	p := New(model.DefaultSettings())
	table := couchThree(t)
	jobs := BatchJobs([]model.PieceTable{table}, []float64{45, 56, 60, 98, 120})

	got, err := p.RunBatch(context.Background(), jobs, 3)
	require.NoError(t, err)
	require.Len(t, got, len(jobs))

	for i, job := range jobs {
		want, err := p.Compare(context.Background(), job.Table, job.FabricWidth)
		require.NoError(t, err)
		// Run ids differ between runs, and NaN lengths never compare equal
		opts := cmp.Options{
			cmpopts.IgnoreFields(model.Comparison{}, "RunID"),
			cmpopts.EquateNaNs(),
		}
		if diff := cmp.Diff(want, got[i], opts); diff != "" {
			t.Errorf("job %d differs (-sequential +batch):\n%s", i, diff)
		}
	}
}

func TestRunBatch_DefaultWorkers(t *testing.T) {
	p := New(model.DefaultSettings())
	jobs := BatchJobs([]model.PieceTable{couchThree(t)}, []float64{98})
	got, err := p.RunBatch(context.Background(), jobs, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 98.0, got[0].FabricWidth)
}

func TestRunBatch_FailingJob(t *testing.T) {
	p := New(model.DefaultSettings())
	jobs := []BatchJob{
		{Table: couchThree(t), FabricWidth: 98},
		{Table: couchThree(t), FabricWidth: -1},
	}
	_, err := p.RunBatch(context.Background(), jobs, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRunBatch_CancelledContext(t *testing.T) {
	p := New(model.DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := BatchJobs([]model.PieceTable{couchThree(t)}, []float64{98, 120})
	_, err := p.RunBatch(ctx, jobs, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch_Empty(t *testing.T) {
	p := New(model.DefaultSettings())
	got, err := p.RunBatch(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
