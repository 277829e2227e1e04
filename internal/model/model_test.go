package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPlacedPieceOverlaps(t *testing.T) {
	a := PlacedPiece{X: 0, Y: 0, Width: 10, Height: 10}
	touching := PlacedPiece{X: 10, Y: 0, Width: 5, Height: 10}
	inside := PlacedPiece{X: 2, Y: 2, Width: 2, Height: 2}
	below := PlacedPiece{X: 0, Y: 10, Width: 10, Height: 3}

	if a.Overlaps(touching) {
		t.Error("pieces sharing an edge should not overlap")
	}
	if a.Overlaps(below) {
		t.Error("pieces sharing a bottom edge should not overlap")
	}
	if !a.Overlaps(inside) || !inside.Overlaps(a) {
		t.Error("contained piece should overlap in both directions")
	}
}

func TestInfeasibleResult(t *testing.T) {
	r := NewInfeasibleResult(45, 2, 60)

	if r.Feasible() {
		t.Fatal("expected infeasible result")
	}
	if !math.IsNaN(r.TotalLength) {
		t.Errorf("expected NaN total length, got %v", r.TotalLength)
	}
	if len(r.Placements) != 0 {
		t.Errorf("expected no placements, got %d", len(r.Placements))
	}
	if _, ok := r.Length(); ok {
		t.Error("Length should report not ok for an infeasible result")
	}
	if r.TotalArea() != 0 || r.Efficiency() != 0 {
		t.Error("infeasible result should report zero area and efficiency")
	}
	want := "piece 3 is 60 wide, fabric is only 45 wide"
	if got := r.Infeasible.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPackResultEfficiency(t *testing.T) {
	r := PackResult{
		ContainerWidth: 20,
		TotalLength:    10,
		Placements: []PlacedPiece{
			{X: 0, Y: 0, Width: 10, Height: 10, Index: 0},
			{X: 10, Y: 0, Width: 5, Height: 10, Index: 1},
		},
	}
	if got := r.UsedArea(); got != 150 {
		t.Errorf("expected used area 150, got %v", got)
	}
	if got := r.TotalArea(); got != 200 {
		t.Errorf("expected total area 200, got %v", got)
	}
	if got := r.Efficiency(); math.Abs(got-75) > 1e-9 {
		t.Errorf("expected 75%% efficiency, got %v", got)
	}
}

func TestPackResultByIndex(t *testing.T) {
	r := PackResult{
		ContainerWidth: 30,
		TotalLength:    7,
		Placements: []PlacedPiece{
			{X: 0, Y: 0, Width: 10, Height: 7, Index: 1},
			{X: 10, Y: 0, Width: 10, Height: 5, Index: 0},
		},
	}
	ordered := r.ByIndex()
	if ordered[0].Height != 5 || ordered[1].Height != 7 {
		t.Errorf("expected placements in input order, got %+v", ordered)
	}
}

func TestPackResultJSONInfeasible(t *testing.T) {
	r := NewInfeasibleResult(45, 0, 50)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal infeasible result: %v", err)
	}

	var decoded PackResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal infeasible result: %v", err)
	}
	if decoded.Feasible() {
		t.Error("decoded result should stay infeasible")
	}
	if !math.IsNaN(decoded.TotalLength) {
		t.Errorf("expected NaN after decode, got %v", decoded.TotalLength)
	}
}

func TestPackResultJSONFeasible(t *testing.T) {
	r := PackResult{
		ContainerWidth: 30,
		TotalLength:    12,
		Placements:     []PlacedPiece{{X: 0, Y: 0, Width: 20, Height: 7, Index: 1}},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded PackResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TotalLength != 12 {
		t.Errorf("expected total length 12, got %v", decoded.TotalLength)
	}
	if len(decoded.Placements) != 1 || decoded.Placements[0].Index != 1 {
		t.Errorf("placements not preserved: %+v", decoded.Placements)
	}
}

func TestOrientationDimensions(t *testing.T) {
	h := []float64{1, 2}
	v := []float64{3, 4}

	w, ht := OrientationHorizontalAcross.Dimensions(h, v)
	if w[0] != 1 || ht[0] != 3 {
		t.Errorf("horizontal-across should keep (h, v), got (%v, %v)", w, ht)
	}
	w, ht = OrientationVerticalAcross.Dimensions(h, v)
	if w[0] != 3 || ht[0] != 1 {
		t.Errorf("vertical-across should swap to (v, h), got (%v, %v)", w, ht)
	}
}

func TestOrientationTextRoundTrip(t *testing.T) {
	for _, o := range Orientations {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back Orientation
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != o {
			t.Errorf("expected %v, got %v", o, back)
		}
	}
	if _, err := ParseOrientation("diagonal"); err == nil {
		t.Error("expected error for unknown orientation")
	}
}

func TestComparisonBest(t *testing.T) {
	feasible := func(l float64) PackResult {
		return PackResult{ContainerWidth: 45, TotalLength: l, Placements: []PlacedPiece{}}
	}

	c := Comparison{Candidates: []OrientationResult{
		{Orientation: OrientationHorizontalAcross, Result: feasible(100)},
		{Orientation: OrientationVerticalAcross, Result: feasible(80)},
	}}
	best, ok := c.Best()
	if !ok || best.Orientation != OrientationVerticalAcross {
		t.Errorf("expected vertical-across to win, got %v (ok=%v)", best.Orientation, ok)
	}

	c.Candidates[1].Result = feasible(100)
	best, _ = c.Best()
	if best.Orientation != OrientationHorizontalAcross {
		t.Error("ties should go to the first candidate")
	}

	c.Candidates[0].Result = NewInfeasibleResult(45, 0, 50)
	best, _ = c.Best()
	if best.Orientation != OrientationVerticalAcross {
		t.Error("infeasible candidate must never be chosen")
	}

	c.Candidates[1].Result = NewInfeasibleResult(45, 0, 50)
	if _, ok := c.Best(); ok {
		t.Error("expected no best candidate when both are infeasible")
	}
}

func TestPieceTableExpand(t *testing.T) {
	table := PieceTable{Pieces: []PieceSpec{
		NewPieceSpec("Seat", 69, 36, 1),
		NewPieceSpec("Arm", 36, 44, 3),
	}}

	h, v, refs := table.Expand(2)

	if len(h) != 4 || len(v) != 4 || len(refs) != 4 {
		t.Fatalf("expected 4 expanded pieces, got %d/%d/%d", len(h), len(v), len(refs))
	}
	if h[0] != 71 || v[0] != 38 {
		t.Errorf("expected allowance added to seat, got %v x %v", h[0], v[0])
	}
	if refs[3].Spec != 1 || refs[3].Copy != 2 || refs[3].Label != "Arm" {
		t.Errorf("unexpected ref for last copy: %+v", refs[3])
	}
	if table.Count() != 4 {
		t.Errorf("expected Count 4, got %d", table.Count())
	}
}

func TestPieceTableValidate(t *testing.T) {
	ok := PieceTable{Pieces: []PieceSpec{NewPieceSpec("A", 10, 10, 1)}}
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	zeroQty := PieceTable{Pieces: []PieceSpec{NewPieceSpec("A", 10, 10, 0)}}
	if err := zeroQty.Validate(); err == nil {
		t.Error("expected error for zero quantity")
	}

	negative := PieceTable{Pieces: []PieceSpec{NewPieceSpec("A", -1, 10, 1)}}
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestNewPieceTableMismatch(t *testing.T) {
	if _, err := NewPieceTable("x", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched slices")
	}
	table, err := NewPieceTable("x", []float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Pieces[1].Label != "Piece 2" || table.Pieces[1].Vertical != 4 {
		t.Errorf("unexpected second piece: %+v", table.Pieces[1])
	}
}

func TestAppConfigAddRecentFile(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentFile("a.csv")
	cfg.AddRecentFile("b.csv")
	cfg.AddRecentFile("a.csv")

	if len(cfg.RecentFiles) != 2 || cfg.RecentFiles[0] != "a.csv" || cfg.RecentFiles[1] != "b.csv" {
		t.Errorf("unexpected recent files: %v", cfg.RecentFiles)
	}

	for i := 0; i < 15; i++ {
		cfg.AddRecentFile(string(rune('c' + i)))
	}
	if len(cfg.RecentFiles) != 10 {
		t.Errorf("expected recent list capped at 10, got %d", len(cfg.RecentFiles))
	}
}
