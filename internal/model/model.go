package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Piece is one rectangle handed to the packer. Index is its position in
// the caller's input sequence and survives sorting.
type Piece struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Index  int     `json:"index"`
}

// PlacedPiece is a piece positioned on the fabric.
type PlacedPiece struct {
	X      float64 `json:"x"` // Offset across the fabric width
	Y      float64 `json:"y"` // Offset along the fabric length, 0 at the start of the cut
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Index  int     `json:"index"`
}

// Right returns the x coordinate of the piece's right edge.
func (p PlacedPiece) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the piece's far edge along the length.
func (p PlacedPiece) Bottom() float64 { return p.Y + p.Height }

// Area returns width * height.
func (p PlacedPiece) Area() float64 { return p.Width * p.Height }

// Overlaps reports whether two placed pieces share interior area.
// Touching edges do not count as overlap.
func (p PlacedPiece) Overlaps(o PlacedPiece) bool {
	return p.X < o.Right() && o.X < p.Right() &&
		p.Y < o.Bottom() && o.Y < p.Bottom()
}

// Row is one shelf of the strip layout.
type Row struct {
	Y          float64 `json:"y"`
	Height     float64 `json:"height"`      // Height of the tallest piece in the row
	UsedWidth  float64 `json:"used_width"`  // Sum of the widths placed in the row
	Placements []int   `json:"placements"` // Positions into PackResult.Placements
}

// Infeasibility describes why a layout could not be produced.
type Infeasibility struct {
	Index          int     `json:"index"` // First input piece that is wider than the fabric
	Width          float64 `json:"width"`
	ContainerWidth float64 `json:"container_width"`
}

func (i Infeasibility) String() string {
	return fmt.Sprintf("piece %d is %g wide, fabric is only %g wide", i.Index+1, i.Width, i.ContainerWidth)
}

// PackResult is the outcome of one strip-packing run.
//
// A nil Infeasible marks a usable layout. When Infeasible is set,
// TotalLength is NaN and there are no placements.
type PackResult struct {
	ContainerWidth float64        `json:"container_width"`
	TotalLength    float64        `json:"total_length"`
	Placements     []PlacedPiece  `json:"placements"`
	Rows           []Row          `json:"rows,omitempty"`
	Infeasible     *Infeasibility `json:"infeasible,omitempty"`
}

// NewInfeasibleResult builds the failure variant for an oversized piece.
func NewInfeasibleResult(containerWidth float64, index int, width float64) PackResult {
	return PackResult{
		ContainerWidth: containerWidth,
		TotalLength:    math.NaN(),
		Placements:     []PlacedPiece{},
		Infeasible: &Infeasibility{
			Index:          index,
			Width:          width,
			ContainerWidth: containerWidth,
		},
	}
}

// Feasible reports whether the result carries a layout.
func (r PackResult) Feasible() bool {
	return r.Infeasible == nil
}

// Length returns the total length and whether it is meaningful.
func (r PackResult) Length() (float64, bool) {
	if !r.Feasible() {
		return math.NaN(), false
	}
	return r.TotalLength, true
}

// UsedArea returns the area covered by pieces.
func (r PackResult) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Area()
	}
	return total
}

// TotalArea returns the area of fabric consumed.
func (r PackResult) TotalArea() float64 {
	if !r.Feasible() {
		return 0
	}
	return r.ContainerWidth * r.TotalLength
}

// Efficiency returns the usage percentage.
func (r PackResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return (r.UsedArea() / ta) * 100.0
}

// ByIndex returns the placements reordered to match the original input order.
func (r PackResult) ByIndex() []PlacedPiece {
	out := make([]PlacedPiece, len(r.Placements))
	for _, p := range r.Placements {
		if p.Index >= 0 && p.Index < len(out) {
			out[p.Index] = p
		}
	}
	return out
}

// packResultJSON is the wire form of PackResult. encoding/json cannot carry
// NaN, so an infeasible total length travels as null.
type packResultJSON struct {
	ContainerWidth float64        `json:"container_width"`
	TotalLength    *float64       `json:"total_length"`
	Placements     []PlacedPiece  `json:"placements"`
	Rows           []Row          `json:"rows,omitempty"`
	Infeasible     *Infeasibility `json:"infeasible,omitempty"`
}

func (r PackResult) MarshalJSON() ([]byte, error) {
	out := packResultJSON{
		ContainerWidth: r.ContainerWidth,
		Placements:     r.Placements,
		Rows:           r.Rows,
		Infeasible:     r.Infeasible,
	}
	if out.Placements == nil {
		out.Placements = []PlacedPiece{}
	}
	if l, ok := r.Length(); ok {
		out.TotalLength = &l
	}
	return json.Marshal(out)
}

func (r *PackResult) UnmarshalJSON(data []byte) error {
	var in packResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = PackResult{
		ContainerWidth: in.ContainerWidth,
		TotalLength:    math.NaN(),
		Placements:     in.Placements,
		Rows:           in.Rows,
		Infeasible:     in.Infeasible,
	}
	if in.TotalLength != nil && in.Infeasible == nil {
		r.TotalLength = *in.TotalLength
	}
	return nil
}
