package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PieceSpec is one row of a cut list. Horizontal is the dimension laid
// across the fabric width in the default orientation; Vertical runs along
// the length.
type PieceSpec struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Quantity   int     `json:"quantity"`
}

func NewPieceSpec(label string, horizontal, vertical float64, qty int) PieceSpec {
	return PieceSpec{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Horizontal: horizontal,
		Vertical:   vertical,
		Quantity:   qty,
	}
}

// PieceTable is an ordered cut list.
type PieceTable struct {
	Name   string      `json:"name"`
	Pieces []PieceSpec `json:"pieces"`
}

// NewPieceTable builds a table from parallel horizontal/vertical slices,
// one piece per entry, labelled by position.
func NewPieceTable(name string, horizontal, vertical []float64) (PieceTable, error) {
	if len(horizontal) != len(vertical) {
		return PieceTable{}, fmt.Errorf("horizontal has %d entries, vertical has %d", len(horizontal), len(vertical))
	}
	t := PieceTable{Name: name, Pieces: make([]PieceSpec, 0, len(horizontal))}
	for i := range horizontal {
		t.Pieces = append(t.Pieces, NewPieceSpec(fmt.Sprintf("Piece %d", i+1), horizontal[i], vertical[i], 1))
	}
	return t, nil
}

// PieceRef maps an expanded piece index back to its cut-list row.
type PieceRef struct {
	Spec  int    `json:"spec"` // Index into PieceTable.Pieces
	Copy  int    `json:"copy"` // 0-based copy number when Quantity > 1
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Count returns the number of pieces after quantity expansion.
func (t PieceTable) Count() int {
	n := 0
	for _, p := range t.Pieces {
		if p.Quantity > 0 {
			n += p.Quantity
		}
	}
	return n
}

// Validate checks that every row can be expanded into packer input.
func (t PieceTable) Validate() error {
	for i, p := range t.Pieces {
		if p.Quantity <= 0 {
			return fmt.Errorf("piece %d (%s): quantity must be positive, got %d", i+1, p.Label, p.Quantity)
		}
		if p.Horizontal < 0 || p.Vertical < 0 {
			return fmt.Errorf("piece %d (%s): dimensions must not be negative", i+1, p.Label)
		}
	}
	return nil
}

// Expand flattens the table by quantity and adds allowance to both
// dimensions of every piece. The returned slices are index-aligned.
func (t PieceTable) Expand(allowance float64) (horizontal, vertical []float64, refs []PieceRef) {
	n := t.Count()
	horizontal = make([]float64, 0, n)
	vertical = make([]float64, 0, n)
	refs = make([]PieceRef, 0, n)
	for i, p := range t.Pieces {
		for c := 0; c < p.Quantity; c++ {
			horizontal = append(horizontal, p.Horizontal+allowance)
			vertical = append(vertical, p.Vertical+allowance)
			refs = append(refs, PieceRef{Spec: i, Copy: c, ID: p.ID, Label: p.Label})
		}
	}
	return horizontal, vertical, refs
}

func copyPieces(pieces []PieceSpec) []PieceSpec {
	if pieces == nil {
		return []PieceSpec{}
	}
	out := make([]PieceSpec, len(pieces))
	copy(out, pieces)
	return out
}
