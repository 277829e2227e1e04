package model

import "fmt"

// Orientation selects which piece dimension runs across the fabric width.
type Orientation int

const (
	// OrientationHorizontalAcross packs (horizontal, vertical) as (width, height).
	OrientationHorizontalAcross Orientation = iota
	// OrientationVerticalAcross packs (vertical, horizontal) as (width, height).
	OrientationVerticalAcross
)

// Orientations lists both candidates in reporting order.
var Orientations = []Orientation{OrientationHorizontalAcross, OrientationVerticalAcross}

func (o Orientation) String() string {
	switch o {
	case OrientationVerticalAcross:
		return "vertical along fabric width"
	default:
		return "horizontal along fabric width"
	}
}

// Title is the layout caption used on diagrams.
func (o Orientation) Title() string {
	switch o {
	case OrientationVerticalAcross:
		return "Vertical Along Width"
	default:
		return "Vertical Along Yardage"
	}
}

// Key is a short identifier safe for file names and machine output.
func (o Orientation) Key() string {
	switch o {
	case OrientationVerticalAcross:
		return "vertical"
	default:
		return "horizontal"
	}
}

// ParseOrientation accepts the values produced by Key.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return OrientationHorizontalAcross, nil
	case "vertical":
		return OrientationVerticalAcross, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.Key()), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Dimensions returns the packer's (widths, heights) for the orientation.
func (o Orientation) Dimensions(horizontal, vertical []float64) (widths, heights []float64) {
	if o == OrientationVerticalAcross {
		return vertical, horizontal
	}
	return horizontal, vertical
}

// OrientationResult is one packed candidate layout.
type OrientationResult struct {
	Orientation Orientation     `json:"orientation"`
	Result      PackResult      `json:"result"`
	Estimate    YardageEstimate `json:"estimate"`
	Remnants    []Remnant       `json:"remnants,omitempty"` // Reusable leftovers, largest first
}

// Comparison holds both orientation candidates for one fabric width.
type Comparison struct {
	RunID       string              `json:"run_id"`
	Dataset     string              `json:"dataset"`
	FabricWidth float64             `json:"fabric_width"`
	Unit        Unit                `json:"unit"`
	Pieces      []PieceRef          `json:"pieces"`
	Candidates  []OrientationResult `json:"candidates"`
}

// Best returns the feasible candidate with the shorter length. Ties go to
// the earlier candidate. ok is false when no candidate is feasible.
func (c Comparison) Best() (best OrientationResult, ok bool) {
	for _, cand := range c.Candidates {
		l, feasible := cand.Result.Length()
		if !feasible {
			continue
		}
		if !ok || l < best.Result.TotalLength {
			best, ok = cand, true
		}
	}
	return best, ok
}

// PieceLabel returns the display label for an expanded piece index.
func (c Comparison) PieceLabel(index int) string {
	if index >= 0 && index < len(c.Pieces) && c.Pieces[index].Label != "" {
		return c.Pieces[index].Label
	}
	return ""
}
