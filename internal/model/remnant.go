package model

import "sort"

// Remnant is a rectangular area of fabric inside the packed length that no
// piece covers.
type Remnant struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Row    int     `json:"row"` // Row the remnant belongs to
}

// Area returns the area of the remnant.
func (r Remnant) Area() float64 {
	return r.Width * r.Height
}

// DetectRemnants lists the leftover areas of a layout: the strip to the
// right of each row's last piece and the gap under each piece shorter than
// its row. Areas with a side below minSide are treated as waste and dropped.
func DetectRemnants(r PackResult, minSide float64) []Remnant {
	if !r.Feasible() {
		return nil
	}

	var remnants []Remnant
	keep := func(rem Remnant) {
		if rem.Width > 0 && rem.Height > 0 && rem.Width >= minSide && rem.Height >= minSide {
			remnants = append(remnants, rem)
		}
	}

	for ri, row := range r.Rows {
		// Right strip: full row height past the last piece
		keep(Remnant{
			X:      row.UsedWidth,
			Y:      row.Y,
			Width:  r.ContainerWidth - row.UsedWidth,
			Height: row.Height,
			Row:    ri,
		})

		// Gaps under pieces shorter than the row
		for _, pi := range row.Placements {
			if pi < 0 || pi >= len(r.Placements) {
				continue
			}
			p := r.Placements[pi]
			keep(Remnant{
				X:      p.X,
				Y:      p.Bottom(),
				Width:  p.Width,
				Height: row.Height - p.Height,
				Row:    ri,
			})
		}
	}

	// Largest first
	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].Area() > remnants[j].Area()
	})
	return remnants
}

// TotalRemnantArea returns the summed area of the remnants.
func TotalRemnantArea(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Area()
	}
	return total
}
