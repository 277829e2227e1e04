package project

import (
	"fmt"

	"github.com/piwi3910/YardCut/internal/model"
)

// builtinSpec is a cut list measured in inches, before seam allowance.
type builtinSpec struct {
	name        string
	description string
	horizontal  []float64
	vertical    []float64
}

var builtinSpecs = []builtinSpec{
	{
		name:        "couch-1",
		description: "Sofa reupholstery, first measurement set",
		horizontal:  []float64{69, 90, 27, 59, 151, 36, 36, 36, 42},
		vertical:    []float64{36, 36, 56, 31, 15, 44, 44, 44, 49},
	},
	{
		name:        "couch-2",
		description: "Sofa reupholstery with a wider arm panel",
		horizontal:  []float64{69, 90, 27, 86, 151, 36, 36, 36, 42},
		vertical:    []float64{36, 36, 25, 31, 15, 44, 44, 44, 49},
	},
	{
		name:        "couch-3",
		description: "Sofa reupholstery with the front band split in four",
		horizontal:  []float64{69, 90, 27, 59, 27, 26, 58, 40, 36, 36, 36, 42},
		vertical:    []float64{36, 36, 56, 31, 15, 15, 15, 15, 44, 44, 44, 49},
	},
	{
		name:        "bikes",
		description: "Single bike cover panel",
		horizontal:  []float64{102},
		vertical:    []float64{138},
	},
}

// Builtins returns the datasets shipped with the tool. They are rebuilt on
// every call so callers may modify the result freely.
func Builtins() []model.Dataset {
	out := make([]model.Dataset, 0, len(builtinSpecs))
	for _, b := range builtinSpecs {
		table, err := model.NewPieceTable(b.name, b.horizontal, b.vertical)
		if err != nil {
			panic(fmt.Sprintf("builtin dataset %s: %v", b.name, err))
		}
		d := model.NewDataset(b.name, b.description, table)
		d.ID = "builtin-" + b.name
		d.CreatedAt, d.UpdatedAt = "", ""
		d.Builtin = true
		out = append(out, d)
	}
	return out
}

// IsBuiltin reports whether name belongs to a shipped dataset.
func IsBuiltin(name string) bool {
	for _, b := range builtinSpecs {
		if b.name == name {
			return true
		}
	}
	return false
}
