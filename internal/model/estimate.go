package model

import "math"

// YardageEstimate holds the purchase figures for one packed layout.
type YardageEstimate struct {
	Feasible       bool    `json:"feasible"`
	Length         float64 `json:"length"`          // Packed length in input units
	Amount         float64 `json:"amount"`          // Length in display units, rounded to 2 decimals
	DisplayUnit    string  `json:"display_unit"`    // "yds" or "m"
	WastePercent   float64 `json:"waste_percent"`   // Waste factor applied (e.g., 10 for 10%)
	PurchaseAmount float64 `json:"purchase_amount"` // Amount to buy, rounded up to the shop increment
	PricePerUnit   float64 `json:"price_per_unit"`
	EstimatedCost  float64 `json:"estimated_cost"`
	Efficiency     float64 `json:"efficiency"` // Percent of the consumed fabric covered by pieces
}

// EstimateYardage converts a pack result into buying figures.
// Infeasible results give a zero estimate with Feasible unset.
func EstimateYardage(r PackResult, s Settings) YardageEstimate {
	unit := s.Unit
	if !unit.Valid() {
		unit = UnitInches
	}
	est := YardageEstimate{
		DisplayUnit:  unit.DisplayUnit(),
		WastePercent: s.WastePercent,
		PricePerUnit: s.PricePerUnit,
	}
	length, ok := r.Length()
	if !ok {
		return est
	}

	exact := length / unit.PerDisplayUnit()
	est.Feasible = true
	est.Length = length
	est.Amount = RoundTo(exact, 2)
	est.Efficiency = r.Efficiency()

	// Apply waste factor, then round up to what a shop will actually cut.
	withWaste := exact * (1.0 + s.WastePercent/100.0)
	inc := unit.PurchaseIncrement()
	est.PurchaseAmount = RoundTo(math.Ceil(RoundTo(withWaste/inc, 9))*inc, 3)
	est.EstimatedCost = RoundTo(est.PurchaseAmount*s.PricePerUnit, 2)
	return est
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
