package model

// Unit is the linear unit piece dimensions and fabric widths are given in.
type Unit string

const (
	UnitInches      Unit = "in"
	UnitCentimeters Unit = "cm"
)

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	return u == UnitInches || u == UnitCentimeters
}

// DisplayUnit returns the unit fabric is sold in.
func (u Unit) DisplayUnit() string {
	if u == UnitCentimeters {
		return "m"
	}
	return "yds"
}

// PerDisplayUnit returns how many input units make one display unit.
func (u Unit) PerDisplayUnit() float64 {
	if u == UnitCentimeters {
		return 100
	}
	return 36
}

// PurchaseIncrement is the smallest amount of fabric a shop will cut,
// in display units.
func (u Unit) PurchaseIncrement() float64 {
	if u == UnitCentimeters {
		return 0.1
	}
	return 0.125
}

// Settings holds the knobs of a yardage calculation.
type Settings struct {
	FabricWidths  []float64 `json:"fabric_widths"`  // Widths tried when none is given
	SeamAllowance float64   `json:"seam_allowance"` // Added to both dimensions of every piece
	Unit          Unit      `json:"unit"`
	WastePercent  float64   `json:"waste_percent"`  // Extra fabric bought on top of the packed length
	PricePerUnit  float64   `json:"price_per_unit"` // Price per yard or metre, 0 if unknown
	MinRemnant    float64   `json:"min_remnant"`    // Smallest remnant side worth keeping
}

func DefaultSettings() Settings {
	return Settings{
		FabricWidths:  []float64{45, 56, 60, 98, 120},
		SeamAllowance: 2,
		Unit:          UnitInches,
		WastePercent:  0,
		PricePerUnit:  0,
		MinRemnant:    6,
	}
}

// AppConfig holds user preferences persisted between runs.
type AppConfig struct {
	Defaults     Settings `json:"defaults"`
	OutputFormat string   `json:"output_format"` // "text", "json" or "yaml"
	Workers      int      `json:"workers"`       // Batch concurrency, 0 = number of CPUs
	RecentFiles  []string `json:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with DefaultSettings.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Defaults:     DefaultSettings(),
		OutputFormat: "text",
		Workers:      0,
		RecentFiles:  []string{},
	}
}

// AddRecentFile records path at the front of the recent list, keeping at
// most ten entries and no duplicates.
func (c *AppConfig) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path && len(files) < 10 {
			files = append(files, f)
		}
	}
	c.RecentFiles = files
}
