// Package options holds the command line options of the yardcut CLI.
package options

import (
	"fmt"
	"math"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/piwi3910/YardCut/internal/model"
	"github.com/piwi3910/YardCut/internal/project"
	"github.com/piwi3910/YardCut/internal/report"
)

// Options contains the configuration shared by the yardcut commands.
// Values left unset on the command line fall back to the config file.
type Options struct {
	// ConfigPath is the YAML config file
	ConfigPath string
	// DatasetPath is the JSON dataset store
	DatasetPath string

	Datasets       []string
	Widths         []float64
	Allowance      float64
	Unit           string
	WastePercent   float64
	PricePerUnit   float64
	Output         string
	Workers        int
	ShowInfeasible bool
	ShowBest       bool
	NoColor        bool

	PDFPath    string
	PNGDir     string
	DXFDir     string
	XLSXPath   string
	LabelsPath string

	// Populated by Complete
	Config   model.AppConfig    `json:"-"`
	Store    model.DatasetStore `json:"-"`
	Settings model.Settings     `json:"-"`
	Format   report.Format      `json:"-"`
}

// NewOptions creates Options pointing at the default config locations.
func NewOptions() *Options {
	return &Options{
		ConfigPath:  project.DefaultConfigPath(),
		DatasetPath: project.DefaultDatasetPath(),
		Datasets:    []string{},
		Widths:      []float64{},
	}
}

// AddFlags adds the flags every command understands.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath,
		"Path to the YAML config file")
	fs.StringVar(&o.DatasetPath, "datasets-file", o.DatasetPath,
		"Path to the JSON dataset store")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor,
		"Disable colored terminal output")
}

// AddCalculationFlags adds the flags that control a yardage calculation.
func (o *Options) AddCalculationFlags(fs *pflag.FlagSet) {
	fs.Float64SliceVarP(&o.Widths, "width", "w", o.Widths,
		"Fabric width to try, repeatable. Defaults to the configured widths")
	fs.Float64Var(&o.Allowance, "allowance", o.Allowance,
		"Seam allowance added to both dimensions of every piece")
	fs.StringVar(&o.Unit, "unit", o.Unit,
		"Unit of the piece dimensions and widths (in or cm)")
	fs.Float64Var(&o.WastePercent, "waste", o.WastePercent,
		"Extra fabric to buy on top of the packed length, in percent")
	fs.Float64Var(&o.PricePerUnit, "price", o.PricePerUnit,
		"Fabric price per yard or metre")
	fs.StringVarP(&o.Output, "output", "o", o.Output,
		"Output format: text, json or yaml")
	fs.BoolVar(&o.ShowInfeasible, "show-infeasible", o.ShowInfeasible,
		"Also list orientations that do not fit")
	fs.BoolVar(&o.ShowBest, "best", o.ShowBest,
		"Print the recommended orientation for each width")
}

// AddExportFlags adds the output file flags.
func (o *Options) AddExportFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.PDFPath, "pdf", o.PDFPath, "Write layout diagrams to this PDF")
	fs.StringVar(&o.PNGDir, "png-dir", o.PNGDir, "Write one PNG per layout into this directory")
	fs.StringVar(&o.DXFDir, "dxf-dir", o.DXFDir, "Write one DXF per feasible layout into this directory")
	fs.StringVar(&o.XLSXPath, "xlsx", o.XLSXPath, "Write a cut report workbook to this file")
	fs.StringVar(&o.LabelsPath, "labels", o.LabelsPath, "Write piece labels for the best layouts to this PDF")
}

// AddBatchFlags adds the flags of the batch command.
func (o *Options) AddBatchFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&o.Datasets, "dataset", "d", o.Datasets,
		"Dataset to run, repeatable. Defaults to every stored dataset")
	fs.IntVar(&o.Workers, "workers", o.Workers,
		"Number of concurrent packers, 0 uses the configured value or all CPUs")
}

// Complete loads the config file and dataset store and merges the flags
// that were set on fs over the configured defaults.
func (o *Options) Complete(fs *pflag.FlagSet) error {
	config, err := project.LoadAppConfig(o.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", o.ConfigPath, err)
	}
	o.Config = config

	o.Store, err = project.LoadDatasets(o.DatasetPath)
	if err != nil {
		return fmt.Errorf("failed to load datasets %q: %w", o.DatasetPath, err)
	}

	s := config.Defaults
	s.FabricWidths = append([]float64(nil), s.FabricWidths...)
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("width") {
		s.FabricWidths = append([]float64(nil), o.Widths...)
	}
	if changed("allowance") {
		s.SeamAllowance = o.Allowance
	}
	if changed("unit") {
		s.Unit = model.Unit(o.Unit)
	}
	if changed("waste") {
		s.WastePercent = o.WastePercent
	}
	if changed("price") {
		s.PricePerUnit = o.PricePerUnit
	}
	o.Settings = s

	if !changed("workers") {
		o.Workers = config.Workers
	}

	output := o.Output
	if !changed("output") {
		output = config.OutputFormat
	}
	if output == "" {
		output = string(report.FormatText)
	}
	o.Format = report.Format(output)
	return nil
}

// Validate checks the completed options. All problems are reported
// together.
func (o *Options) Validate() error {
	var errs error
	if err := project.ValidateSettings(o.Settings); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, w := range o.Settings.FabricWidths {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			errs = multierr.Append(errs, fmt.Errorf("width must be finite, got %v", w))
		}
	}
	if _, err := report.ParseFormat(string(o.Format)); err != nil {
		errs = multierr.Append(errs, err)
	}
	if o.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("workers must not be negative, got %d", o.Workers))
	}
	for _, name := range o.Datasets {
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("dataset name cannot be empty"))
		}
	}
	return errs
}
