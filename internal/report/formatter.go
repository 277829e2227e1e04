// Package report renders yardage comparisons for the terminal and for
// machine consumption.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/piwi3910/YardCut/internal/model"
)

// Format specifies the output format of a report.
type Format string

const (
	// FormatText prints one line per feasible orientation, grouped by dataset.
	FormatText Format = "text"
	// FormatJSON emits the comparisons as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML emits the comparisons as YAML.
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q, expected one of %v", s, Formats)
}

// Formatter turns comparisons into report bytes.
type Formatter interface {
	Format(ctx context.Context, comparisons []model.Comparison, format Format) ([]byte, error)
}

// DefaultFormatter implements Formatter with a built-in text template.
type DefaultFormatter struct {
	// ShowInfeasible adds a line for orientations that do not fit.
	ShowInfeasible bool
	// ShowBest appends the recommended orientation after each width.
	ShowBest bool

	textTemplate *template.Template
}

const textReportTemplate = `{{- range .Entries}}
{{- if .Header}}{{.Dataset}}
{{end}}
{{- $w := .FabricWidth}}
{{- range .Candidates}}
{{- if .Estimate.Feasible}}{{.Orientation}}: {{num $w}} wide {{num .Estimate.Amount}} {{unitWord .Estimate.DisplayUnit}}
{{else if $.ShowInfeasible}}{{.Orientation}}: {{num $w}} wide does not fit ({{.Result.Infeasible}})
{{end}}
{{- end}}
{{- if $.ShowBest}}{{with .Recommended}}best at {{num $w}}: {{.Orientation}}, buy {{num .Estimate.PurchaseAmount}} {{.Estimate.DisplayUnit}}
{{end}}{{end}}
{{- end}}`

// NewDefaultFormatter creates a DefaultFormatter with the built-in template.
func NewDefaultFormatter() (*DefaultFormatter, error) {
	funcMap := template.FuncMap{
		"num":      func(v float64) string { return fmt.Sprintf("%g", v) },
		"unitWord": unitWord,
	}

	tmpl, err := template.New("text").Funcs(funcMap).Parse(textReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	return &DefaultFormatter{textTemplate: tmpl}, nil
}

func unitWord(displayUnit string) string {
	switch displayUnit {
	case "m":
		return "metres"
	default:
		return "yards"
	}
}

// Format renders the comparisons in the requested format.
func (f *DefaultFormatter) Format(ctx context.Context, comparisons []model.Comparison, format Format) ([]byte, error) {
	logger := klog.FromContext(ctx)
	logger.V(4).Info("Formatting report", "format", format, "comparisons", len(comparisons))

	switch format {
	case FormatJSON:
		return json.MarshalIndent(comparisons, "", "  ")
	case FormatYAML:
		return yaml.Marshal(comparisons)
	case FormatText:
		return f.formatText(comparisons)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// textEntry is one comparison as seen by the text template.
type textEntry struct {
	model.Comparison
	Header      bool
	Recommended *model.OrientationResult
}

func (f *DefaultFormatter) formatText(comparisons []model.Comparison) ([]byte, error) {
	entries := make([]textEntry, 0, len(comparisons))
	for i, c := range comparisons {
		e := textEntry{
			Comparison: c,
			Header:     i == 0 || comparisons[i-1].Dataset != c.Dataset,
		}
		if best, ok := c.Best(); ok {
			e.Recommended = &best
		}
		entries = append(entries, e)
	}

	data := struct {
		Entries        []textEntry
		ShowInfeasible bool
		ShowBest       bool
	}{entries, f.ShowInfeasible, f.ShowBest}

	var buf bytes.Buffer
	if err := f.textTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute text template: %w", err)
	}
	return buf.Bytes(), nil
}
