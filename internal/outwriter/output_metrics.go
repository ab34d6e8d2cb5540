package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/courtside/watchdex/core/algo"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// WriteMetricsDefinitions displays the sub-index definitions that make up
// the watch index. This is a static display that needs no API access.
func WriteMetricsDefinitions(defs []algo.SubIndexDefinition, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "weight", "description", "inputs"}, func(csvWriter *csv.Writer) error {
				fmtFloat, _ := createFormatters(cfg.Precision)
				for _, d := range defs {
					rec := []string{
						d.Name,
						fmtFloat(d.Weight),
						d.Description,
						strings.Join(d.Inputs, "|"),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, defs)
		}, "Wrote text")
	}
}

// writeMetricsText displays definitions in human-readable text format.
func writeMetricsText(w io.Writer, defs []algo.SubIndexDefinition) error {
	if _, err := fmt.Fprintf(w, "🏀 Watch Index Sub-Indices\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "==========================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Watch index = weighted sum of sub-indices, each built from percentile ranks\n\n"); err != nil {
		return err
	}

	totalWeight := 0.0
	for _, d := range defs {
		totalWeight += d.Weight
	}

	for _, d := range defs {
		if _, err := fmt.Fprintf(w, "%s (weight %.1f): %s\n", strings.ToUpper(d.Name), d.Weight, d.Description); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Inputs: %s\n\n", strings.Join(d.Inputs, ", ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "All percentile ranks are relative to the selected batch of games.\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Composite divisor: %.1f\n", totalWeight); err != nil {
		return err
	}
	return nil
}
