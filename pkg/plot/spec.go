// Package plot assembles gnuplot scripts that compare averaged benchmark
// result series, either on shared axes or as a normalized shape-comparison
// overlay, and invokes gnuplot to render them.
package plot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/parsecbench/parsecbench/pkg/results"
)

// Palette is the fixed color order for scaled mode, one color per series.
var Palette = []string{
	"#ff0000",
	"#ffa500",
	"#ffff00",
	"#008000",
	"#0000ff",
	"#4b0082",
	"#ee82ee",
}

// ErrNoInput is returned when a diagram is requested without result files.
var ErrNoInput = errors.New("no result files given")

// FormatError reports an output path whose extension selects no known
// gnuplot terminal.
type FormatError struct {
	Output string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (supported: .png, .svg)", e.Output)
}

// TooManySeriesError reports more scaled-mode inputs than palette colors.
type TooManySeriesError struct {
	Count int
}

func (e *TooManySeriesError) Error() string {
	return fmt.Sprintf("scaled mode supports at most %d result files, got %d", len(Palette), e.Count)
}

// Series is one line of a diagram.
type Series struct {
	Label  string
	Color  string
	Points results.AveragedSeries

	// DataFile is the materialized two-column temp file gnuplot reads.
	// Set by WriteDataFiles.
	DataFile string
}

// Spec describes a complete diagram. Built once, never mutated afterwards;
// Script serializes it for gnuplot.
type Spec struct {
	Series   []Series
	Scaled   bool
	Output   string
	Terminal string

	// Shared x-range across all series, spanning the global thread-count
	// extremes. Only meaningful in scaled mode.
	XMin int
	XMax int
}

// Options controls diagram assembly.
type Options struct {
	Scaled       bool
	Output       string
	DirQualified bool
}

// TerminalFor maps an output path to a gnuplot terminal. An empty path selects
// the interactive terminal. The extension match is case-insensitive.
func TerminalFor(output string) (string, error) {
	if output == "" {
		return "qt", nil
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".png":
		return "pngcairo", nil
	case ".svg":
		return "svg", nil
	default:
		return "", &FormatError{Output: output}
	}
}

// DeriveTitle turns a result file path into its legend label: base name without
// the .csv suffix, optionally qualified with the parent directory name.
func DeriveTitle(path string, withDir bool) string {
	title := strings.TrimSuffix(filepath.Base(path), ".csv")
	if withDir {
		if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
			title = dir + "/" + title
		}
	}
	return title
}

// Build validates the inputs and assembles a Spec. The output format and the
// series count are checked before any file is opened; all headers are checked
// before any file is aggregated.
func Build(paths []string, opts Options) (*Spec, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	terminal, err := TerminalFor(opts.Output)
	if err != nil {
		return nil, err
	}
	if opts.Scaled && len(paths) > len(Palette) {
		return nil, &TooManySeriesError{Count: len(paths)}
	}
	if err := results.ValidateHeaders(paths); err != nil {
		return nil, err
	}

	spec := &Spec{
		Scaled:   opts.Scaled,
		Output:   opts.Output,
		Terminal: terminal,
	}
	for i, path := range paths {
		series, err := results.LoadAveraged(path)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			return nil, fmt.Errorf("%s: no data rows", path)
		}
		s := Series{
			Label:  DeriveTitle(path, opts.DirQualified),
			Points: series,
		}
		if opts.Scaled {
			s.Color = Palette[i]
		}
		spec.Series = append(spec.Series, s)
	}
	spec.XMin, spec.XMax = threadRange(spec.Series)
	return spec, nil
}

func threadRange(series []Series) (int, int) {
	min, max := 0, 0
	first := true
	for _, s := range series {
		for _, p := range s.Points {
			if first || p.Threads < min {
				min = p.Threads
			}
			if first || p.Threads > max {
				max = p.Threads
			}
			first = false
		}
	}
	return min, max
}
