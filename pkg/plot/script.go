package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// keyOffset is the vertical gap between stacked legend entries in scaled mode,
// in screen coordinates.
const keyOffset = 0.04

// WriteDataFiles materializes every series as a two-column threads,mean file
// under dir and records the paths in the spec. The files live for one renderer
// invocation only.
func (s *Spec) WriteDataFiles(dir string) error {
	for i := range s.Series {
		path := filepath.Join(dir, fmt.Sprintf("series-%d.dat", i))
		var b strings.Builder
		for _, p := range s.Series[i].Points {
			fmt.Fprintf(&b, "%d,%g\n", p.Threads, p.Mean)
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("write data file: %w", err)
		}
		s.Series[i].DataFile = path
	}
	return nil
}

// Script serializes the spec into a gnuplot script. Standard mode emits one
// combined multi-series plot command; scaled mode layers one single-series
// plot per file onto a multiplot canvas so every series gets a private
// autoscaled y-axis while sharing the x-range.
func (s *Spec) Script() string {
	var b strings.Builder

	fmt.Fprintf(&b, "set datafile separator \",\"\n")
	fmt.Fprintf(&b, "set terminal %s\n", s.Terminal)
	if s.Output != "" {
		fmt.Fprintf(&b, "set output %q\n", s.Output)
	}
	fmt.Fprintf(&b, "set xlabel \"threads\"\n")
	fmt.Fprintf(&b, "set key noenhanced\n")

	if s.Scaled {
		s.writeScaled(&b)
	} else {
		s.writeStandard(&b)
	}

	if s.Output == "" {
		fmt.Fprintf(&b, "pause mouse\n")
	}
	return b.String()
}

func (s *Spec) writeStandard(b *strings.Builder) {
	fmt.Fprintf(b, "set ylabel \"time (s)\"\n")
	fmt.Fprintf(b, "plot ")
	for i, series := range s.Series {
		if i > 0 {
			fmt.Fprintf(b, ", \\\n     ")
		}
		fmt.Fprintf(b, "%q using 1:2 title %q with linespoints", series.DataFile, series.Label)
	}
	fmt.Fprintf(b, "\n")
}

func (s *Spec) writeScaled(b *strings.Builder) {
	fmt.Fprintf(b, "set ylabel \"time\"\n")
	fmt.Fprintf(b, "unset ytics\n")
	fmt.Fprintf(b, "set xrange [%d:%d]\n", s.XMin, s.XMax)
	fmt.Fprintf(b, "set multiplot\n")
	for i, series := range s.Series {
		fmt.Fprintf(b, "set key at screen 0.95, screen %.2f\n", 0.90-float64(i)*keyOffset)
		fmt.Fprintf(b, "plot %q using 1:2 title %q with linespoints linecolor rgb %q\n",
			series.DataFile, series.Label, series.Color)
	}
	fmt.Fprintf(b, "unset multiplot\n")
}
