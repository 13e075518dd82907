package results

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadAveraged(t *testing.T) {
	t.Parallel()

	input := "threads,run,run_time\n2,0,1.5\n2,1,2.5\n4,0,3.0\n"
	series, err := ReadAveraged(strings.NewReader(input), "bodytrack.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := AveragedSeries{{Threads: 2, Mean: 2.0}, {Threads: 4, Mean: 3.0}}
	if len(series) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(series))
	}
	for i, p := range want {
		if series[i].Threads != p.Threads || math.Abs(series[i].Mean-p.Mean) > 1e-12 {
			t.Fatalf("point %d: expected %+v, got %+v", i, p, series[i])
		}
	}
}

func TestReadAveragedRowOrderIrrelevant(t *testing.T) {
	t.Parallel()

	a := "threads,run,run_time\n2,0,1.0\n8,0,5.0\n2,1,3.0\n8,1,7.0\n"
	b := "threads,run,run_time\n8,1,7.0\n2,1,3.0\n8,0,5.0\n2,0,1.0\n"

	seriesA, err := ReadAveraged(strings.NewReader(a), "a.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seriesB, err := ReadAveraged(strings.NewReader(b), "b.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seriesA) != len(seriesB) {
		t.Fatalf("length mismatch: %d vs %d", len(seriesA), len(seriesB))
	}
	for i := range seriesA {
		if seriesA[i] != seriesB[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, seriesA[i], seriesB[i])
		}
	}
}

func TestReadAveragedIdempotent(t *testing.T) {
	t.Parallel()

	input := "threads,run,run_time\n1,0,0.5\n2,0,1.25\n2,1,1.75\n"
	first, err := ReadAveraged(strings.NewReader(input), "x.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ReadAveraged(strings.NewReader(input), "x.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestReadAveragedMalformedRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "too few fields", input: "threads,run,run_time\n2,1.5\n", line: 2},
		{name: "too many fields", input: "threads,run,run_time\n2,0,1.5,9\n", line: 2},
		{name: "non-numeric threads", input: "threads,run,run_time\nfour,0,1.5\n", line: 2},
		{name: "non-numeric time", input: "threads,run,run_time\n2,0,fast\n", line: 2},
		{name: "zero threads", input: "threads,run,run_time\n0,0,1.5\n", line: 2},
		{name: "later row", input: "threads,run,run_time\n2,0,1.5\n4,0,broken\n", line: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadAveraged(strings.NewReader(tt.input), "bad.csv")
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Line != tt.line {
				t.Fatalf("expected error on line %d, got %d", tt.line, parseErr.Line)
			}
			if parseErr.File != "bad.csv" {
				t.Fatalf("expected file name in error, got %q", parseErr.File)
			}
		})
	}
}

func TestReadAveragedSkipsBlankLines(t *testing.T) {
	t.Parallel()

	input := "threads,run,run_time\n2,0,1.0\n\n2,1,3.0\n"
	series, err := ReadAveraged(strings.NewReader(input), "blank.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 || series[0].Mean != 2.0 {
		t.Fatalf("unexpected series: %+v", series)
	}
}

func TestValidateHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "exact", content: "threads,run,run_time\n2,0,1.5\n"},
		{name: "case differs", content: "Threads,run,run_time\n", wantErr: true},
		{name: "extra column", content: "threads,run,run_time,host\n", wantErr: true},
		{name: "trailing space", content: "threads,run,run_time \n", wantErr: true},
		{name: "empty file", content: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "results.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			err := ValidateHeader(path)
			if tt.wantErr {
				var headerErr *HeaderError
				if !errors.As(err, &headerErr) {
					t.Fatalf("expected HeaderError, got %v", err)
				}
				if headerErr.File != path {
					t.Fatalf("expected file %q in error, got %q", path, headerErr.File)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateHeadersStopsAtFirstBadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(good, []byte("threads,run,run_time\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(bad, []byte("time,run,threads\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := ValidateHeaders([]string{good, bad})
	var headerErr *HeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected HeaderError, got %v", err)
	}
	if headerErr.File != bad {
		t.Fatalf("expected %q named in error, got %q", bad, headerErr.File)
	}
	if headerErr.Found != "time,run,threads" {
		t.Fatalf("expected found header in error, got %q", headerErr.Found)
	}
}

func TestLoadAveraged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "swaptions.csv")
	content := "threads,run,run_time\n1,0,10.0\n1,1,12.0\n2,0,6.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	series, err := LoadAveraged(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Threads != 1 || series[0].Mean != 11.0 {
		t.Fatalf("unexpected first point: %+v", series[0])
	}
}
