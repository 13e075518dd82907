// Package results reads benchmark result CSV files and reduces them to
// per-thread-count average run times.
package results

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Header is the exact first line every result file must carry.
const Header = "threads,run,run_time"

// Row is one measurement from a result file.
type Row struct {
	Threads int
	Run     int
	RunTime float64
}

// Point is one averaged entry of a series.
type Point struct {
	Threads int
	Mean    float64
}

// AveragedSeries holds per-thread-count mean run times, ascending by threads.
type AveragedSeries []Point

// ParseError describes a malformed data row. Malformed rows are fatal, never
// skipped, so a broken file cannot silently distort a comparison.
type ParseError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: malformed result row %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HeaderError reports a result file whose first line is not the expected header.
type HeaderError struct {
	File  string
	Found string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: unexpected header %q (want %q)", e.File, e.Found, Header)
}

// ValidateHeader reads only the first line of path and checks it against Header.
func ValidateHeader(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open result file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read header of %s: %w", path, err)
		}
		return &HeaderError{File: path, Found: ""}
	}
	if line := scanner.Text(); line != Header {
		return &HeaderError{File: path, Found: line}
	}
	return nil
}

// ValidateHeaders checks every file in order and fails on the first mismatch,
// before any aggregation or rendering has started.
func ValidateHeaders(paths []string) error {
	for _, path := range paths {
		if err := ValidateHeader(path); err != nil {
			return err
		}
	}
	return nil
}

// ReadAveraged consumes a result stream whose header was already validated and
// returns the averaged series. name labels parse errors.
func ReadAveraged(r io.Reader, name string) (AveragedSeries, error) {
	samples := make(map[int][]float64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, &ParseError{File: name, Line: lineNo, Text: line, Err: err}
		}
		samples[row.Threads] = append(samples[row.Threads], row.RunTime)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	threads := make([]int, 0, len(samples))
	for t := range samples {
		threads = append(threads, t)
	}
	sort.Ints(threads)

	series := make(AveragedSeries, 0, len(threads))
	for _, t := range threads {
		values := samples[t]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		series = append(series, Point{Threads: t, Mean: sum / float64(len(values))})
	}
	return series, nil
}

// LoadAveraged opens path and averages its rows. The header must have been
// validated beforehand; the first line is skipped unconditionally here.
func LoadAveraged(path string) (AveragedSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer file.Close()
	return ReadAveraged(file, path)
}

func parseRow(line string) (Row, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Row{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	threads, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Row{}, fmt.Errorf("thread count: %w", err)
	}
	if threads <= 0 {
		return Row{}, fmt.Errorf("thread count must be positive, got %d", threads)
	}
	run, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Row{}, fmt.Errorf("run index: %w", err)
	}
	runTime, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("run time: %w", err)
	}
	return Row{Threads: threads, Run: run, RunTime: runTime}, nil
}
