// Package suite sequences PARSEC benchmark runs through the external
// benchmark-manager binary.
package suite

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/parsecbench/parsecbench/pkg/semconv"
)

// Programs is the fixed ordered PARSEC suite run by default.
var Programs = []string{
	"blackscholes",
	"bodytrack",
	"canneal",
	"dedup",
	"facesim",
	"ferret",
	"fluidanimate",
	"freqmine",
	"raytrace",
	"streamcluster",
	"swaptions",
	"vips",
	"x264",
}

// resultPrefix tags manager result names so foreign result sets stay apart.
const resultPrefix = "parsec-"

// Known reports whether program is part of the PARSEC suite.
func Known(program string) bool {
	for _, p := range Programs {
		if p == program {
			return true
		}
	}
	return false
}

// Options parameterizes one suite run. Zero thread bounds mean the manager's
// own defaults.
type Options struct {
	ManagerBin   string
	BootScript   string
	Runs         int
	DisableSMT   bool
	CapturePerf  bool
	MinThreads   int
	MaxThreads   int
	ArtifactsDir string
}

// CommandRunner executes one external invocation. Injectable for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Runner drives the benchmark-manager binary across the program list,
// sequentially and fail-fast.
type Runner struct {
	opts   Options
	run    CommandRunner
	tracer trace.Tracer

	// Observe, when set, receives the wall-clock duration of every completed
	// program invocation.
	Observe func(program string, seconds float64)
}

// NewRunner builds a runner that executes the manager binary directly.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:   opts,
		run:    execCommand,
		tracer: otel.Tracer("parsecbench/suite"),
	}
}

// NewRunnerWithCommand builds a runner with an injected command executor.
func NewRunnerWithCommand(opts Options, run CommandRunner) *Runner {
	r := NewRunner(opts)
	r.run = run
	return r
}

// Args assembles the manager invocation for one program.
func (r *Runner) Args(program string) []string {
	args := []string{
		"--name", resultPrefix + program,
		"--runs", strconv.Itoa(r.opts.Runs),
		"--boot-script", r.opts.BootScript,
	}
	if r.opts.DisableSMT {
		args = append(args, "--no-smt")
	}
	if r.opts.CapturePerf {
		args = append(args, "--perf")
	}
	if r.opts.MinThreads > 0 {
		args = append(args, "--min-threads", strconv.Itoa(r.opts.MinThreads))
	}
	if r.opts.MaxThreads > 0 {
		args = append(args, "--max-threads", strconv.Itoa(r.opts.MaxThreads))
	}
	return args
}

type summaryRow struct {
	program string
	seconds float64
}

// Run invokes the manager once per program, in order. The first failure stops
// the run; a run_summary.csv artifact is written only after full success.
func (r *Runner) Run(ctx context.Context, programs []string) error {
	if len(programs) == 0 {
		programs = Programs
	}

	rows := make([]summaryRow, 0, len(programs))
	for _, program := range programs {
		seconds, err := r.runProgram(ctx, program)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", program, err)
		}
		rows = append(rows, summaryRow{program: program, seconds: seconds})
	}

	if r.opts.ArtifactsDir != "" {
		if err := writeSummary(filepath.Join(r.opts.ArtifactsDir, "run_summary.csv"), rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runProgram(ctx context.Context, program string) (float64, error) {
	ctx, span := r.tracer.Start(ctx, "suite.program",
		trace.WithAttributes(
			attribute.String(semconv.AttrProgram, program),
			attribute.Int(semconv.AttrRuns, r.opts.Runs),
			attribute.String(semconv.AttrBootScript, r.opts.BootScript),
			attribute.Bool(semconv.AttrDisableSMT, r.opts.DisableSMT),
			attribute.Bool(semconv.AttrCapturePerf, r.opts.CapturePerf),
			attribute.Int(semconv.AttrThreadsMin, r.opts.MinThreads),
			attribute.Int(semconv.AttrThreadsMax, r.opts.MaxThreads),
		),
	)
	defer span.End()

	log.Printf("running %s (%d runs)", program, r.opts.Runs)
	start := time.Now()
	err := r.run(ctx, r.opts.ManagerBin, r.Args(program)...)
	seconds := time.Since(start).Seconds()
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	span.SetAttributes(attribute.Float64(semconv.AttrElapsedSeconds, seconds))
	if r.Observe != nil {
		r.Observe(program, seconds)
	}
	return seconds, nil
}

func writeSummary(path string, rows []summaryRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifacts directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create run summary: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"program", "status", "elapsed_seconds"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.program, "ok", strconv.FormatFloat(row.seconds, 'f', 3, 64)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func execCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
