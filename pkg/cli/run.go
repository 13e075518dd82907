package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parsecbench/parsecbench/pkg/harnesscfg"
	"github.com/parsecbench/parsecbench/pkg/manifest"
	"github.com/parsecbench/parsecbench/pkg/metrics"
	"github.com/parsecbench/parsecbench/pkg/suite"
	"github.com/parsecbench/parsecbench/pkg/tracing"
)

var (
	runsOverride       int
	bootScriptOverride string
	managerOverride    string
	noSMT              bool
	capturePerf        bool
	minThreads         int
	maxThreads         int
	programsOverride   []string
	manifestPath       string
	pushMetrics        bool
	traceRuns          bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the PARSEC suite in fresh virtual machines",
	Long: `Runs every benchmark program of the suite, in order, by invoking the external
benchmark manager once per program. Each invocation boots a VM via the
configured boot script and sweeps the configured thread counts; the manager
writes one threads,run,run_time CSV per program.`,
	Example: `  # Full suite with config defaults
  parsecbench run

  # Ten repetitions, SMT disabled, bounded thread sweep
  parsecbench run --runs 10 --no-smt --min-threads 2 --max-threads 32

  # A named subset defined in a manifest
  parsecbench run --manifest suites/smoke.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunOverrides(&cfg)

		programs := cfg.Programs
		if manifestPath != "" {
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			programs = m.Programs
		}
		if len(programsOverride) > 0 {
			for _, p := range programsOverride {
				if !suite.Known(p) {
					return fmt.Errorf("unknown program %q", p)
				}
			}
			programs = programsOverride
		}

		ctx := cmd.Context()
		if traceRuns || cfg.Tracing.OTLPEndpoint != "" {
			shutdown, err := tracing.Setup(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}

		if pushMetrics && cfg.Pushgateway.URL == "" {
			return fmt.Errorf("--push requires pushgateway.url in the config")
		}

		recorder := metrics.NewRecorder()
		runner := suite.NewRunner(suite.Options{
			ManagerBin:   cfg.Manager.Bin,
			BootScript:   cfg.VM.BootScript,
			Runs:         cfg.Runs,
			DisableSMT:   cfg.DisableSMT,
			CapturePerf:  cfg.CapturePerf,
			MinThreads:   cfg.Threads.Min,
			MaxThreads:   cfg.Threads.Max,
			ArtifactsDir: cfg.Artifacts.Dir,
		})
		runner.Observe = recorder.ObserveRun

		if err := runner.Run(ctx, programs); err != nil {
			return err
		}
		if pushMetrics {
			return recorder.Push(cfg.Pushgateway.URL, cfg.Pushgateway.Job)
		}
		return nil
	},
}

func applyRunOverrides(cfg *harnesscfg.Config) {
	if runsOverride > 0 {
		cfg.Runs = runsOverride
	}
	if bootScriptOverride != "" {
		cfg.VM.BootScript = bootScriptOverride
	}
	if managerOverride != "" {
		cfg.Manager.Bin = managerOverride
	}
	if noSMT {
		cfg.DisableSMT = true
	}
	if capturePerf {
		cfg.CapturePerf = true
	}
	if minThreads > 0 {
		cfg.Threads.Min = minThreads
	}
	if maxThreads > 0 {
		cfg.Threads.Max = maxThreads
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runsOverride, "runs", 0, "number of runs per program and thread count")
	runCmd.Flags().StringVar(&bootScriptOverride, "boot-script", "", "VM boot script handed to the manager")
	runCmd.Flags().StringVar(&managerOverride, "manager", "", "benchmark-manager binary")
	runCmd.Flags().BoolVar(&noSMT, "no-smt", false, "disable simultaneous multithreading for the sweep")
	runCmd.Flags().BoolVar(&capturePerf, "perf", false, "capture performance counters during runs")
	runCmd.Flags().IntVar(&minThreads, "min-threads", 0, "lower bound of the thread-count sweep")
	runCmd.Flags().IntVar(&maxThreads, "max-threads", 0, "upper bound of the thread-count sweep")
	runCmd.Flags().StringSliceVar(&programsOverride, "programs", nil, "comma-separated subset of suite programs")
	runCmd.Flags().StringVar(&manifestPath, "manifest", "", "JSON suite manifest selecting the programs to run")
	runCmd.Flags().BoolVar(&pushMetrics, "push", false, "push run metrics to the configured Pushgateway")
	runCmd.Flags().BoolVar(&traceRuns, "trace", false, "emit one trace span per program invocation")
}
