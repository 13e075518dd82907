// Package harnesscfg loads the harness configuration file.
package harnesscfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors config/harness.yaml.
type Config struct {
	APIVersion  string            `yaml:"apiVersion"`
	Kind        string            `yaml:"kind"`
	Manager     ManagerConfig     `yaml:"manager"`
	VM          VMConfig          `yaml:"vm"`
	Runs        int               `yaml:"runs"`
	Threads     ThreadConfig      `yaml:"threads"`
	Programs    []string          `yaml:"programs"`
	DisableSMT  bool              `yaml:"disable_smt"`
	CapturePerf bool              `yaml:"capture_perf"`
	Artifacts   ArtifactsConfig   `yaml:"artifacts"`
	Pushgateway PushgatewayConfig `yaml:"pushgateway"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

// ManagerConfig locates the external benchmark-manager binary.
type ManagerConfig struct {
	Bin string `yaml:"bin"`
}

// VMConfig locates the VM boot script handed to the manager.
type VMConfig struct {
	BootScript string `yaml:"boot_script"`
}

// ThreadConfig bounds the thread-count sweep. Zero means "manager default".
type ThreadConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ArtifactsConfig controls where run artifacts are written.
type ArtifactsConfig struct {
	Dir string `yaml:"dir"`
}

// PushgatewayConfig configures optional Prometheus pushes after a run.
type PushgatewayConfig struct {
	URL string `yaml:"url"`
	Job string `yaml:"job"`
}

// TracingConfig configures the optional OTLP trace export.
type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// Default returns v1 defaults.
func Default() Config {
	return Config{
		APIVersion: "parsecbench.dev/v1",
		Kind:       "HarnessConfig",
		Manager: ManagerConfig{
			Bin: "runbench",
		},
		VM: VMConfig{
			BootScript: "scripts/start_vm.sh",
		},
		Runs: 5,
		Threads: ThreadConfig{
			Min: 1,
		},
		Artifacts: ArtifactsConfig{
			Dir: "artifacts/runs",
		},
		Pushgateway: PushgatewayConfig{
			Job: "parsecbench",
		},
		Tracing: TracingConfig{
			ServiceName: "parsecbench",
		},
	}
}

// Load parses and normalizes a harness config file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	normalize(&cfg)
	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.Manager.Bin == "" {
		cfg.Manager.Bin = Default().Manager.Bin
	}
	if cfg.VM.BootScript == "" {
		cfg.VM.BootScript = Default().VM.BootScript
	}
	if cfg.Runs <= 0 {
		cfg.Runs = Default().Runs
	}
	if cfg.Threads.Min <= 0 {
		cfg.Threads.Min = Default().Threads.Min
	}
	if cfg.Threads.Max < 0 {
		cfg.Threads.Max = 0
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = Default().Artifacts.Dir
	}
	if cfg.Pushgateway.Job == "" {
		cfg.Pushgateway.Job = Default().Pushgateway.Job
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = Default().Tracing.ServiceName
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = Default().APIVersion
	}
	if cfg.Kind == "" {
		cfg.Kind = Default().Kind
	}
}
