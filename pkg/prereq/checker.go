// Package prereq evaluates host prerequisites for VM benchmark runs and
// diagram rendering.
package prereq

import (
	"encoding/json"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const (
	severityBlocker = "blocker"
	severityWarning = "warning"
)

// CheckResult is one prerequisite evaluation row.
type CheckResult struct {
	Name        string `json:"name"`
	Pass        bool   `json:"pass"`
	Severity    string `json:"severity"`
	Current     string `json:"current"`
	Required    string `json:"required"`
	Remediation string `json:"remediation"`
}

// Report is the full prereq check result.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	HostOS      string        `json:"host_os"`
	HostArch    string        `json:"host_arch"`
	Checks      []CheckResult `json:"checks"`
	Pass        bool          `json:"pass"`
}

// Snapshot captures host facts before evaluation.
type Snapshot struct {
	HostOS       string
	HostArch     string
	HasKVM       bool
	HasQemu      bool
	HasGnuplot   bool
	HasManager   bool
	BootScriptOK bool
	IsRoot       bool
}

// CollectSnapshot gathers host facts for the configured manager binary and
// boot script.
func CollectSnapshot(managerBin string, bootScript string) Snapshot {
	return Snapshot{
		HostOS:       runtime.GOOS,
		HostArch:     runtime.GOARCH,
		HasKVM:       pathExists("/dev/kvm"),
		HasQemu:      hasBinary("qemu-system-x86_64"),
		HasGnuplot:   hasBinary("gnuplot"),
		HasManager:   hasBinary(managerBin) || isExecutable(managerBin),
		BootScriptOK: isExecutable(bootScript),
		IsRoot:       os.Geteuid() == 0,
	}
}

// Evaluate returns a report with pass/fail checks.
func Evaluate(snapshot Snapshot) Report {
	checks := []CheckResult{
		{
			Name:        "host_linux",
			Pass:        snapshot.HostOS == "linux",
			Severity:    severityBlocker,
			Current:     snapshot.HostOS,
			Required:    "linux",
			Remediation: "Run the harness on a Linux host with hardware virtualization.",
		},
		{
			Name:        "kvm_available",
			Pass:        snapshot.HasKVM,
			Severity:    severityBlocker,
			Current:     boolLabel(snapshot.HasKVM),
			Required:    "true",
			Remediation: "Enable KVM and make sure /dev/kvm exists and is accessible.",
		},
		{
			Name:        "manager_installed",
			Pass:        snapshot.HasManager,
			Severity:    severityBlocker,
			Current:     boolLabel(snapshot.HasManager),
			Required:    "true",
			Remediation: "Install the benchmark-manager binary or point manager.bin at it.",
		},
		{
			Name:        "boot_script_executable",
			Pass:        snapshot.BootScriptOK,
			Severity:    severityBlocker,
			Current:     boolLabel(snapshot.BootScriptOK),
			Required:    "true",
			Remediation: "Provide an executable VM boot script via vm.boot_script.",
		},
		{
			Name:        "gnuplot_installed",
			Pass:        snapshot.HasGnuplot,
			Severity:    severityBlocker,
			Current:     boolLabel(snapshot.HasGnuplot),
			Required:    "true",
			Remediation: "Install gnuplot to render comparison diagrams.",
		},
		{
			Name:        "qemu_installed",
			Pass:        snapshot.HasQemu,
			Severity:    severityWarning,
			Current:     boolLabel(snapshot.HasQemu),
			Required:    "true",
			Remediation: "Install qemu-system if the boot script relies on it.",
		},
		{
			Name:        "privileged_execution",
			Pass:        snapshot.IsRoot,
			Severity:    severityWarning,
			Current:     boolLabel(snapshot.IsRoot),
			Required:    "true",
			Remediation: "Run as root or keep a sudo session alive if VM boot needs it.",
		},
	}

	pass := true
	for _, check := range checks {
		if check.Severity == severityBlocker && !check.Pass {
			pass = false
			break
		}
	}

	return Report{
		GeneratedAt: time.Now().UTC(),
		HostOS:      snapshot.HostOS,
		HostArch:    snapshot.HostArch,
		Checks:      checks,
		Pass:        pass,
	}
}

// RunLocal executes prereq evaluation on the current host.
func RunLocal(managerBin string, bootScript string) Report {
	return Evaluate(CollectSnapshot(managerBin, bootScript))
}

// StrictPass returns true only if all checks pass, including warnings.
func StrictPass(report Report) bool {
	for _, check := range report.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// MarshalJSON returns pretty JSON for external reporting.
func MarshalJSON(report Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

func hasBinary(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

func pathExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func isExecutable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
