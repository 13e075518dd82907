package prereq

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEvaluateBlockers(t *testing.T) {
	t.Parallel()

	report := Evaluate(Snapshot{
		HostOS:       "darwin",
		HostArch:     "arm64",
		HasKVM:       false,
		HasQemu:      true,
		HasGnuplot:   true,
		HasManager:   false,
		BootScriptOK: false,
		IsRoot:       false,
	})

	if report.Pass {
		t.Fatalf("expected report to fail with blocker checks")
	}
}

func TestEvaluatePassesWithWarningsOnly(t *testing.T) {
	t.Parallel()

	report := Evaluate(Snapshot{
		HostOS:       "linux",
		HostArch:     "amd64",
		HasKVM:       true,
		HasQemu:      false,
		HasGnuplot:   true,
		HasManager:   true,
		BootScriptOK: true,
		IsRoot:       false,
	})

	if !report.Pass {
		t.Fatalf("warnings alone must not fail the report")
	}
	if StrictPass(report) {
		t.Fatalf("strict pass should fail when warning checks fail")
	}
}

func TestIsExecutable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "boot.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !isExecutable(script) {
		t.Fatalf("expected %s to count as executable", script)
	}
	if isExecutable(plain) {
		t.Fatalf("expected %s to be rejected", plain)
	}
	if isExecutable(dir) {
		t.Fatalf("directories must be rejected")
	}
	if isExecutable("") {
		t.Fatalf("empty path must be rejected")
	}
}
