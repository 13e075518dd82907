package plot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const gnuplotBin = "gnuplot"

// Render materializes the spec's data files in a scratch directory, writes the
// script, and runs gnuplot on it. In interactive mode the script's own
// "pause mouse" keeps gnuplot alive until the user dismisses the window, so
// this call blocks until then. The scratch directory is removed afterwards.
func Render(ctx context.Context, spec *Spec) error {
	dir, err := os.MkdirTemp("", "parsecbench-plot-")
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := spec.WriteDataFiles(dir); err != nil {
		return err
	}

	scriptPath := filepath.Join(dir, "diagram.gp")
	if err := os.WriteFile(scriptPath, []byte(spec.Script()), 0o644); err != nil {
		return fmt.Errorf("write gnuplot script: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, gnuplotBin, scriptPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("gnuplot: %w: %s", err, stderr.String())
		}
		return fmt.Errorf("gnuplot: %w", err)
	}
	return nil
}
