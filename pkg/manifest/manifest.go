// Package manifest loads custom benchmark suite manifests and validates them
// against the versioned JSON schema contract.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/parsecbench/parsecbench/pkg/suite"
)

// SchemaPath is the suite-manifest contract, relative to the repository root.
const SchemaPath = "docs/contracts/v1/suite-manifest.schema.json"

// Suite is a named subset of the benchmark programs to run.
type Suite struct {
	APIVersion string   `json:"apiVersion"`
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Programs   []string `json:"programs"`
}

// Load reads a manifest file, checks it against the schema, and verifies every
// listed program is part of the known suite.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return Suite{}, fmt.Errorf("manifest %s: %w", path, err)
	}

	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("unmarshal manifest %s: %w", path, err)
	}

	for _, p := range s.Programs {
		if !suite.Known(p) {
			return Suite{}, fmt.Errorf("manifest %s: unknown program %q", path, p)
		}
	}
	return s, nil
}

func validate(payload []byte) error {
	schemaBytes, err := os.ReadFile(filepath.Join(projectRoot(), SchemaPath))
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("failed schema validation: %s", strings.Join(issues, "; "))
}

func projectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}
