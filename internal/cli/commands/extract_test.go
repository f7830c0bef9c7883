package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/typeql-tools/funcmeta/metadata"
)

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

const extractTestSource = `fun standard_deduction() -> double:
    match
        $d isa deduction, has amount $amt;
    return first $amt;`

func readRecords(t *testing.T, path string) []metadata.FunctionMetadata {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var funcs []metadata.FunctionMetadata
	if err := json.Unmarshal(data, &funcs); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return funcs
}

func TestExtractCommand_WritesConfiguredOutput(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "model.tql", extractTestSource)
	if err := os.WriteFile(filepath.Join(dir, "funcmeta.yml"), []byte("extract:\n  output: records.json\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	chdir(t, dir)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{"model.tql", "--summary"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	funcs := readRecords(t, filepath.Join(dir, "records.json"))
	if len(funcs) != 1 || funcs[0].Name != "standard_deduction" {
		t.Errorf("Expected the configured output file to hold the record, got %v", funcs)
	}
}

func TestExtractCommand_JSONFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "model.tql", extractTestSource)
	if err := os.WriteFile(filepath.Join(dir, "funcmeta.yml"), []byte("extract:\n  output: records.json\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	chdir(t, dir)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{"model.tql", "--summary", "--json", "override.json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if funcs := readRecords(t, filepath.Join(dir, "override.json")); len(funcs) != 1 {
		t.Errorf("Expected the flag path to hold the record, got %v", funcs)
	}
	if _, err := os.Stat(filepath.Join(dir, "records.json")); !os.IsNotExist(err) {
		t.Error("Expected the configured path to be skipped when --json is set")
	}
}

func TestExtractCommand_InvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "model.tql", extractTestSource)
	if err := os.WriteFile(filepath.Join(dir, "funcmeta.yml"), []byte("server:\n  port: 70000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	chdir(t, dir)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{"model.tql", "--summary"})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected an invalid config to fail the command")
	}
}
