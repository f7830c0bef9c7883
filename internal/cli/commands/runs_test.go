package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/typeql-tools/funcmeta/internal/catalog"
	"github.com/typeql-tools/funcmeta/metadata"
)

func seedCatalog(t *testing.T, path string) string {
	t.Helper()

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	ret := "first $tax"
	runID, err := store.SaveRun([]metadata.FunctionMetadata{{
		Name:             "calculate_federal_tax",
		Output:           "double",
		ReturnExpression: &ret,
	}})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	return runID
}

func TestRunsCommand_ListsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	runID := seedCatalog(t, dbPath)

	var buf bytes.Buffer
	cmd := NewRunsCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--catalog", dbPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(buf.String(), runID) {
		t.Errorf("Expected listing to contain run %s, got %q", runID, buf.String())
	}
}

func TestRunsCommand_ReloadsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	runID := seedCatalog(t, dbPath)

	var buf bytes.Buffer
	cmd := NewRunsCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--catalog", dbPath, runID})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(buf.String(), "calculate_federal_tax") {
		t.Errorf("Expected reloaded records in output, got %q", buf.String())
	}
}

func TestRunsCommand_UnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	seedCatalog(t, dbPath)

	cmd := NewRunsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", dbPath, "no-such-run"})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected an error for an unknown run ID")
	}
}
