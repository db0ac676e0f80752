package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReport_StoreAndClose(t *testing.T) {
	tmpDir := t.TempDir()

	srcPath := filepath.Join(tmpDir, "input.txt")
	if err := os.WriteFile(srcPath, []byte("stored input"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.Store("inputs/input.txt", srcPath)
	r.StoreData("outputs/result.html", []byte("<html></html>"))

	name := r.Name()
	if name == "" {
		t.Fatal("Name() returned empty string")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("report is not a readable zip: %v", err)
	}
	defer zr.Close()

	found := make(map[string]bool)
	for _, f := range zr.File {
		found[f.Name] = true
	}
	for _, want := range []string{"inputs/input.txt", "outputs/result.html", "MANIFEST"} {
		if !found[want] {
			t.Errorf("report missing %q, has %v", want, found)
		}
	}
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report
	r.Store("name", "path")
	r.StoreData("name", []byte("data"))
	if n := r.Name(); n != "" {
		t.Errorf("Name() on nil report = %q, want empty", n)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
}

func TestReport_CloseWithoutFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without file error = %v", err)
	}
}

func TestReport_StoreDataOverwritePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate StoreData name")
		}
	}()
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("same", []byte("a"))
	r.StoreData("same", []byte("b"))
}
