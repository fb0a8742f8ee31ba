package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJSONAtomicCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run1", "graph.json")
	if err := WriteJSONAtomic(path, map[string]int{"nodes": 3}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"nodes\": 3\n}\n" {
		t.Fatalf("unexpected content: %q", b)
	}
}

func TestWriteTextAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := WriteTextAtomic(path, "hello\n"); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "report.txt" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello\n" {
		t.Fatalf("unexpected content: %q", b)
	}
}
