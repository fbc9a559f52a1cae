package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input extension", "", "water.json", "water"},
		{"output with format extension", "out.svg", "water.json", "out"},
		{"output without format extension", "result", "water.json", "result"},
		{"output with unknown extension", "out.txt", "water.json", "out.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifactsSingleFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom.json")

	artifacts := map[string][]byte{"json": []byte(`{"name":"water"}`)}
	paths, err := writeArtifacts(artifacts, []string{"json"}, out, "water.json")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != `{"name":"water"}` {
		t.Errorf("output content = %q", data)
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "water.json")

	artifacts := map[string][]byte{
		"json": []byte("{}"),
		"dot":  []byte("graph G {}"),
	}
	paths, err := writeArtifacts(artifacts, []string{"json", "dot"}, "", input)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2", len(paths))
	}

	// File names derive from the input base path
	wantJSON := filepath.Join(dir, "water.json")
	wantDOT := filepath.Join(dir, "water.dot")
	if paths[0] != wantJSON || paths[1] != wantDOT {
		t.Errorf("paths = %v, want [%s %s]", paths, wantJSON, wantDOT)
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected output file %s: %v", p, err)
		}
	}
}

func TestOpenOutputStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput(\"\") error: %v", err)
	}

	// Closing the stdout wrapper must not close os.Stdout
	if err := out.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
