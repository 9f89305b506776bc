package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kuraiyume/Akari/internal/core"
)

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := WriteOutput(path, "A: 93.184.216.34\n"); err != nil {
		t.Fatalf("WriteOutput returned an error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back output: %v", err)
	}
	if string(data) != "A: 93.184.216.34\n" {
		t.Errorf("Unexpected file content: %q", string(data))
	}
}

func TestWriteOutput_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := WriteOutput(path, "long old content that should disappear"); err != nil {
		t.Fatal(err)
	}
	if err := WriteOutput(path, "new"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("Expected file truncated to %q, got %q", "new", string(data))
	}
}

func TestWriteOutput_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "results.txt")
	err := WriteOutput(path, "content")
	if err == nil {
		t.Fatal("Expected an error for an unwritable path, got nil")
	}
	if !errors.Is(err, core.ErrFileWrite) {
		t.Errorf("Expected ErrFileWrite, got %v", err)
	}
}
