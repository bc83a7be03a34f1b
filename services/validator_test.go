package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ingest-keeper/internal/models"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestValidateCreatesMissingDirectories(t *testing.T) {
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(root, "b", "c")

	v := &Validator{Dirs: []string{dirA, dirB}}
	if err := v.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, dir := range []string{dirA, dirB} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created", dir)
		}
	}

	// Re-running against already-present directories is a no-op.
	if err := v.Validate(); err != nil {
		t.Fatalf("second run not idempotent: %v", err)
	}
}

func TestValidateReportsAllMissingFiles(t *testing.T) {
	root := t.TempDir()
	fileA := filepath.Join(root, "A")
	fileB := filepath.Join(root, "B")
	fileC := filepath.Join(root, "C")
	touch(t, fileA)

	v := &Validator{Files: []string{fileA, fileB, fileC}}
	err := v.Validate()
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.MissingFiles) != 2 {
		t.Fatalf("expected both missing files reported, got %v", verr.MissingFiles)
	}
	if verr.MissingFiles[0] != fileB || verr.MissingFiles[1] != fileC {
		t.Errorf("wrong missing files: %v", verr.MissingFiles)
	}
}

func TestValidateStandardLayout(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		filepath.Join(root, "backend"),
		filepath.Join(root, "backend", "models"),
		filepath.Join(root, "backend", "utils"),
		filepath.Join(root, "tests"),
	}
	touch(t, filepath.Join(root, "docker-compose.yml"))
	touch(t, filepath.Join(root, "backend", "main.py"))
	// backend/config.py deliberately absent.

	v := &Validator{
		Dirs: dirs,
		Files: []string{
			filepath.Join(root, "docker-compose.yml"),
			filepath.Join(root, "backend", "main.py"),
			filepath.Join(root, "backend", "config.py"),
		},
	}
	err := v.Validate()
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := filepath.Join(root, "backend", "config.py")
	if len(verr.MissingFiles) != 1 || verr.MissingFiles[0] != want {
		t.Errorf("expected exactly [%s], got %v", want, verr.MissingFiles)
	}
}

func TestValidatePasses(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "docker-compose.yml")
	touch(t, file)

	v := &Validator{
		Dirs:  []string{filepath.Join(root, "backend")},
		Files: []string{file},
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
