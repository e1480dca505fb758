package secrets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/kauri-framework/kauri/internal/errors"
)

func TestLoadSecretsFile_Missing(t *testing.T) {
	file, err := LoadSecretsFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Expected nil error for a missing file, got %v", err)
	}
	if file != nil {
		t.Error("Expected nil file for a missing file")
	}
}

func TestLoadSecretsFile_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	file, err := LoadSecretsFile(path)
	if err != nil {
		t.Fatalf("Expected corrupted file to degrade to nil, got error %v", err)
	}
	if file != nil {
		t.Error("Expected nil file for a corrupted file")
	}
}

func TestLoadLocalSecretsFile_Missing(t *testing.T) {
	_, err := LoadLocalSecretsFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, kerrors.ErrLocalSecretsMissing) {
		t.Fatalf("Expected ErrLocalSecretsMissing, got %v", err)
	}
}

func TestLoadLocalSecretsFile_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := LoadLocalSecretsFile(path); err == nil {
		t.Fatal("Expected an error for a corrupted local file")
	}
}

func TestWriteSecretsFile_Roundtrip(t *testing.T) {
	file := NewSecretsFile()
	file.Metadata["$comment"] = "test"
	file.Secrets["NODE_ENV"] = "development"
	section := file.Section("api-service")
	section.Secrets = []string{"NODE_ENV"}
	section.Values["PORT"] = "3001"

	path := filepath.Join(t.TempDir(), "nested", "secrets.json")
	if err := WriteSecretsFile(path, file); err != nil {
		t.Fatalf("WriteSecretsFile failed: %v", err)
	}

	loaded, err := LoadSecretsFile(path)
	if err != nil {
		t.Fatalf("LoadSecretsFile failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a loaded file")
	}
	if !loaded.Equal(file) {
		t.Error("Roundtrip lost data")
	}
}

func TestWriteSecretsFile_ByteStable(t *testing.T) {
	file := NewSecretsFile()
	file.Secrets["B_KEY"] = "2"
	file.Secrets["A_KEY"] = "1"
	file.Section("api-service").Values["PORT"] = "3001"

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := WriteSecretsFile(first, file); err != nil {
		t.Fatalf("WriteSecretsFile failed: %v", err)
	}
	if err := WriteSecretsFile(second, file.Clone()); err != nil {
		t.Fatalf("WriteSecretsFile failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("Writes of equal files differ")
	}
	if len(a) == 0 || a[len(a)-1] != '\n' {
		t.Error("Expected a trailing newline")
	}
}

func TestWriteSecretsFile_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := WriteSecretsFile(path, NewSecretsFile()); err != nil {
		t.Fatalf("WriteSecretsFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}
