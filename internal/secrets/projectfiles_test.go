package secrets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectJSONFiles(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
	}
	mustWrite(".kauri/secrets.local.json", "{}")
	mustWrite("services/api/config.json", "{}")
	mustWrite("services/api/readme.md", "text")

	files, err := FindProjectJSONFiles(root, []string{".kauri/*.json", "services/**/*.json", ".kauri/*.json"})
	if err != nil {
		t.Fatalf("FindProjectJSONFiles failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}
	found := make(map[string]bool)
	for _, f := range files {
		found[filepath.Base(f)] = true
	}
	if !found["secrets.local.json"] || !found["config.json"] {
		t.Errorf("Unexpected matches: %v", files)
	}
}

func TestFindProjectJSONFiles_InvalidPattern(t *testing.T) {
	if _, err := FindProjectJSONFiles(t.TempDir(), []string{"[invalid"}); err == nil {
		t.Fatal("Expected an error for an invalid glob pattern")
	}
}

func TestDeleteServiceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	content := `{
  "demo-service": {"PORT": "3002"},
  "secrets": {"DEMO_SERVICE_API_KEY": "abc", "KEEP": "yes"}
}
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	modified, err := DeleteServiceFromFile(path, "demo-service")
	if err != nil {
		t.Fatalf("DeleteServiceFromFile failed: %v", err)
	}
	if !modified {
		t.Fatal("Expected modified=true")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read result: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		t.Fatalf("Rewritten file is not valid JSON: %v", err)
	}
	if _, ok := tree["demo-service"]; ok {
		t.Error("Service section survived")
	}
	secrets := tree["secrets"].(map[string]any)
	if _, ok := secrets["DEMO_SERVICE_API_KEY"]; ok {
		t.Error("Prefixed key survived")
	}
	if secrets["KEEP"] != "yes" {
		t.Error("Unrelated key lost")
	}
}

func TestDeleteServiceFromFile_NoChangesNoWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	content := `{"secrets": {"KEEP": "yes"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	modified, err := DeleteServiceFromFile(path, "demo-service")
	if err != nil {
		t.Fatalf("DeleteServiceFromFile failed: %v", err)
	}
	if modified {
		t.Error("Expected modified=false")
	}

	// An untouched file keeps its original bytes, non-canonical formatting
	// included.
	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Error("File rewritten despite no changes")
	}
}

func TestDeleteServiceFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := DeleteServiceFromFile(path, "demo-service"); err == nil {
		t.Fatal("Expected an error for invalid JSON")
	}
}
