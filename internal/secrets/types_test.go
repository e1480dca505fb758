package secrets

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSecretsFileRoundtrip(t *testing.T) {
	input := `{
  "$comment": "test file",
  "secrets": {
    "NODE_ENV": "development",
    "LOG_LEVEL": "debug"
  },
  "api-service": {
    "PORT": "3001",
    "API_KEY": "API_SERVICE_API_KEY",
    "secrets": ["NODE_ENV", "LOG_LEVEL"]
  },
  "web": {
    "secrets": []
  }
}`

	file := NewSecretsFile()
	if err := json.Unmarshal([]byte(input), file); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if file.Metadata["$comment"] != "test file" {
		t.Errorf("Metadata lost: %v", file.Metadata)
	}
	if file.Secrets["NODE_ENV"] != "development" {
		t.Errorf("Secrets map lost: %v", file.Secrets)
	}

	api := file.Services["api-service"]
	if api == nil {
		t.Fatal("api-service section missing")
	}
	if api.Values["PORT"] != "3001" || api.Values["API_KEY"] != "API_SERVICE_API_KEY" {
		t.Errorf("Section values lost: %v", api.Values)
	}
	if len(api.Secrets) != 2 {
		t.Errorf("Section array lost: %v", api.Secrets)
	}

	web := file.Services["web"]
	if web == nil || web.Secrets == nil || len(web.Secrets) != 0 {
		t.Errorf("Empty array not preserved as empty: %v", web)
	}

	out, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	reparsed := NewSecretsFile()
	if err := json.Unmarshal(out, reparsed); err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if !reparsed.Equal(file) {
		t.Error("Roundtrip is not stable")
	}
}

func TestSecretsFileLegacyNestedSecrets(t *testing.T) {
	input := `{
  "secrets": {
    "REDIS": {"HOST": "localhost", "REDIS_PORT": 6379},
    "BCRYPT_ROUNDS": 12,
    "KONG_SSL_VERIFY": false
  }
}`

	file := NewSecretsFile()
	if err := json.Unmarshal([]byte(input), file); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// Nested children get the parent prefix unless they already carry it.
	if file.Secrets["REDIS_HOST"] != "localhost" {
		t.Errorf("Expected flattened REDIS_HOST, got %v", file.Secrets)
	}
	if file.Secrets["REDIS_PORT"] != "6379" {
		t.Errorf("Expected REDIS_PORT without double prefix, got %v", file.Secrets)
	}
	if file.Secrets["BCRYPT_ROUNDS"] != "12" {
		t.Errorf("Expected stringified number, got %q", file.Secrets["BCRYPT_ROUNDS"])
	}
	if file.Secrets["KONG_SSL_VERIFY"] != "false" {
		t.Errorf("Expected stringified bool, got %q", file.Secrets["KONG_SSL_VERIFY"])
	}
}

func TestSecretsFileOpaqueSections(t *testing.T) {
	input := `{
  "secrets": {},
  "notes": "free text",
  "tags": ["a", "b"]
}`

	file := NewSecretsFile()
	if err := json.Unmarshal([]byte(input), file); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if file.Opaque["notes"] != "free text" {
		t.Errorf("String section not carried opaquely: %v", file.Opaque)
	}
	if _, ok := file.Opaque["tags"]; !ok {
		t.Errorf("Array section not carried opaquely: %v", file.Opaque)
	}

	out, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"notes":"free text"`) {
		t.Errorf("Opaque section lost on marshal: %s", out)
	}
}

func TestSecretsFileMarshalDeterministic(t *testing.T) {
	file := NewSecretsFile()
	file.Metadata["$comment"] = "c"
	file.Secrets["B"] = "2"
	file.Secrets["A"] = "1"
	file.Section("b-service").Values["PORT"] = "2"
	file.Section("a-service").Values["PORT"] = "1"

	first, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := json.Marshal(file.Clone())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Marshals of equal files differ")
	}

	// Metadata keys sort before everything else.
	if !strings.HasPrefix(string(first), `{"$comment"`) {
		t.Errorf("Expected metadata first, got %s", first)
	}
}

func TestSecretsFileClone(t *testing.T) {
	file := NewSecretsFile()
	file.Secrets["KEY"] = "value"
	section := file.Section("api-service")
	section.Secrets = []string{"KEY"}
	section.Values["PORT"] = "3001"

	clone := file.Clone()
	clone.Secrets["KEY"] = "changed"
	clone.Services["api-service"].Values["PORT"] = "9999"
	clone.Services["api-service"].AddSecret("OTHER")

	if file.Secrets["KEY"] != "value" {
		t.Error("Clone shares the secrets map")
	}
	if file.Services["api-service"].Values["PORT"] != "3001" {
		t.Error("Clone shares section values")
	}
	if len(file.Services["api-service"].Secrets) != 1 {
		t.Error("Clone shares the secrets array")
	}
}

func TestSecretsFileEqual(t *testing.T) {
	a := NewSecretsFile()
	a.Secrets["KEY"] = "value"

	b := a.Clone()
	if !a.Equal(b) {
		t.Error("Equal clones reported unequal")
	}

	b.Secrets["KEY"] = "other"
	if a.Equal(b) {
		t.Error("Different files reported equal")
	}
	if a.Equal(nil) {
		t.Error("Nil comparison reported equal")
	}
}

func TestServiceSecretsNilVersusEmptyArray(t *testing.T) {
	withArray := &ServiceSecrets{Secrets: []string{}, Values: map[string]string{}}
	out, err := json.Marshal(withArray)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"secrets":[]`) {
		t.Errorf("Empty array dropped: %s", out)
	}

	withoutArray := &ServiceSecrets{Values: map[string]string{"PORT": "3001"}}
	out, err = json.Marshal(withoutArray)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(out), "secrets") {
		t.Errorf("Nil array serialized: %s", out)
	}
}
