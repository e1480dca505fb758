package secrets

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDeepDeleteServiceReferences(t *testing.T) {
	input := map[string]any{
		"secrets": map[string]any{
			"DEMO_SERVICE_API_KEY": "abc",
			"DEMO_SERVICE_URL":     "http://localhost:3002",
			"OTHER_SERVICE_URL":    "http://localhost:3003",
			"DEMOX_SERVICE_KEY":    "survives",
		},
		"demo-service": map[string]any{
			"PORT": "3002",
		},
		"other-service": map[string]any{
			"secrets": []any{"DEMO_SERVICE_API_KEY", "OTHER_SERVICE_URL"},
		},
	}

	result, modified := DeepDeleteServiceReferences(input, "demo-service")
	if !modified {
		t.Fatal("Expected modified=true")
	}

	tree := result.(map[string]any)
	if _, ok := tree["demo-service"]; ok {
		t.Error("Section keyed by the service name survived")
	}

	secrets := tree["secrets"].(map[string]any)
	if _, ok := secrets["DEMO_SERVICE_API_KEY"]; ok {
		t.Error("Prefixed key survived")
	}
	if _, ok := secrets["DEMOX_SERVICE_KEY"]; !ok {
		t.Error("Underscore boundary not honored: DEMOX_SERVICE_KEY removed")
	}
	if _, ok := secrets["OTHER_SERVICE_URL"]; !ok {
		t.Error("Unrelated key removed")
	}

	other := tree["other-service"].(map[string]any)
	array := other["secrets"].([]any)
	if !reflect.DeepEqual(array, []any{"OTHER_SERVICE_URL"}) {
		t.Errorf("Expected array filtered to unrelated entries, got %v", array)
	}
}

func TestDeepDeleteServiceReferences_StringValues(t *testing.T) {
	input := map[string]any{
		"note":     "see DEMO_SERVICE_URL for details",
		"harmless": "plain text",
	}

	result, modified := DeepDeleteServiceReferences(input, "demo-service")
	if !modified {
		t.Fatal("Expected modified=true")
	}

	tree := result.(map[string]any)
	if _, ok := tree["note"]; ok {
		t.Error("String containing the uppercase name survived")
	}
	if tree["harmless"] != "plain text" {
		t.Error("Unrelated string removed")
	}
}

func TestDeepDeleteServiceReferences_PrefixMatchIncludesCompounds(t *testing.T) {
	// Pure prefix semantics: DEMO_SERVICE_DEMO_KEY goes with demo-service.
	input := map[string]any{"DEMO_SERVICE_DEMO_KEY": "x"}

	result, modified := DeepDeleteServiceReferences(input, "demo-service")
	if !modified {
		t.Fatal("Expected modified=true")
	}
	if len(result.(map[string]any)) != 0 {
		t.Error("Compound prefixed key survived")
	}
}

func TestDeepDeleteServiceReferences_NoOp(t *testing.T) {
	input := map[string]any{
		"secrets": map[string]any{"OTHER_SERVICE_URL": "http://localhost:3003"},
	}

	result, modified := DeepDeleteServiceReferences(input, "demo-service")
	if modified {
		t.Error("Expected modified=false for an untouched tree")
	}
	if !reflect.DeepEqual(result, input) {
		t.Errorf("No-op changed the tree: %v", result)
	}
}

func TestDeepDeleteServiceReferences_InputNotMutated(t *testing.T) {
	raw := `{"demo-service":{"PORT":"3002"},"secrets":{"DEMO_SERVICE_API_KEY":"abc","KEEP":"yes"}}`
	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}

	DeepDeleteServiceReferences(input, "demo-service")

	if _, ok := input["demo-service"]; !ok {
		t.Error("Input map was mutated")
	}
	if _, ok := input["secrets"].(map[string]any)["DEMO_SERVICE_API_KEY"]; !ok {
		t.Error("Input secrets map was mutated")
	}
}

func TestDeepDeleteServiceReferences_NestedArraysAndScalars(t *testing.T) {
	input := map[string]any{
		"list": []any{
			"DEMO_SERVICE_API_KEY",
			"keep",
			map[string]any{"DEMO_SERVICE_URL": "x", "other": "y"},
		},
		"number": float64(42),
		"flag":   true,
	}

	result, modified := DeepDeleteServiceReferences(input, "demo-service")
	if !modified {
		t.Fatal("Expected modified=true")
	}

	tree := result.(map[string]any)
	list := tree["list"].([]any)
	if len(list) != 2 {
		t.Fatalf("Expected 2 surviving elements, got %v", list)
	}
	if list[0] != "keep" {
		t.Errorf("Expected string element filtered, got %v", list[0])
	}
	nested := list[1].(map[string]any)
	if len(nested) != 1 || nested["other"] != "y" {
		t.Errorf("Nested object not scrubbed correctly: %v", nested)
	}
	if tree["number"] != float64(42) || tree["flag"] != true {
		t.Error("Non-string scalars altered")
	}
}
