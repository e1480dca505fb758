package secrets

import "testing"

func TestToScreamingSnakeCase(t *testing.T) {
	cases := map[string]string{
		"auth-service":     "AUTH_SERVICE",
		"bff-service":      "BFF_SERVICE",
		"web":              "WEB",
		"my-long-name-api": "MY_LONG_NAME_API",
	}

	for input, expected := range cases {
		if got := ToScreamingSnakeCase(input); got != expected {
			t.Errorf("ToScreamingSnakeCase(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestDerivedNames(t *testing.T) {
	if got := APIKeyName("auth-service"); got != "AUTH_SERVICE_API_KEY" {
		t.Errorf("Expected AUTH_SERVICE_API_KEY, got %q", got)
	}
	if got := URLName("auth-service"); got != "AUTH_SERVICE_URL" {
		t.Errorf("Expected AUTH_SERVICE_URL, got %q", got)
	}
	if got := DBUsernameName("auth-service"); got != "AUTH_SERVICE_DB_USERNAME" {
		t.Errorf("Expected AUTH_SERVICE_DB_USERNAME, got %q", got)
	}
	if got := DBPasswordName("auth-service"); got != "AUTH_SERVICE_DB_PASSWORD" {
		t.Errorf("Expected AUTH_SERVICE_DB_PASSWORD, got %q", got)
	}
}
