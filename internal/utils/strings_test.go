package utils

import "testing"

func TestIsValidServiceName(t *testing.T) {
	valid := []string{"auth", "auth-service", "bff-service-v2", "s3-proxy"}
	for _, name := range valid {
		if !IsValidServiceName(name) {
			t.Errorf("Expected %q to be valid", name)
		}
	}

	invalid := []string{"", "Auth-Service", "auth_service", "-auth", "auth-", "auth--service", "1auth", "auth service"}
	for _, name := range invalid {
		if IsValidServiceName(name) {
			t.Errorf("Expected %q to be invalid", name)
		}
	}
}
