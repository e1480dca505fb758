package secrets

import (
	"fmt"
	"strings"

	"github.com/kauri-framework/kauri/internal/configs"
)

// Variable names owned by the user file.
const (
	AccessTokenTTLName       = "ACCESS_TOKEN_TTL"
	RefreshTokenTTLName      = "REFRESH_TOKEN_TTL"
	ConfirmationTokenTTLName = "CONFIRMATION_TOKEN_TTL"
	AppURLName               = "APP_URL"
	APIURLName               = "API_URL"
)

// ttlDefaults are documented token lifetimes in seconds: 15 minutes for
// access tokens, 7 days for refresh tokens, 24 hours for confirmations.
var ttlDefaults = map[string]string{
	AccessTokenTTLName:       "900",
	RefreshTokenTTLName:      "604800",
	ConfirmationTokenTTLName: "86400",
}

// userDefaultSecrets are the user-configurable values seeded on first run.
var userDefaultSecrets = map[string]string{
	"DOMAIN":            "localhost",
	AppURLName:          "http://localhost:3000",
	"KONG_SERVICE_HOST": "localhost",
	APIURLName:          "http://localhost:8000",
}

// userAuthSecretNames are the user-owned names appended to auth-service when
// the auth template is enabled: the three TTLs plus the app URL used in
// confirmation emails.
var userAuthSecretNames = []string{
	AccessTokenTTLName,
	RefreshTokenTTLName,
	ConfirmationTokenTTLName,
	AppURLName,
}

// deprecatedAllowedOriginsName was removed when apps stopped being called
// directly; all traffic now goes through the gateway.
const deprecatedAllowedOriginsName = "ALLOWED_ORIGINS"

// BuildUserSecretsFile seeds the user-owned secrets file. Callers invoke
// this only when the file does not already exist; an existing file is synced
// with SyncUserSecretsStructure instead.
func BuildUserSecretsFile(config *configs.FrameworkConfig) (*SecretsFile, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	file := NewSecretsFile()
	file.Metadata["$comment"] = "User-configurable secrets for this project. Edit freely; kauri never overwrites your values."
	file.Metadata["$instructions"] = "Add variable names to a service's secrets array to grant it access to a top-level secret."

	for k, v := range userDefaultSecrets {
		file.Secrets[k] = v
	}
	for k, v := range ttlDefaults {
		file.Secrets[k] = v
	}

	if origins := corsOrigins(config); origins != "" {
		file.Secrets["KONG_CORS_ORIGINS"] = origins
	}

	for _, svc := range config.Services {
		if svc.IsWorker() {
			continue
		}
		section := file.Section(svc.Name)
		section.Secrets = defaultUserSectionSecrets(config, svc)
	}

	return file, nil
}

// SyncUserSecretsStructure reconciles an existing user file with the current
// service list. It only ever adds keys and removes orphaned sections; values
// the user has set are never overwritten. Returns nil when the result is
// byte-equivalent to the input, signalling that no write is needed.
func SyncUserSecretsStructure(config *configs.FrameworkConfig, existing *SecretsFile) (*SecretsFile, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("cannot sync a missing user secrets file")
	}

	synced := existing.Clone()

	// Add TTL keys that are missing, with their documented defaults.
	for name, value := range ttlDefaults {
		if _, ok := synced.Secrets[name]; !ok {
			synced.Secrets[name] = value
		}
	}

	configured := make(map[string]bool)
	for _, svc := range config.Services {
		if !svc.IsWorker() {
			configured[svc.Name] = true
		}
	}

	// Remove sections for services no longer in the config.
	for name := range synced.Services {
		if !configured[name] {
			delete(synced.Services, name)
		}
	}

	for _, svc := range config.Services {
		if svc.IsWorker() {
			continue
		}

		section, exists := synced.Services[svc.Name]
		if !exists {
			section = synced.Section(svc.Name)
			section.Secrets = []string{}
		}

		// Deprecated: apps are no longer called directly.
		delete(section.Values, deprecatedAllowedOriginsName)

		// Union with the freshly-computed defaults, existing entries first,
		// so user-granted names survive and new defaults appear.
		for _, name := range defaultUserSectionSecrets(config, svc) {
			section.AddSecret(name)
		}
	}

	if synced.Equal(existing) {
		return nil, nil
	}
	return synced, nil
}

// defaultUserSectionSecrets computes the user-file secrets array a service
// starts with. Backend secrets live in the framework file, so backends get
// an empty array here; frontends get the API URL, and full-stack frontends
// additionally get the token TTLs their session handling reads.
func defaultUserSectionSecrets(config *configs.FrameworkConfig, svc configs.FrameworkService) []string {
	names := []string{}

	if svc.IsFrontend() {
		names = append(names, APIURLName)
		if svc.Type == configs.ServiceTypeNextJS {
			names = append(names, AccessTokenTTLName, RefreshTokenTTLName)
		}
		return names
	}

	if svc.Name == AuthServiceName && config.HasAuthTemplate() {
		names = append(names, userAuthSecretNames...)
	}

	return names
}

// corsOrigins joins the local URL of every frontend service; empty when the
// project has no frontends.
func corsOrigins(config *configs.FrameworkConfig) string {
	var origins []string
	for _, svc := range config.FrontendServices() {
		origins = append(origins, fmt.Sprintf("http://localhost:%d", svc.Port))
	}
	return strings.Join(origins, ",")
}
