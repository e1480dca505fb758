package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/kauri-framework/kauri/internal/configs"
	kerrors "github.com/kauri-framework/kauri/internal/errors"
	"github.com/kauri-framework/kauri/internal/utils"
)

// DefaultSecretBytes is the entropy used for generated secrets.
const DefaultSecretBytes = 32

// Environment selects how service URLs are built.
type Environment string

const (
	// EnvironmentLocal builds http://localhost:{port} URLs.
	EnvironmentLocal Environment = "local"

	// EnvironmentCloud builds http://{service-name}:{port} URLs for
	// in-cluster DNS resolution.
	EnvironmentCloud Environment = "cloud"
)

// GenerateHexSecret returns a hex-encoded secret from the given number of
// cryptographically random bytes.
func GenerateHexSecret(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateBase64Secret returns a base64-encoded secret from the given number
// of cryptographically random bytes.
func GenerateBase64Secret(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// DatabaseSecrets holds generated or preserved database credentials along
// with the connection URL built from them.
type DatabaseSecrets struct {
	Username string
	Password string
	URL      string
}

// GenerateDatabaseSecrets builds credentials for a service's database. The
// username defaults to the service name itself, mirroring cloud-managed
// Postgres conventions; the password defaults to a fresh base64 secret.
//
// existingUsername and existingPassword are nil when the prior framework
// file had no value; a non-nil pointer is passed through unchanged, even
// when it points at an empty string. Presence, not truthiness, decides
// preservation.
func GenerateDatabaseSecrets(serviceName string, port int, existingUsername, existingPassword *string) (*DatabaseSecrets, error) {
	if !utils.IsValidServiceName(serviceName) {
		return nil, &kerrors.ConfigError{Service: serviceName, Field: "name", Err: kerrors.ErrInvalidServiceName}
	}

	username := serviceName
	if existingUsername != nil {
		username = *existingUsername
	}

	password := ""
	if existingPassword != nil {
		password = *existingPassword
	} else {
		generated, err := GenerateBase64Secret(DefaultSecretBytes)
		if err != nil {
			return nil, err
		}
		password = generated
	}

	// Base64 passwords contain +, /, and =, all of which must be
	// percent-encoded inside a connection URL.
	connURL := fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s",
		username, url.QueryEscape(password), port, serviceName)

	return &DatabaseSecrets{
		Username: username,
		Password: password,
		URL:      connURL,
	}, nil
}

// GenerateServiceAPIKeys ensures every backend service has an API key entry
// keyed {PREFIX}_API_KEY, generating a new hex secret only when the key is
// absent from existing. Frontend and worker services never receive API keys.
// The existing map is not mutated.
func GenerateServiceAPIKeys(config *configs.FrameworkConfig, existing map[string]string) (map[string]string, error) {
	keys := make(map[string]string)

	for _, svc := range config.BackendServices() {
		name := APIKeyName(svc.Name)
		if value, ok := existing[name]; ok {
			keys[name] = value
			continue
		}
		value, err := GenerateHexSecret(DefaultSecretBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to generate API key for %s: %w", svc.Name, err)
		}
		keys[name] = value
	}

	return keys, nil
}

// GenerateServiceURLs ensures every backend service has a URL entry keyed
// {PREFIX}_URL. Existing entries are preserved verbatim regardless of the
// environment argument, so switching environments never rewrites URLs a
// prior run pinned. The existing map is not mutated.
func GenerateServiceURLs(config *configs.FrameworkConfig, existing map[string]string, environment Environment) map[string]string {
	urls := make(map[string]string)

	for _, svc := range config.BackendServices() {
		name := URLName(svc.Name)
		if value, ok := existing[name]; ok {
			urls[name] = value
			continue
		}
		if environment == EnvironmentCloud {
			urls[name] = fmt.Sprintf("http://%s:%d", svc.Name, svc.Port)
		} else {
			urls[name] = fmt.Sprintf("http://localhost:%d", svc.Port)
		}
	}

	return urls
}

// keyIDForDate formats the JWT key id for a generation date. The suffix is
// a constant: rotation (incrementing the suffix for same-day regeneration)
// is the caller's responsibility, not this package's.
func keyIDForDate(t time.Time) string {
	return t.Format("2006-01-02") + "-key-1"
}
