package secrets

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kauri-framework/kauri/internal/configs"
	kerrors "github.com/kauri-framework/kauri/internal/errors"
)

// Variable names owned by the framework file.
const (
	JWTPrivateKeyName     = "JWT_PRIVATE_KEY"
	JWTPublicKeyName      = "JWT_PUBLIC_KEY"
	JWTKeyIDName          = "JWT_KEY_ID"
	JWTRefreshSecretName  = "JWT_REFRESH_SECRET"
	BcryptRoundsName      = "BCRYPT_ROUNDS"
	GatewayTrustTokenName = "GATEWAY_TRUST_TOKEN"
	KongInternalURLName   = "KONG_INTERNAL_URL"
)

// DefaultBcryptRounds is stored as a string: the secrets map is uniformly
// string-valued so services parse it themselves.
const DefaultBcryptRounds = "12"

// firstDatabasePort is where auto-assigned database ports start counting.
const firstDatabasePort = 5432

// baseSecrets are constant entries every generation seeds.
var baseSecrets = map[string]string{
	"NODE_ENV":         "development",
	"SECRETS_PROVIDER": "local",
	"LOG_LEVEL":        "debug",
}

// redisSecrets are fixed local-development Redis connection constants. Not
// secrets, but co-located so services read one file.
var redisSecrets = map[string]string{
	"REDIS_HOST":     "localhost",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
}

// kongSecrets are fixed local-development gateway constants.
var kongSecrets = map[string]string{
	KongInternalURLName: "http://localhost:8000",
	"KONG_SSL_VERIFY":   "false",
}

// BackendDefaultSecretNames is the variable-name set every backend service
// is entitled to before mesh, auth, and database names are added.
var BackendDefaultSecretNames = []string{
	"NODE_ENV",
	"SECRETS_PROVIDER",
	"LOG_LEVEL",
	"REDIS_HOST",
	"REDIS_PORT",
	"REDIS_PASSWORD",
}

// authSecretNames are the JWT/bcrypt names granted to auth-service when the
// auth template is enabled. The key id stays in the top-level map only; the
// gateway reads it for JWKS publication.
var authSecretNames = []string{
	JWTPrivateKeyName,
	JWTPublicKeyName,
	JWTRefreshSecretName,
	BcryptRoundsName,
}

// AuthServiceName is the service the auth template's secret set binds to.
const AuthServiceName = "auth-service"

// BuildFrameworkSecretsFile regenerates the framework-owned secrets file.
// Preserve-marked values (JWT material, refresh secret, bcrypt rounds, the
// gateway trust token, per-service API keys, database credentials) are
// copied from existing when present and generated only when absent, so
// repeated runs are value-stable.
//
// existing may be nil on first run. The returned file is fully built in
// memory; nothing is written here, so a failed build never leaves a partial
// file behind.
func BuildFrameworkSecretsFile(config *configs.FrameworkConfig, existing *SecretsFile, environment Environment) (*SecretsFile, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	prior := make(map[string]string)
	if existing != nil {
		for k, v := range existing.Secrets {
			prior[k] = v
		}
	}

	file := NewSecretsFile()
	file.Metadata["$comment"] = "Generated by kauri. Machine-to-machine credentials; do not edit by hand."
	file.Metadata["$warning"] = "Deleting this file discards issued API keys and database passwords."
	file.Metadata["$generated"] = time.Now().UTC().Format(time.RFC3339)
	file.Metadata["$generationId"] = uuid.New().String()

	for k, v := range baseSecrets {
		file.Secrets[k] = v
	}

	if config.HasAuthTemplate() {
		if err := buildAuthSecrets(file, prior); err != nil {
			return nil, err
		}
	}

	// The trust token exists independently of the auth template: the gateway
	// stamps it on every request it forwards to a backend.
	if token, ok := prior[GatewayTrustTokenName]; ok {
		file.Secrets[GatewayTrustTokenName] = token
	} else {
		token, err := GenerateHexSecret(DefaultSecretBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to generate gateway trust token: %w", err)
		}
		file.Secrets[GatewayTrustTokenName] = token
	}

	apiKeys, err := GenerateServiceAPIKeys(config, prior)
	if err != nil {
		return nil, err
	}
	for k, v := range apiKeys {
		file.Secrets[k] = v
	}

	urls := GenerateServiceURLs(config, prior, environment)
	for k, v := range urls {
		file.Secrets[k] = v
	}

	for k, v := range redisSecrets {
		file.Secrets[k] = v
	}
	for k, v := range kongSecrets {
		file.Secrets[k] = v
	}

	if err := buildDatabaseSecrets(config, file, prior); err != nil {
		return nil, err
	}

	meshNames := buildMeshNames(config)

	for _, svc := range config.Services {
		if svc.IsWorker() {
			// Workers inherit their base service's section at consumption
			// time and contribute nothing here.
			continue
		}
		if svc.Port == 0 {
			return nil, &kerrors.ConfigError{Service: svc.Name, Field: "port", Err: kerrors.ErrMissingPort}
		}

		section := file.Section(svc.Name)
		section.Values["PORT"] = strconv.Itoa(svc.Port)

		switch {
		case svc.Type == configs.ServiceTypeNextJS:
			// Server-side rendering needs gateway access.
			section.Secrets = []string{KongInternalURLName}
		case svc.Type == configs.ServiceTypeSPA:
			// Browser-only, no server secrets.
			section.Secrets = []string{}
		default:
			buildBackendSection(config, svc, section, meshNames)
		}
	}

	return file, nil
}

// buildAuthSecrets preserves or generates the RSA signing triple, the
// refresh-token secret, and the bcrypt rounds constant.
func buildAuthSecrets(file *SecretsFile, prior map[string]string) error {
	if privateKey, ok := prior[JWTPrivateKeyName]; ok {
		file.Secrets[JWTPrivateKeyName] = privateKey
		if publicKey, ok := prior[JWTPublicKeyName]; ok {
			file.Secrets[JWTPublicKeyName] = publicKey
		} else {
			// The prior file carried a private key without its public half.
			// Re-derive instead of minting a new pair, so issued tokens
			// remain verifiable.
			parsed, err := ParseSigningKey([]byte(privateKey))
			if err != nil {
				return fmt.Errorf("failed to recover public key from preserved private key: %w", err)
			}
			pair, err := encodeKeyPair(parsed, time.Now())
			if err != nil {
				return err
			}
			file.Secrets[JWTPublicKeyName] = pair.PublicKeyPEM
		}
		if keyID, ok := prior[JWTKeyIDName]; ok {
			file.Secrets[JWTKeyIDName] = keyID
		} else {
			file.Secrets[JWTKeyIDName] = keyIDForDate(time.Now())
		}
	} else {
		pair, err := GenerateRSAKeyPair()
		if err != nil {
			return err
		}
		file.Secrets[JWTPrivateKeyName] = pair.PrivateKeyPEM
		file.Secrets[JWTPublicKeyName] = pair.PublicKeyPEM
		file.Secrets[JWTKeyIDName] = pair.KeyID
	}

	if refresh, ok := prior[JWTRefreshSecretName]; ok {
		file.Secrets[JWTRefreshSecretName] = refresh
	} else {
		refresh, err := GenerateBase64Secret(DefaultSecretBytes)
		if err != nil {
			return fmt.Errorf("failed to generate refresh token secret: %w", err)
		}
		file.Secrets[JWTRefreshSecretName] = refresh
	}

	if rounds, ok := prior[BcryptRoundsName]; ok {
		file.Secrets[BcryptRoundsName] = rounds
	} else {
		file.Secrets[BcryptRoundsName] = DefaultBcryptRounds
	}

	return nil
}

// buildDatabaseSecrets generates or preserves a username/password pair for
// every service with a database and records the connection URL on the
// service's section. Ports auto-increment from 5432 for services that do not
// pin database_port explicitly.
func buildDatabaseSecrets(config *configs.FrameworkConfig, file *SecretsFile, prior map[string]string) error {
	nextPort := firstDatabasePort
	for _, svc := range config.Services {
		if !svc.HasDatabase || svc.IsWorker() {
			continue
		}

		port := svc.DatabasePort
		if port == 0 {
			port = nextPort
			nextPort++
		}

		var existingUsername, existingPassword *string
		if v, ok := prior[DBUsernameName(svc.Name)]; ok {
			existingUsername = &v
		}
		if v, ok := prior[DBPasswordName(svc.Name)]; ok {
			existingPassword = &v
		}

		db, err := GenerateDatabaseSecrets(svc.Name, port, existingUsername, existingPassword)
		if err != nil {
			return err
		}

		file.Secrets[DBUsernameName(svc.Name)] = db.Username
		file.Secrets[DBPasswordName(svc.Name)] = db.Password
		file.Section(svc.Name).Values["DATABASE_URL"] = db.URL
	}
	return nil
}

// buildMeshNames returns every backend API key and URL name, in config
// order. Every backend is entitled to the full mesh: it can address every
// other backend and itself.
func buildMeshNames(config *configs.FrameworkConfig) []string {
	var names []string
	for _, svc := range config.BackendServices() {
		names = append(names, APIKeyName(svc.Name))
	}
	for _, svc := range config.BackendServices() {
		names = append(names, URLName(svc.Name))
	}
	return names
}

// buildBackendSection fills a backend service's allow-list and API_KEY
// placeholder. The placeholder holds the name of the top-level secret; the
// merger resolves it to the literal value.
func buildBackendSection(config *configs.FrameworkConfig, svc configs.FrameworkService, section *ServiceSecrets, meshNames []string) {
	names := append([]string{}, BackendDefaultSecretNames...)
	names = append(names, GatewayTrustTokenName)
	names = append(names, meshNames...)

	if svc.Name == AuthServiceName && config.HasAuthTemplate() {
		names = append(names, authSecretNames...)
	}

	if svc.HasDatabase {
		names = append(names, DBUsernameName(svc.Name), DBPasswordName(svc.Name))
	}

	section.Secrets = names
	section.Values["API_KEY"] = APIKeyName(svc.Name)
}
