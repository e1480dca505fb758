package secrets

import "strings"

// ToScreamingSnakeCase converts a lowercase kebab-case service name to the
// SCREAMING_SNAKE_CASE prefix used for its environment variables.
//
// Every component that derives a key from a service name must go through
// this function: the deep-delete prefix match depends on exact consistency
// with key generation. The conversion is lossy for names containing anything
// other than letters, digits, and hyphens, so names are validated as
// kebab-case before they get here.
func ToScreamingSnakeCase(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// APIKeyName returns the top-level secret name holding a service's API key,
// e.g. AUTH_SERVICE_API_KEY for auth-service.
func APIKeyName(serviceName string) string {
	return ToScreamingSnakeCase(serviceName) + "_API_KEY"
}

// URLName returns the top-level secret name holding a service's URL.
func URLName(serviceName string) string {
	return ToScreamingSnakeCase(serviceName) + "_URL"
}

// DBUsernameName returns the top-level secret name holding a service's
// database username.
func DBUsernameName(serviceName string) string {
	return ToScreamingSnakeCase(serviceName) + "_DB_USERNAME"
}

// DBPasswordName returns the top-level secret name holding a service's
// database password.
func DBPasswordName(serviceName string) string {
	return ToScreamingSnakeCase(serviceName) + "_DB_PASSWORD"
}
