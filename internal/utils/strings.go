package utils

import "regexp"

// kebabRegex matches lowercase kebab-case identifiers: one or more
// lowercase alphanumeric segments separated by single hyphens.
var kebabRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// IsValidServiceName checks if a service name is lowercase kebab-case.
// Service names must be validated before they reach key derivation, since
// the kebab to SCREAMING_SNAKE conversion is lossy for anything else.
func IsValidServiceName(name string) bool {
	if name == "" {
		return false
	}
	return kebabRegex.MatchString(name)
}
