package secrets

import (
	kerrors "github.com/kauri-framework/kauri/internal/errors"
)

// ResolveAPIKeyReferences replaces each service section's API_KEY
// placeholder with the real value when the placeholder names a key in the
// top-level secrets map. Anything else (an already-resolved value or an
// externally-supplied literal) is left untouched. Mutates and returns the
// same file.
func ResolveAPIKeyReferences(file *SecretsFile) *SecretsFile {
	for _, section := range file.Services {
		placeholder, ok := section.Values["API_KEY"]
		if !ok {
			continue
		}
		if resolved, ok := file.Secrets[placeholder]; ok {
			section.Values["API_KEY"] = resolved
		}
	}
	return file
}

// resolveSecretArrays replaces each section's list of secret names with the
// named values, set as direct properties, and deletes the array. A name
// absent from the top-level secrets map is a hard error: a silently-missing
// variable means the service boots without a credential it expects.
func resolveSecretArrays(file *SecretsFile) error {
	for _, serviceName := range file.ServiceNames() {
		section := file.Services[serviceName]
		if section.Secrets == nil {
			continue
		}

		for _, name := range section.Secrets {
			value, ok := file.Secrets[name]
			if !ok {
				return &kerrors.ReferenceError{Service: serviceName, Reference: name}
			}
			section.Values[name] = value
		}

		// The array is an authoring convenience; consumers read the direct
		// properties set above.
		section.Secrets = nil
	}
	return nil
}
