package secrets

// MergeSecrets combines the framework and user files into the effective
// local file. User values win on collision, except:
//
//   - metadata comes from the framework file only, so the merged file's
//     provenance always describes generation rather than user authorship
//   - secrets arrays are unioned (framework entries first) rather than
//     overwritten, preserving framework-granted access even when the user
//     file's array is empty or partial
//
// After merging, API_KEY placeholders and secrets arrays are resolved, so
// the result carries only literal values. Returns a new file; neither input
// is mutated.
func MergeSecrets(framework, user *SecretsFile) (*SecretsFile, error) {
	merged := NewSecretsFile()

	for k, v := range framework.Metadata {
		merged.Metadata[k] = v
	}

	for k, v := range framework.Secrets {
		merged.Secrets[k] = v
	}
	for k, v := range user.Secrets {
		merged.Secrets[k] = v
	}

	for name, section := range framework.Services {
		merged.Services[name] = section.Clone()
	}
	for name, userSection := range user.Services {
		section, ok := merged.Services[name]
		if !ok {
			merged.Services[name] = userSection.Clone()
			continue
		}
		for k, v := range userSection.Values {
			section.Values[k] = v
		}
		if userSection.Secrets != nil {
			if section.Secrets == nil {
				section.Secrets = []string{}
			}
			for _, secretName := range userSection.Secrets {
				section.AddSecret(secretName)
			}
		}
	}

	for name, raw := range framework.Opaque {
		merged.Opaque[name] = raw
	}
	for name, raw := range user.Opaque {
		merged.Opaque[name] = raw
	}

	ResolveAPIKeyReferences(merged)
	if err := resolveSecretArrays(merged); err != nil {
		return nil, err
	}

	return merged, nil
}
